package events

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultPublishTimeout ограничение на публикацию одного сообщения
const DefaultPublishTimeout = 3 * time.Second

// Transport брокер сообщений (*mq.Publisher)
type Transport interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Publisher публикует доменные события в брокер
// Ошибки возвращаются вызывающему, который решает, логировать ли их
type Publisher struct {
	transport Transport
	timeout   time.Duration
	tracer    trace.Tracer
}

func NewPublisher(transport Transport) *Publisher {
	return &Publisher{
		transport: transport,
		timeout:   DefaultPublishTimeout,
		tracer:    otel.Tracer("fishery-booking/events"),
	}
}

func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	ctx, span := p.tracer.Start(ctx, "events.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.String("messaging.destination.routing_key", key)),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.transport.PublishJSON(ctx, key, v); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		return err
	}
	return nil
}

// NoopPublisher используется, когда [events] enabled = false
type NoopPublisher struct{}

func (NoopPublisher) PublishJSON(context.Context, string, any) error {
	return nil
}
