package locktxmanager

import (
	"context"
	"sync"
)

type heldKey struct{}

// TransactionManager сериализует критические секции in-memory хранилищ одним мьютексом
// Используется вместо txmanager при database.driver = "memory"
// Повторный вход из той же цепочки вызовов определяется по маркеру в контексте
type TransactionManager struct {
	mu sync.Mutex
}

func New() *TransactionManager {
	return &TransactionManager{}
}

func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TransactionManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if held, _ := ctx.Value(heldKey{}).(*TransactionManager); held == m {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(context.WithValue(ctx, heldKey{}, m))
}
