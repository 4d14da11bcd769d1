package projector

import "errors"

var (
	// ErrNoCurrentBooking у участника нет предстоящего или идущего бронирования
	ErrNoCurrentBooking = errors.New("member has no current booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("projector: internal error")
)
