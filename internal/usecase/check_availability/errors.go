package check_availability

import "errors"

var (
	// ErrUnknownLake возвращается, когда озеро не найдено в реестре
	ErrUnknownLake = errors.New("check_availability: unknown lake")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrRangeTooLarge возвращается, когда диапазон дат длиннее допустимого
	ErrRangeTooLarge = errors.New("check_availability: date range is too large")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
