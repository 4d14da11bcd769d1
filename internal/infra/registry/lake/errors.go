package lake

import "errors"

var (
	// ErrLakeNotFound возвращается, когда озеро с таким ID не зарегистрировано
	ErrLakeNotFound = errors.New("lake.registry: lake not found")

	// ErrInvalidLake возвращается при некорректном описании озера в конфигурации
	ErrInvalidLake = errors.New("lake.registry: invalid lake definition")
)
