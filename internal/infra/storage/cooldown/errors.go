package cooldown

import "errors"

var (
	// ErrAnchorNotFound возвращается, когда у участника нет действующего якоря cooldown
	ErrAnchorNotFound = errors.New("cooldown.repository: anchor not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cooldown.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("cooldown.repository: failed to execute query")
)
