// Package ports declares the interfaces the engine is written against.
// Implementations live under internal/adapters.
package ports

// Logger carries diagnostics that fall outside the step stream, such as
// watcher warnings and degraded-but-continuing conditions.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
