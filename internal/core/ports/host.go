package ports

import "context"

// Host is the live-update channel of the embedding dev server. The session
// emits exactly one full-reload signal per successful rebuild and nothing on
// failure.
//
//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks
type Host interface {
	// Reload asks the host to fully reload the running application.
	Reload(ctx context.Context) error
}
