package langaccess

import (
	"fmt"

	"langengine/internal/ipc"
)

// Session represents a language access handle and its cleanup function.
type Session struct {
	Access Access
	close  func() error
}

// Close releases resources associated with the session.
func (s Session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenWithFallback tries daemon IPC first, then falls back to an in-process accessor.
func OpenWithFallback(
	dial func() (*ipc.Client, error),
	openLocal func() (*Local, error),
) (Session, error) {
	if dial != nil {
		if client, err := dial(); err == nil {
			return Session{
				Access: NewIPCAccess(client),
				close:  client.Close,
			}, nil
		}
	}

	if openLocal == nil {
		return Session{}, fmt.Errorf("open language engine: no local opener configured")
	}
	local, err := openLocal()
	if err != nil {
		return Session{}, fmt.Errorf("open language engine: %w", err)
	}
	return Session{
		Access: NewLocalAccess(local.Accessor, local.Describe()),
		close:  local.Close,
	}, nil
}
