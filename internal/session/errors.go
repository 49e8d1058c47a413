package session

import (
	"errors"
	"fmt"

	"github.com/yourusername/racehub/internal/api"
)

var (
	// ErrSearchInProgress is returned when a search starts while another is outstanding
	ErrSearchInProgress = errors.New("a search is already in progress")

	// ErrNotAuthenticated is returned by actions that need a logged-in user
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoShareLink is returned when copying before a share link was issued
	ErrNoShareLink = errors.New("no share link issued")
)

// fail surfaces a failed request. An unauthorized answer brings the login
// prompt back instead of an alert; a transport failure shows connection;
// anything else shows detailFormat filled with the server detail or fallback.
func (s *Session) fail(err error, detailFormat, fallback, connection string) {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		s.requireLogin()
	case api.IsConnectionError(err):
		s.port.Alert(connection)
	default:
		detail, ok := api.Detail(err)
		if !ok {
			detail = fallback
		}
		s.port.Alert(fmt.Sprintf(detailFormat, detail))
	}
}
