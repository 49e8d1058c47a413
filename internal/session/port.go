package session

import (
	"context"

	"github.com/yourusername/racehub/internal/models"
	"github.com/yourusername/racehub/internal/render"
)

// Presenter is the rendering target of a session. Implementations own every
// visual detail; the session only decides what is shown and when.
type Presenter interface {
	Render(view render.View)
	SetActiveView(mode models.ViewMode)

	// SetUserControlsVisible shows or hides profile, share and logout; the
	// login control takes the opposite state.
	SetUserControlsVisible(visible bool)
	ShowLoginPrompt()
	HideLoginPrompt()
	// ShowLoginError writes msg next to the login prompt; "" clears it.
	ShowLoginError(msg string)

	// ShowLoading displays a loading indicator and returns the function that
	// restores whatever was displayed before.
	ShowLoading(msg string) (restore func())
	SetSearchEnabled(enabled bool)
	ClearSearchInput()
	ShowCandidate(panel render.Panel)
	HideCandidate()
	ShowResult(panel render.Panel)

	ShowProfileEditor(name string)
	HideProfileEditor()

	ShowShareLink(url string)
	HideShareLink()
	CopyToClipboard(text string) error
	SetCopyLabel(label string)

	Alert(msg string)
	Confirm(msg string) bool
	Prompt(msg string) (string, bool)

	// Reload discards everything displayed, like a full page reload.
	Reload()
}

// Backend is the race backend as seen by a session
type Backend interface {
	ListRaces(ctx context.Context) ([]models.Race, error)
	Login(ctx context.Context, email string) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.Profile, error)
	SaveProfile(ctx context.Context, name string) error
	SearchRace(ctx context.Context, query string) (*models.Candidate, error)
	ConfirmRace(ctx context.Context, candidate *models.Candidate) error
	DeleteRace(ctx context.Context, id models.RaceID) error
	SearchResult(ctx context.Context, query models.ResultQuery) (*models.ResultLookup, error)
	ShareToken(ctx context.Context) (*models.ShareToken, error)
}
