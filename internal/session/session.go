// Package session holds the state of one user session and runs every
// workflow against a backend and a presenter.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/racehub/internal/logger"
	"github.com/yourusername/racehub/internal/metrics"
	"github.com/yourusername/racehub/internal/models"
	"github.com/yourusername/racehub/internal/render"
	"github.com/yourusername/racehub/internal/store"
)

// copyFeedback is how long the copy control shows its confirmation
const copyFeedback = 2 * time.Second

// Options configures a session
type Options struct {
	Backend   Backend
	Presenter Presenter
	Store     *store.RaceStore
	Labels    render.Labels
	ViewMode  models.ViewMode
	// Origin is prepended to relative share paths
	Origin   string
	Location *time.Location
	Logger   *logrus.Logger

	// OnLogout runs after the backend logout and before the reload
	OnLogout func() error

	Now   func() time.Time
	After func(d time.Duration, f func())
}

// Session is the UI-session context. mu guards the fields below it and is
// never held across a backend call or a presenter call.
type Session struct {
	backend  Backend
	port     Presenter
	store    *store.RaceStore
	labels   render.Labels
	origin   string
	loc      *time.Location
	logger   *logrus.Logger
	actions  *logger.ActionLogger
	validate *validator.Validate
	onLogout func() error
	now      func() time.Time
	after    func(d time.Duration, f func())

	defaultMode models.ViewMode

	mu            sync.Mutex
	mode          models.ViewMode
	authenticated bool
	profile       *models.Profile
	candidate     *models.Candidate
	searching     bool
	shareURL      string
	copyGen       uint64
}

// New creates a session
func New(opts Options) (*Session, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("session requires a backend")
	}
	if opts.Presenter == nil {
		return nil, fmt.Errorf("session requires a presenter")
	}

	mode := opts.ViewMode
	if mode == "" {
		mode = models.ViewTable
	}
	if _, err := models.ParseViewMode(string(mode)); err != nil {
		return nil, err
	}

	s := &Session{
		backend:     opts.Backend,
		port:        opts.Presenter,
		store:       opts.Store,
		labels:      opts.Labels,
		origin:      opts.Origin,
		loc:         opts.Location,
		logger:      opts.Logger,
		onLogout:    opts.OnLogout,
		now:         opts.Now,
		after:       opts.After,
		validate:    validator.New(),
		defaultMode: mode,
		mode:        mode,
	}

	if s.store == nil {
		s.store = store.NewRaceStore()
	}
	if s.labels.Locale == "" {
		s.labels = render.LabelsFor(render.DefaultLocale)
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.logger == nil {
		s.logger = logger.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.after == nil {
		s.after = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	s.actions = logger.NewActionLogger(s.logger)

	return s, nil
}

// Render presents the current snapshot again. Past races are classified
// against the clock at the time of the call.
func (s *Session) Render() {
	s.mu.Lock()
	mode := s.mode
	s.mu.Unlock()

	view := render.Build(s.store.Races(), mode, s.Today(), s.labels)
	metrics.RecordRender(string(view.Mode))
	s.port.Render(view)
}

// SetViewMode switches between table and calendar. No request is sent.
func (s *Session) SetViewMode(mode models.ViewMode) error {
	if _, err := models.ParseViewMode(string(mode)); err != nil {
		return err
	}

	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	s.port.SetActiveView(mode)
	s.Render()
	return nil
}

// ViewMode returns the current view mode
func (s *Session) ViewMode() models.ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Today returns the current calendar day in the session's timezone
func (s *Session) Today() models.Date {
	return models.Today(s.now(), s.loc)
}

// Labels returns the session's label table
func (s *Session) Labels() render.Labels {
	return s.labels
}

// Store returns the race store
func (s *Session) Store() *store.RaceStore {
	return s.store
}

// Authenticated reports whether the last race load succeeded
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Profile returns the loaded profile
func (s *Session) Profile() (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return models.Profile{}, false
	}
	return *s.profile, true
}

// Candidate returns the pending search candidate
func (s *Session) Candidate() (*models.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.candidate == nil {
		return nil, false
	}
	c := *s.candidate
	return &c, true
}

// ShareURL returns the last issued share link
func (s *Session) ShareURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shareURL
}

func (s *Session) setAuthenticated(v bool) {
	s.mu.Lock()
	s.authenticated = v
	s.mu.Unlock()
}

// requireLogin drops the authenticated state after the backend refused the
// session: user controls are hidden and the login prompt comes back.
func (s *Session) requireLogin() {
	s.setAuthenticated(false)
	s.port.SetUserControlsVisible(false)
	s.port.ShowLoginPrompt()
}

// reset returns the session to its initial state
func (s *Session) reset() {
	s.store.Reset()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = s.defaultMode
	s.authenticated = false
	s.profile = nil
	s.candidate = nil
	s.shareURL = ""
	s.copyGen++
}
