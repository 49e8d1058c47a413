package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/racehub/internal/api"
	"github.com/yourusername/racehub/internal/models"
	"github.com/yourusername/racehub/internal/render"
)

var (
	errUnauthorized = &api.APIError{StatusCode: 401, Endpoint: "test"}
	errConnection   = fmt.Errorf("%w: dial tcp: connection refused", api.ErrConnectionFailed)
)

func errDetail(detail string) error {
	return &api.APIError{StatusCode: 400, Endpoint: "test", Detail: detail}
}

type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	races   []models.Race
	listErr error

	loginErr  error
	logoutErr error

	profile        *models.Profile
	profileErr     error
	saveProfileErr error
	savedNames     []string

	candidate  *models.Candidate
	searchErr  error
	searchHook func()
	confirmErr error
	confirmed  []*models.Candidate

	deleteErr error
	deleted   []models.RaceID

	lookup    *models.ResultLookup
	lookupErr error
	queries   []models.ResultQuery

	share    *models.ShareToken
	shareErr error
}

func (b *fakeBackend) record(call string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
}

func (b *fakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *fakeBackend) ListRaces(ctx context.Context) ([]models.Race, error) {
	b.record("list")
	if b.listErr != nil {
		return nil, b.listErr
	}
	return append([]models.Race(nil), b.races...), nil
}

func (b *fakeBackend) Login(ctx context.Context, email string) error {
	b.record("login")
	return b.loginErr
}

func (b *fakeBackend) Logout(ctx context.Context) error {
	b.record("logout")
	return b.logoutErr
}

func (b *fakeBackend) Profile(ctx context.Context) (*models.Profile, error) {
	b.record("profile")
	if b.profileErr != nil {
		return nil, b.profileErr
	}
	if b.profile == nil {
		return &models.Profile{}, nil
	}
	p := *b.profile
	return &p, nil
}

func (b *fakeBackend) SaveProfile(ctx context.Context, name string) error {
	b.record("save_profile")
	if b.saveProfileErr != nil {
		return b.saveProfileErr
	}
	b.savedNames = append(b.savedNames, name)
	return nil
}

func (b *fakeBackend) SearchRace(ctx context.Context, query string) (*models.Candidate, error) {
	b.record("search")
	if b.searchHook != nil {
		b.searchHook()
	}
	if b.searchErr != nil {
		return nil, b.searchErr
	}
	return b.candidate, nil
}

func (b *fakeBackend) ConfirmRace(ctx context.Context, candidate *models.Candidate) error {
	b.record("confirm")
	if b.confirmErr != nil {
		return b.confirmErr
	}
	b.confirmed = append(b.confirmed, candidate)
	return nil
}

func (b *fakeBackend) DeleteRace(ctx context.Context, id models.RaceID) error {
	b.record("delete")
	if b.deleteErr != nil {
		return b.deleteErr
	}
	b.deleted = append(b.deleted, id)
	return nil
}

func (b *fakeBackend) SearchResult(ctx context.Context, query models.ResultQuery) (*models.ResultLookup, error) {
	b.record("result")
	b.queries = append(b.queries, query)
	if b.lookupErr != nil {
		return nil, b.lookupErr
	}
	return b.lookup, nil
}

func (b *fakeBackend) ShareToken(ctx context.Context) (*models.ShareToken, error) {
	b.record("share")
	if b.shareErr != nil {
		return nil, b.shareErr
	}
	return b.share, nil
}

// fakePresenter records every call as a short event string
type fakePresenter struct {
	mu     sync.Mutex
	events []string

	views  []render.View
	panels []render.Panel
	alerts []string

	confirmAnswer bool
	promptAnswer  string
	promptOK      bool
	copyErr       error
	copied        []string
}

func (p *fakePresenter) event(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, fmt.Sprintf(format, args...))
}

func (p *fakePresenter) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func (p *fakePresenter) LastView() render.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.views) == 0 {
		return render.View{}
	}
	return p.views[len(p.views)-1]
}

func (p *fakePresenter) Render(view render.View) {
	p.mu.Lock()
	p.views = append(p.views, view)
	p.mu.Unlock()
	p.event("render:%s", view.Mode)
}

func (p *fakePresenter) SetActiveView(mode models.ViewMode) { p.event("active:%s", mode) }
func (p *fakePresenter) SetUserControlsVisible(v bool)      { p.event("controls:%t", v) }
func (p *fakePresenter) ShowLoginPrompt()                   { p.event("login_prompt") }
func (p *fakePresenter) HideLoginPrompt()                   { p.event("hide_login") }
func (p *fakePresenter) ShowLoginError(msg string)          { p.event("login_error:%s", msg) }

func (p *fakePresenter) ShowLoading(msg string) func() {
	p.event("loading:%s", msg)
	return func() { p.event("restore") }
}

func (p *fakePresenter) SetSearchEnabled(enabled bool) { p.event("search_enabled:%t", enabled) }
func (p *fakePresenter) ClearSearchInput()             { p.event("clear_input") }

func (p *fakePresenter) ShowCandidate(panel render.Panel) {
	p.mu.Lock()
	p.panels = append(p.panels, panel)
	p.mu.Unlock()
	p.event("candidate")
}

func (p *fakePresenter) HideCandidate() { p.event("hide_candidate") }

func (p *fakePresenter) ShowResult(panel render.Panel) {
	p.mu.Lock()
	p.panels = append(p.panels, panel)
	p.mu.Unlock()
	p.event("result:%s", panel.Title)
}

func (p *fakePresenter) ShowProfileEditor(name string) { p.event("profile_editor:%s", name) }
func (p *fakePresenter) HideProfileEditor()            { p.event("hide_profile") }
func (p *fakePresenter) ShowShareLink(url string)      { p.event("share:%s", url) }
func (p *fakePresenter) HideShareLink()                { p.event("hide_share") }

func (p *fakePresenter) CopyToClipboard(text string) error {
	p.event("copy:%s", text)
	if p.copyErr != nil {
		return p.copyErr
	}
	p.mu.Lock()
	p.copied = append(p.copied, text)
	p.mu.Unlock()
	return nil
}

func (p *fakePresenter) SetCopyLabel(label string) { p.event("copy_label:%s", label) }

func (p *fakePresenter) Alert(msg string) {
	p.mu.Lock()
	p.alerts = append(p.alerts, msg)
	p.mu.Unlock()
	p.event("alert:%s", msg)
}

func (p *fakePresenter) Confirm(msg string) bool {
	p.event("confirm:%s", msg)
	return p.confirmAnswer
}

func (p *fakePresenter) Prompt(msg string) (string, bool) {
	p.event("prompt")
	return p.promptAnswer, p.promptOK
}

func (p *fakePresenter) Reload() { p.event("reload") }

func (p *fakePresenter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
	p.alerts = nil
	p.panels = nil
	p.views = nil
}

// timers collects AfterFunc callbacks so tests can fire them
type timers struct {
	mu    sync.Mutex
	funcs []func()
	delay []time.Duration
}

func (tm *timers) after(d time.Duration, f func()) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.delay = append(tm.delay, d)
	tm.funcs = append(tm.funcs, f)
}

func (tm *timers) fire(i int) {
	tm.mu.Lock()
	f := tm.funcs[i]
	tm.mu.Unlock()
	f()
}

var fixedNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

type harness struct {
	session   *Session
	backend   *fakeBackend
	presenter *fakePresenter
	timers    *timers
	loggedOut int
}

func newHarness(t *testing.T, backend *fakeBackend) *harness {
	t.Helper()
	h := &harness{
		backend:   backend,
		presenter: &fakePresenter{},
		timers:    &timers{},
	}
	s, err := New(Options{
		Backend:   backend,
		Presenter: h.presenter,
		Labels:    render.LabelsFor("en_US"),
		Origin:    "http://localhost:8000",
		Location:  time.UTC,
		Now:       func() time.Time { return fixedNow },
		After:     h.timers.after,
		OnLogout: func() error {
			h.loggedOut++
			return nil
		},
	})
	require.NoError(t, err)
	h.session = s
	return h
}

// started returns a harness after a successful Start with a clean event log
func started(t *testing.T, backend *fakeBackend) *harness {
	t.Helper()
	h := newHarness(t, backend)
	require.NoError(t, h.session.Start(context.Background()))
	h.presenter.Reset()
	backend.mu.Lock()
	backend.calls = nil
	backend.mu.Unlock()
	return h
}

func indexOf(events []string, event string) int {
	for i, e := range events {
		if e == event {
			return i
		}
	}
	return -1
}

func sampleRaces() []models.Race {
	return []models.Race{
		{ID: "2", Name: "Boston Marathon", Sport: "Running", Date: models.MustParseDate("2027-04-19"), Location: "Boston", DistanceSummary: "42K"},
		{ID: "1", Name: "Maratón de Valencia", Sport: "Running", Date: models.MustParseDate("2024-12-01"), Location: "Valencia", DistanceSummary: "42K",
			Results: []models.Result{{OfficialTime: "03:12:45", OverallPosition: "1520"}}},
		{ID: "3", Name: "Trail Picos", Sport: "Trail", Date: models.MustParseDate("2025-06-01"), Location: "Asturias", DistanceSummary: "30K"},
	}
}
