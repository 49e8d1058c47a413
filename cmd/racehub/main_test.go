package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const racesJSON = `[
  {"id":2,"nombre":"Boston Marathon","deporte":"Running","fecha":"2099-04-19","localizacion":"Boston","distancia_resumen":"42K","estado_inscripcion":""},
  {"id":1,"nombre":"Valencia","deporte":"Running","fecha":"2001-12-02","localizacion":"Valencia","distancia_resumen":"42K","estado_inscripcion":"confirmada"}
]`

const candidateJSON = `{"nombre_oficial":"Boston Marathon","deporte":"Running","fecha":"2099-04-19","lugar":"Boston","distancias":["42K"],"url_oficial":null,"estado_inscripcion":"abierta","extra":"kept"}`

// fakeBackend serves the race backend endpoints used by the commands
type fakeBackend struct {
	mu        sync.Mutex
	loggedIn  bool
	confirmed string
	deleted   []string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.URL.Path == "/auth/login" {
		b.loggedIn = true
		w.Write([]byte(`{}`))
		return
	}
	if !b.loggedIn {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Not authenticated"}`))
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/carreras":
		w.Write([]byte(racesJSON))
	case r.Method == http.MethodGet && r.URL.Path == "/perfil":
		w.Write([]byte(`{"nombre":"Ana"}`))
	case r.URL.Path == "/carreras/buscar":
		w.Write([]byte(candidateJSON))
	case r.URL.Path == "/carreras/confirmar":
		body, _ := io.ReadAll(r.Body)
		b.confirmed = string(body)
		w.Write([]byte(`{}`))
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/carreras/"):
		b.deleted = append(b.deleted, strings.TrimPrefix(r.URL.Path, "/carreras/"))
		w.Write([]byte(`{}`))
	case r.URL.Path == "/share/token":
		w.Write([]byte(`{"share_url":"/share/abc"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not Found"}`))
	}
}

func execute(t *testing.T, backend *fakeBackend, input string, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	chdir(t, t.TempDir())
	t.Setenv("RACEHUB_SESSION_PERSIST", "false")
	t.Setenv("RACEHUB_REFRESH_ENABLED", "false")
	t.Setenv("RACEHUB_APP_LOG_LEVEL", "error")

	out := &bytes.Buffer{}
	cmd := newRootCmd(strings.NewReader(input), out)
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
		"--base-url", srv.URL,
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRacesRequiresLogin(t *testing.T) {
	out, err := execute(t, &fakeBackend{}, "", "races")
	require.Error(t, err)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "racehub login EMAIL")
}

func TestRacesTable(t *testing.T) {
	out, err := execute(t, &fakeBackend{loggedIn: true}, "", "races")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Valencia")
	assert.Contains(t, lines[1], "Finalized")
	assert.Contains(t, lines[2], "Boston Marathon")
}

func TestRacesCalendarFlag(t *testing.T) {
	out, err := execute(t, &fakeBackend{loggedIn: true}, "", "races", "--view", "calendar")
	require.NoError(t, err)
	assert.Contains(t, out, "December 2001")
	assert.Contains(t, out, "April 2099")
}

func TestRacesRejectsUnknownView(t *testing.T) {
	_, err := execute(t, &fakeBackend{loggedIn: true}, "", "races", "--view", "grid")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
	assert.Contains(t, err.Error(), "table, calendar")
}

func TestLoginThenListsRaces(t *testing.T) {
	backend := &fakeBackend{}
	out, err := execute(t, backend, "", "login", "ana@example.com")
	require.NoError(t, err)
	assert.True(t, backend.loggedIn)
	assert.Contains(t, out, "Boston Marathon")
}

func TestLoginRejectsInvalidEmail(t *testing.T) {
	backend := &fakeBackend{}
	out, err := execute(t, backend, "", "login", "not-an-email")
	assert.ErrorIs(t, err, errReported)
	assert.False(t, backend.loggedIn)
	assert.NotEmpty(t, out)
}

func TestSearchConfirmSendsCandidate(t *testing.T) {
	backend := &fakeBackend{loggedIn: true}
	out, err := execute(t, backend, "y\n", "search", "boston", "marathon")
	require.NoError(t, err)

	assert.Contains(t, out, "Boston Marathon")
	assert.Contains(t, out, "Race saved successfully!")
	assert.JSONEq(t, candidateJSON, backend.confirmed)
}

func TestSearchDeclinedSendsNothing(t *testing.T) {
	backend := &fakeBackend{loggedIn: true}
	out, err := execute(t, backend, "n\n", "search", "boston")
	require.NoError(t, err)

	assert.Contains(t, out, "Operation cancelled")
	assert.Empty(t, backend.confirmed)
}

func TestDeleteByID(t *testing.T) {
	backend := &fakeBackend{loggedIn: true}
	out, err := execute(t, backend, "", "delete", "2", "--yes")
	require.NoError(t, err)

	assert.Equal(t, []string{"2"}, backend.deleted)
	assert.Contains(t, out, `Race "Boston Marathon" deleted successfully`)
}

func TestDeleteUnknownID(t *testing.T) {
	backend := &fakeBackend{loggedIn: true}
	out, err := execute(t, backend, "", "delete", "99", "--yes")
	assert.ErrorIs(t, err, errReported)
	assert.Empty(t, backend.deleted)
	assert.Contains(t, out, "Race 99 not found")
}

func TestShareComposesAbsoluteLink(t *testing.T) {
	backend := &fakeBackend{loggedIn: true}
	srvOut, err := execute(t, backend, "", "share")
	require.NoError(t, err)
	assert.Regexp(t, `http://127\.0\.0\.1:\d+/share/abc`, srvOut)
}

func TestShellDispatch(t *testing.T) {
	backend := &fakeBackend{loggedIn: true}
	input := strings.Join([]string{"calendar", "bogus", "copy", "profile", "quit", "races"}, "\n") + "\n"
	out, err := execute(t, backend, input, "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "April 2099")
	assert.Contains(t, out, `Unknown command "bogus"`)
	assert.Contains(t, out, "No share link yet")
	assert.Contains(t, out, "Runner: Ana")
}

func TestCandidateFixtureIsValidJSON(t *testing.T) {
	assert.True(t, json.Valid([]byte(candidateJSON)))
	assert.True(t, json.Valid([]byte(racesJSON)))
}

func TestFeedbackTimerOnlyForInteractiveCommands(t *testing.T) {
	fired := make(chan struct{})
	feedbackTimer(true)(time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("interactive feedback timer never fired")
	}

	var oneShot int32
	feedbackTimer(false)(0, func() { oneShot++ })
	assert.Zero(t, oneShot)
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
