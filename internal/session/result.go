package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/racehub/internal/metrics"
	"github.com/yourusername/racehub/internal/models"
	"github.com/yourusername/racehub/internal/render"
)

// LookupResult shows the user's result for a race. A result already attached
// to the race in the store is shown without any request. Otherwise the
// profile name (after confirmation) or a typed name is looked up remotely;
// declining or typing nothing aborts quietly.
func (s *Session) LookupResult(ctx context.Context, id models.RaceID, raceName string, year int) error {
	msgs := s.labels.Messages

	if result, ok := s.store.Result(id); ok {
		metrics.RecordResultLookup("cache", metrics.OutcomeFound)
		s.actions.LogResultLookup(id.String(), "cache", true)
		s.port.ShowResult(render.CachedResult(result, s.labels))
		return nil
	}

	subject, ok := s.resultSubject()
	if !ok {
		metrics.RecordResultLookup("remote", metrics.OutcomeAborted)
		return nil
	}

	restore := s.port.ShowLoading(msgs.ResultSearching)
	defer restore()

	lookup, err := s.backend.SearchResult(ctx, models.ResultQuery{
		RaceName:   raceName,
		Year:       year,
		RunnerName: subject,
	})
	if err != nil {
		metrics.RecordResultLookup("remote", metrics.OutcomeError)
		s.logger.WithError(err).WithField("race_id", id).Warn("Result lookup failed")
		s.fail(err, msgs.ResultError, msgs.ProcessFailed, fmt.Sprintf(msgs.ConnectionError, err))
		return err
	}

	s.actions.LogResultLookup(id.String(), "remote", lookup.Found)
	s.port.ShowResult(render.LookupResult(lookup, s.labels))
	if !lookup.Found {
		metrics.RecordResultLookup("remote", metrics.OutcomeNotFound)
		return nil
	}

	metrics.RecordResultLookup("remote", metrics.OutcomeFound)
	_ = s.LoadRaces(ctx)
	return nil
}

// LookupResultByID resolves the race name and year from the store
func (s *Session) LookupResultByID(ctx context.Context, id models.RaceID) error {
	msgs := s.labels.Messages

	race, ok := s.store.Get(id)
	if !ok {
		s.port.Alert(fmt.Sprintf(msgs.RaceNotFound, id))
		return fmt.Errorf("%w: race %s", models.ErrNotFound, id)
	}
	if !race.IsPast(s.Today()) || race.Date.IsZero() {
		s.port.Alert(fmt.Sprintf(msgs.RaceNotFinished, race.Name))
		return models.NewValidationError("race_not_finished", fmt.Sprintf("race %s has not taken place yet", id))
	}

	return s.LookupResult(ctx, race.ID, race.Name, race.Date.Year())
}

// resultSubject picks whose result to look up
func (s *Session) resultSubject() (string, bool) {
	msgs := s.labels.Messages

	s.mu.Lock()
	name := ""
	if s.profile != nil {
		name = strings.TrimSpace(s.profile.Name)
	}
	s.mu.Unlock()

	if name != "" {
		return name, s.port.Confirm(fmt.Sprintf(msgs.ResultConfirm, name))
	}

	typed, ok := s.port.Prompt(msgs.ResultPrompt)
	typed = strings.TrimSpace(typed)
	if !ok || typed == "" {
		return "", false
	}
	return typed, true
}
