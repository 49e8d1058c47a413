package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/racehub/internal/metrics"
	"github.com/yourusername/racehub/internal/models"
	"github.com/yourusername/racehub/internal/render"
)

// Search asks the backend to resolve query into a candidate race and shows it
// for review. Any pending candidate is discarded first. Only one search may
// be outstanding.
func (s *Session) Search(ctx context.Context, query string) error {
	msgs := s.labels.Messages

	query = strings.TrimSpace(query)
	if query == "" {
		metrics.RecordSearchStep("search", metrics.OutcomeRejected)
		s.port.Alert(msgs.EmptyQuery)
		return models.ErrEmptyQuery
	}

	s.mu.Lock()
	if s.searching {
		s.mu.Unlock()
		return ErrSearchInProgress
	}
	s.searching = true
	s.candidate = nil
	s.mu.Unlock()

	s.port.HideCandidate()
	s.port.SetSearchEnabled(false)
	restore := s.port.ShowLoading(msgs.Searching)
	defer func() {
		restore()
		s.port.SetSearchEnabled(true)
		s.mu.Lock()
		s.searching = false
		s.mu.Unlock()
	}()

	candidate, err := s.backend.SearchRace(ctx, query)
	if err != nil {
		metrics.RecordSearchStep("search", metrics.OutcomeError)
		s.logger.WithError(err).WithField("query", query).Warn("Race search failed")
		s.fail(err, msgs.SearchError, msgs.ProcessFailed, fmt.Sprintf(msgs.ConnectionError, err))
		return err
	}

	s.mu.Lock()
	s.candidate = candidate
	s.mu.Unlock()

	metrics.RecordSearchStep("search", metrics.OutcomeFound)
	s.actions.LogCandidateFound(query, candidate.OfficialName)
	s.port.ShowCandidate(render.CandidatePanel(candidate, s.labels))
	s.port.ClearSearchInput()
	return nil
}

// Confirm persists the pending candidate and reloads the races. On failure
// the candidate is kept so the user can retry. Without a candidate it does
// nothing.
func (s *Session) Confirm(ctx context.Context) error {
	msgs := s.labels.Messages

	s.mu.Lock()
	candidate := s.candidate
	s.mu.Unlock()
	if candidate == nil {
		return nil
	}

	if err := s.backend.ConfirmRace(ctx, candidate); err != nil {
		metrics.RecordSearchStep("confirm", metrics.OutcomeError)
		s.logger.WithError(err).WithField("official_name", candidate.OfficialName).Warn("Race confirm failed")
		s.fail(err, msgs.SaveError, msgs.SaveFailed, msgs.SaveConnError)
		return err
	}

	metrics.RecordSearchStep("confirm", metrics.OutcomeConfirmed)
	s.actions.LogCandidateResolved(candidate.OfficialName, metrics.OutcomeConfirmed)
	s.port.HideCandidate()

	_ = s.LoadRaces(ctx)
	s.port.Alert(msgs.Saved)

	s.mu.Lock()
	if s.candidate == candidate {
		s.candidate = nil
	}
	s.mu.Unlock()
	return nil
}

// Cancel discards the pending candidate. Without a candidate it does nothing.
func (s *Session) Cancel() {
	s.mu.Lock()
	candidate := s.candidate
	s.candidate = nil
	s.mu.Unlock()
	if candidate == nil {
		return
	}

	metrics.RecordSearchStep("cancel", metrics.OutcomeCancelled)
	s.actions.LogCandidateResolved(candidate.OfficialName, metrics.OutcomeCancelled)
	s.port.HideCandidate()
	s.port.Alert(s.labels.Messages.Cancelled)
}
