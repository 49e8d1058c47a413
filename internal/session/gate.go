package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/racehub/internal/api"
	"github.com/yourusername/racehub/internal/metrics"
	"github.com/yourusername/racehub/internal/models"
)

// Start performs the initial race load. An unauthorized answer shows the
// login prompt and is not retried.
func (s *Session) Start(ctx context.Context) error {
	s.port.SetActiveView(s.ViewMode())
	return s.LoadRaces(ctx)
}

// LoadRaces fetches the whole collection, replaces the store and renders it.
// It is the only writer of the store and every write ends by calling it.
func (s *Session) LoadRaces(ctx context.Context) error {
	races, err := s.backend.ListRaces(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			metrics.RecordReload(metrics.OutcomeUnauthorized, 0)
			s.requireLogin()
			return err
		}
		metrics.RecordReload(metrics.OutcomeError, 0)
		s.logger.WithError(err).Error("Failed to load races")
		return err
	}

	s.store.Replace(races)
	metrics.RecordReload(metrics.OutcomeOK, len(races))
	s.actions.LogRacesLoaded(len(races))
	s.Render()

	s.setAuthenticated(true)
	s.port.SetUserControlsVisible(true)

	// Profile failures are only logged
	_ = s.LoadProfile(ctx)
	return nil
}

// Login validates the email, opens a session and loads the races
func (s *Session) Login(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	msgs := s.labels.Messages

	if err := s.validate.Struct(models.LoginRequest{Email: email}); err != nil {
		s.port.ShowLoginError(msgs.InvalidEmail)
		return models.ErrInvalidEmail
	}
	s.port.ShowLoginError("")

	if err := s.backend.Login(ctx, email); err != nil {
		s.actions.LogLogin(email, false)
		if api.IsConnectionError(err) {
			s.port.ShowLoginError(fmt.Sprintf(msgs.ConnectionError, err))
			return err
		}
		detail, ok := api.Detail(err)
		if !ok {
			detail = msgs.Unknown
		}
		s.port.ShowLoginError(fmt.Sprintf(msgs.LoginFailed, detail))
		return err
	}

	s.actions.LogLogin(email, true)
	s.port.HideLoginPrompt()
	return s.LoadRaces(ctx)
}

// Logout closes the backend session and performs a full reload: user controls
// are hidden first, then all session state is dropped and Start runs again.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.backend.Logout(ctx); err != nil {
		s.logger.WithError(err).Warn("Logout request failed")
	}

	s.port.SetUserControlsVisible(false)
	s.actions.LogLogout()

	if s.onLogout != nil {
		if err := s.onLogout(); err != nil {
			s.logger.WithError(err).Warn("Failed to clear local session state")
		}
	}

	s.reset()
	s.port.Reload()

	if err := s.Start(ctx); err != nil && !errors.Is(err, api.ErrUnauthorized) {
		return err
	}
	return nil
}
