package session

import (
	"context"
	"strings"

	"github.com/yourusername/racehub/internal/models"
)

// LoadProfile fetches the profile. Failures are logged and leave the
// previous profile in place.
func (s *Session) LoadProfile(ctx context.Context) error {
	profile, err := s.backend.Profile(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load profile")
		return err
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	return nil
}

// OpenProfile shows the profile editor prefilled with the current name
func (s *Session) OpenProfile() error {
	s.mu.Lock()
	authenticated := s.authenticated
	name := ""
	if s.profile != nil {
		name = s.profile.Name
	}
	s.mu.Unlock()

	if !authenticated {
		s.port.Alert(s.labels.Messages.LoginRequired)
		return ErrNotAuthenticated
	}

	s.port.ShowProfileEditor(name)
	return nil
}

// SaveProfile stores a new display name
func (s *Session) SaveProfile(ctx context.Context, name string) error {
	msgs := s.labels.Messages

	name = strings.TrimSpace(name)
	if name == "" {
		s.port.Alert(msgs.NameEmpty)
		return models.ErrEmptyName
	}

	if err := s.backend.SaveProfile(ctx, name); err != nil {
		s.logger.WithError(err).Warn("Failed to save profile")
		s.fail(err, "%s", msgs.ProfileSaveError, msgs.ProfileSaveError)
		return err
	}

	s.mu.Lock()
	s.profile = &models.Profile{Name: name}
	s.mu.Unlock()

	s.actions.LogProfileSaved(name)
	s.port.HideProfileEditor()
	s.port.Alert(msgs.ProfileSaved)
	return nil
}

// CloseProfile hides the profile editor
func (s *Session) CloseProfile() {
	s.port.HideProfileEditor()
}
