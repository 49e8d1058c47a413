package session

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/yourusername/racehub/internal/api"
)

// Share requests a share link for the user's calendar and shows it
func (s *Session) Share(ctx context.Context) error {
	msgs := s.labels.Messages

	s.mu.Lock()
	ready := s.authenticated && s.profile != nil
	s.mu.Unlock()
	if !ready {
		s.port.Alert(msgs.LoginRequired)
		return ErrNotAuthenticated
	}

	token, err := s.backend.ShareToken(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to get share token")
		if errors.Is(err, api.ErrUnauthorized) {
			s.requireLogin()
			return err
		}
		s.port.Alert(msgs.ShareError)
		return err
	}

	link := absoluteURL(s.origin, token.ShareURL)

	s.mu.Lock()
	s.shareURL = link
	s.mu.Unlock()

	s.actions.LogShareLinkIssued(link)
	s.port.ShowShareLink(link)
	return nil
}

// CopyShareLink copies the share link and flashes a confirmation on the copy
// control
func (s *Session) CopyShareLink() error {
	msgs := s.labels.Messages

	s.mu.Lock()
	link := s.shareURL
	s.mu.Unlock()
	if link == "" {
		return ErrNoShareLink
	}

	if err := s.port.CopyToClipboard(link); err != nil {
		s.logger.WithError(err).Warn("Failed to copy share link")
		return err
	}

	s.mu.Lock()
	s.copyGen++
	gen := s.copyGen
	s.mu.Unlock()

	s.port.SetCopyLabel(msgs.Copied)
	s.after(copyFeedback, func() {
		s.mu.Lock()
		current := s.copyGen == gen
		s.mu.Unlock()
		if current {
			s.port.SetCopyLabel(msgs.CopyLabel)
		}
	})
	return nil
}

// CloseShare hides the share panel
func (s *Session) CloseShare() {
	s.port.HideShareLink()
}

// absoluteURL prefixes a relative share path with origin
func absoluteURL(origin, path string) string {
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	if origin == "" {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(origin, "/") + path
}
