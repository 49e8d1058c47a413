package session

import (
	"context"
	"fmt"

	"github.com/yourusername/racehub/internal/models"
)

// DeleteRace removes a race after the user confirms, then reloads
func (s *Session) DeleteRace(ctx context.Context, id models.RaceID, name string) error {
	msgs := s.labels.Messages

	if id == "" {
		return models.ErrInvalidRaceID
	}
	if !s.port.Confirm(fmt.Sprintf(msgs.DeleteConfirm, name)) {
		return nil
	}

	if err := s.backend.DeleteRace(ctx, id); err != nil {
		s.logger.WithError(err).WithField("race_id", id).Warn("Race delete failed")
		s.fail(err, msgs.DeleteError, msgs.DeleteFailed, msgs.DeleteConnError)
		return err
	}

	s.actions.LogRaceDeleted(id.String(), name)
	_ = s.LoadRaces(ctx)
	s.port.Alert(fmt.Sprintf(msgs.Deleted, name))
	return nil
}

// DeleteRaceByID resolves the race name from the store
func (s *Session) DeleteRaceByID(ctx context.Context, id models.RaceID) error {
	race, ok := s.store.Get(id)
	if !ok {
		s.port.Alert(fmt.Sprintf(s.labels.Messages.RaceNotFound, id))
		return fmt.Errorf("%w: race %s", models.ErrNotFound, id)
	}
	return s.DeleteRace(ctx, race.ID, race.Name)
}
