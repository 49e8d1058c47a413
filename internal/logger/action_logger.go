// Package logger provides the user action trail.
package logger

import (
	"github.com/sirupsen/logrus"
)

// ActionLogger records what the user did and how the backend answered.
type ActionLogger struct {
	*logrus.Entry
}

// NewActionLogger creates a new action logger.
func NewActionLogger(baseLogger *logrus.Logger) *ActionLogger {
	return &ActionLogger{
		Entry: baseLogger.WithField("component", "action"),
	}
}

// LogLogin logs a login attempt outcome.
func (al *ActionLogger) LogLogin(email string, success bool) {
	al.WithFields(logrus.Fields{
		"event_type": "login",
		"email":      email,
		"success":    success,
	}).Info("Login attempted")
}

// LogLogout logs a logout.
func (al *ActionLogger) LogLogout() {
	al.WithField("event_type", "logout").Info("Session closed")
}

// LogRacesLoaded logs a completed reload of the race collection.
func (al *ActionLogger) LogRacesLoaded(count int) {
	al.WithFields(logrus.Fields{
		"event_type": "races_loaded",
		"race_count": count,
	}).Debug("Race collection replaced")
}

// LogCandidateFound logs a search that produced a candidate.
func (al *ActionLogger) LogCandidateFound(query, officialName string) {
	al.WithFields(logrus.Fields{
		"event_type":    "candidate_found",
		"query":         query,
		"official_name": officialName,
	}).Info("Race candidate found")
}

// LogCandidateResolved logs a confirm or cancel decision.
func (al *ActionLogger) LogCandidateResolved(officialName, decision string) {
	al.WithFields(logrus.Fields{
		"event_type":    "candidate_resolved",
		"official_name": officialName,
		"decision":      decision,
	}).Info("Race candidate resolved")
}

// LogRaceDeleted logs a deleted race.
func (al *ActionLogger) LogRaceDeleted(raceID, name string) {
	al.WithFields(logrus.Fields{
		"event_type": "race_deleted",
		"race_id":    raceID,
		"race_name":  name,
	}).Info("Race deleted")
}

// LogResultLookup logs a result lookup and where the answer came from.
func (al *ActionLogger) LogResultLookup(raceID, source string, found bool) {
	al.WithFields(logrus.Fields{
		"event_type": "result_lookup",
		"race_id":    raceID,
		"source":     source,
		"found":      found,
	}).Info("Result lookup completed")
}

// LogProfileSaved logs a profile update.
func (al *ActionLogger) LogProfileSaved(name string) {
	al.WithFields(logrus.Fields{
		"event_type": "profile_saved",
		"name":       name,
	}).Info("Profile saved")
}

// LogShareLinkIssued logs a share link handed to the user.
func (al *ActionLogger) LogShareLinkIssued(url string) {
	al.WithFields(logrus.Fields{
		"event_type": "share_link_issued",
		"url":        url,
	}).Info("Share link issued")
}
