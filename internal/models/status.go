package models

import "strings"

// OutcomeStatus is the canonical outcome state of a trade idea.
type OutcomeStatus string

const (
	StatusOpen      OutcomeStatus = "open"
	StatusHitTarget OutcomeStatus = "hit_target"
	StatusHitStop   OutcomeStatus = "hit_stop"
	StatusExpired   OutcomeStatus = "expired"
)

// NormalizeOutcome maps a raw outcome field to its canonical state. The raw
// value may carry surrounding whitespace or mixed case; an empty value means
// the idea has not resolved yet, which is the historical default for rows
// that predate the field. Unrecognized values fall back to open for the same
// reason. Total and idempotent.
func NormalizeOutcome(raw string) OutcomeStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(StatusHitTarget):
		return StatusHitTarget
	case string(StatusHitStop):
		return StatusHitStop
	case string(StatusExpired):
		return StatusExpired
	default:
		return StatusOpen
	}
}

// Resolved reports whether the status is a terminal state.
func (s OutcomeStatus) Resolved() bool {
	return s != StatusOpen
}

// PublishStatus is the editorial state of a trade idea.
type PublishStatus string

const (
	StatusPublished PublishStatus = "published"
	StatusDraft     PublishStatus = "draft"
)

// NormalizePublish maps a raw publish field to its canonical state. Absence
// means published: ideas created before the draft workflow existed carry no
// status at all.
func NormalizePublish(raw string) PublishStatus {
	if strings.ToLower(strings.TrimSpace(raw)) == string(StatusDraft) {
		return StatusDraft
	}
	return StatusPublished
}
