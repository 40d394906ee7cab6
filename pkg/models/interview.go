package models

import "time"

// RoundType identifies the kind of interview round.
type RoundType string

const (
	RoundPhoneScreen RoundType = "phone_screen"
	RoundTechnical   RoundType = "technical"
	RoundManager     RoundType = "manager"
	RoundPanel       RoundType = "panel"
	RoundCultural    RoundType = "cultural"
	RoundFinal       RoundType = "final"
)

// IsValid reports whether t is a known round type.
func (t RoundType) IsValid() bool {
	switch t {
	case RoundPhoneScreen, RoundTechnical, RoundManager, RoundPanel, RoundCultural, RoundFinal:
		return true
	default:
		return false
	}
}

// RoundStatus is the scheduling state of one interview round.
type RoundStatus string

const (
	RoundScheduled RoundStatus = "scheduled"
	RoundCompleted RoundStatus = "completed"
	RoundCancelled RoundStatus = "cancelled"
)

// RoundOutcome is the recorded result of a completed round.
type RoundOutcome string

const (
	OutcomePending RoundOutcome = "pending"
	OutcomePass    RoundOutcome = "pass"
	OutcomeFail    RoundOutcome = "fail"
)

// IsValid reports whether o is a known round outcome.
func (o RoundOutcome) IsValid() bool {
	switch o {
	case OutcomePending, OutcomePass, OutcomeFail:
		return true
	default:
		return false
	}
}

// InterviewRound is one discrete interview event. Rounds are embedded in the
// submission's reviewer-notes ledger; round numbers are assigned by the
// store inside a row lock and are unique per submission.
type InterviewRound struct {
	RoundNumber      int          `json:"round_number"`
	RoundType        RoundType    `json:"round_type"`
	ScheduledDate    string       `json:"scheduled_date,omitempty"`
	ScheduledTime    string       `json:"scheduled_time,omitempty"`
	Interviewer      string       `json:"interviewer,omitempty"`
	InterviewerEmail string       `json:"interviewer_email,omitempty"`
	Status           RoundStatus  `json:"status"`
	Outcome          RoundOutcome `json:"outcome"`
	Feedback         string       `json:"feedback,omitempty"`
	Notes            string       `json:"notes,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
}
