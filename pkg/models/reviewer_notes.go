package models

import "time"

// LegacyInterview is the single-interview block kept for readers that
// predate multi-round tracking. ScheduleInterview writes it alongside
// round 1.
type LegacyInterview struct {
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Interviewer string    `json:"interviewer,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// SelectionRecord marks a candidate moved to offer.
type SelectionRecord struct {
	SelectedAt time.Time `json:"selected_at"`
	Notes      string    `json:"notes"`
}

// RejectionRecord marks a rejected candidate.
type RejectionRecord struct {
	RejectedAt time.Time `json:"rejected_at"`
	Reason     string    `json:"reason,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// FeedbackRecord is free-form interviewer feedback on the whole process.
type FeedbackRecord struct {
	Rating      *int      `json:"rating,omitempty"`
	Notes       string    `json:"notes"`
	Interviewer string    `json:"interviewer"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ReviewerNotes is the per-submission ledger accumulating interview,
// selection, rejection, and feedback records over time. Each field is set
// through an explicit write and never cleared by writes to other fields,
// preserving the additive-update behavior the pipeline relies on.
type ReviewerNotes struct {
	CoverLetter     *string          `json:"cover_letter,omitempty"`
	Interview       *LegacyInterview `json:"interview,omitempty"`
	InterviewRounds []InterviewRound `json:"interview_rounds,omitempty"`
	Selection       *SelectionRecord `json:"selection,omitempty"`
	Rejection       *RejectionRecord `json:"rejection,omitempty"`
	Feedback        *FeedbackRecord  `json:"feedback,omitempty"`
}

// Round returns the round with the given number, or nil.
func (n *ReviewerNotes) Round(number int) *InterviewRound {
	for i := range n.InterviewRounds {
		if n.InterviewRounds[i].RoundNumber == number {
			return &n.InterviewRounds[i]
		}
	}
	return nil
}

// NextRoundNumber returns max(existing round numbers)+1, starting at 1.
func (n *ReviewerNotes) NextRoundNumber() int {
	next := 1
	for i := range n.InterviewRounds {
		if n.InterviewRounds[i].RoundNumber >= next {
			next = n.InterviewRounds[i].RoundNumber + 1
		}
	}
	return next
}
