// Package interview drives a submission through the hiring pipeline:
// status updates, interview rounds, selection, and rejection. All writes
// go through the store's row-locked mutate operation so concurrent staff
// actions cannot clobber each other's reviewer notes.
package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hubhr/hubhr/pkg/models"
)

var (
	// ErrInvalidTransition means the submission's current status does not
	// permit the requested change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrRoundNotFound means no interview round with that number exists.
	ErrRoundNotFound = errors.New("interview round not found")
	// ErrRoundClosed means the round was already completed or cancelled.
	ErrRoundClosed = errors.New("interview round already closed")
	// ErrInvalidRoundType means an unknown round type was requested.
	ErrInvalidRoundType = errors.New("invalid interview round type")
	// ErrInvalidOutcome means an unknown round outcome was submitted.
	ErrInvalidOutcome = errors.New("invalid round outcome")
)

// Store is the subset of the data layer the interview manager needs.
type Store interface {
	MutateSubmission(ctx context.Context, id uuid.UUID, fn func(*models.Submission) error) (*models.Submission, error)
}

// Manager applies lifecycle operations to submissions. Most operations set
// the status directly from whatever stage the candidate is in — staff
// correct mislabeled candidates all the time and the pipeline tolerates
// out-of-order moves. Only startInterview and markInterviewComplete name a
// required source stage.
type Manager struct {
	store  Store
	logger *slog.Logger
}

// NewManager creates an interview manager.
func NewManager(st Store, logger *slog.Logger) *Manager {
	return &Manager{store: st, logger: logger}
}

// UpdateStatus moves a submission to newStatus.
func (m *Manager) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus models.SubmissionStatus) (*models.Submission, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, newStatus)
	}
	return m.store.MutateSubmission(ctx, id, func(sub *models.Submission) error {
		sub.Status = newStatus
		return nil
	})
}

// Shortlist marks a submission as shortlisted for interviews.
func (m *Manager) Shortlist(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	return m.UpdateStatus(ctx, id, models.StatusShortlisted)
}

// ScheduleParams describes the first interview of a candidate.
type ScheduleParams struct {
	Date        string
	Time        string
	Interviewer string
	Notes       string
}

// ScheduleInterview moves a submission to interview_scheduled and seeds the
// rounds ledger with a synthesized round 1 phone screen, replacing any
// rounds from an earlier scheduling attempt. The single-interview block
// older readers of the notes ledger expect is written alongside it.
func (m *Manager) ScheduleInterview(ctx context.Context, id uuid.UUID, params ScheduleParams) (*models.Submission, error) {
	now := time.Now().UTC()
	sub, err := m.store.MutateSubmission(ctx, id, func(sub *models.Submission) error {
		sub.Status = models.StatusInterviewScheduled
		sub.ReviewerNotes.Interview = &models.LegacyInterview{
			Date:        params.Date,
			Time:        params.Time,
			Interviewer: params.Interviewer,
			Notes:       params.Notes,
			ScheduledAt: now,
		}
		sub.ReviewerNotes.InterviewRounds = []models.InterviewRound{{
			RoundNumber:   1,
			RoundType:     models.RoundPhoneScreen,
			ScheduledDate: params.Date,
			ScheduledTime: params.Time,
			Interviewer:   params.Interviewer,
			Status:        models.RoundScheduled,
			Outcome:       models.OutcomePending,
			Notes:         params.Notes,
			CreatedAt:     now,
		}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logger.Info("interview scheduled", "submission_id", id, "date", params.Date)
	return sub, nil
}

// StartInterview moves a scheduled submission into the interviewing stage.
func (m *Manager) StartInterview(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	return m.store.MutateSubmission(ctx, id, func(sub *models.Submission) error {
		if sub.Status != models.StatusInterviewScheduled {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sub.Status, models.StatusInterviewing)
		}
		sub.Status = models.StatusInterviewing
		return nil
	})
}

// MarkInterviewComplete closes the interviewing stage without deciding the
// candidate's fate; selection or rejection comes separately.
func (m *Manager) MarkInterviewComplete(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	return m.store.MutateSubmission(ctx, id, func(sub *models.Submission) error {
		if sub.Status != models.StatusInterviewing {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sub.Status, models.StatusInterviewed)
		}
		sub.Status = models.StatusInterviewed
		return nil
	})
}

// RoundParams describes one additional interview round.
type RoundParams struct {
	Type             models.RoundType
	Date             string
	Time             string
	Interviewer      string
	InterviewerEmail string
	Notes            string
}

// ScheduleRound appends a new round with a server-assigned number and
// forces the submission into interviewing regardless of its prior stage.
func (m *Manager) ScheduleRound(ctx context.Context, id uuid.UUID, params RoundParams) (*models.Submission, error) {
	if !params.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRoundType, params.Type)
	}
	now := time.Now().UTC()
	sub, err := m.store.MutateSubmission(ctx, id, func(sub *models.Submission) error {
		sub.Status = models.StatusInterviewing
		sub.ReviewerNotes.InterviewRounds = append(sub.ReviewerNotes.InterviewRounds, models.InterviewRound{
			RoundNumber:      sub.ReviewerNotes.NextRoundNumber(),
			RoundType:        params.Type,
			ScheduledDate:    params.Date,
			ScheduledTime:    params.Time,
			Interviewer:      params.Interviewer,
			InterviewerEmail: params.InterviewerEmail,
			Status:           models.RoundScheduled,
			Outcome:          models.OutcomePending,
			Notes:            params.Notes,
			CreatedAt:        now,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logger.Info("interview round scheduled",
		"submission_id", id, "round_type", params.Type)
	return sub, nil
}

// CompleteRound records the outcome of one round. A failed round rejects
// the candidate immediately; a passed round keeps them interviewing for
// the next round.
func (m *Manager) CompleteRound(ctx context.Context, id uuid.UUID, roundNumber int, outcome models.RoundOutcome, feedback string) (*models.Submission, error) {
	if outcome != models.OutcomePass && outcome != models.OutcomeFail {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}
	now := time.Now().UTC()
	sub, err := m.store.MutateSubmission(ctx, id, func(sub *models.Submission) error {
		round := sub.ReviewerNotes.Round(roundNumber)
		if round == nil {
			return fmt.Errorf("%w: round %d", ErrRoundNotFound, roundNumber)
		}
		if round.Status != models.RoundScheduled {
			return fmt.Errorf("%w: round %d is %s", ErrRoundClosed, roundNumber, round.Status)
		}

		round.Status = models.RoundCompleted
		round.Outcome = outcome
		round.Feedback = feedback
		round.CompletedAt = &now

		if outcome == models.OutcomeFail {
			sub.Status = models.StatusRejected
			sub.ReviewerNotes.Rejection = &models.RejectionRecord{
				RejectedAt: now,
				Reason:     fmt.Sprintf("failed interview round %d (%s)", roundNumber, round.RoundType),
				Notes:      feedback,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logger.Info("interview round completed",
		"submission_id", id, "round", roundNumber, "outcome", outcome)
	return sub, nil
}

// SelectCandidate moves a candidate to offer, recording the selection.
func (m *Manager) SelectCandidate(ctx context.Context, id uuid.UUID, notes string) (*models.Submission, error) {
	now := time.Now().UTC()
	return m.store.MutateSubmission(ctx, id, func(sub *models.Submission) error {
		sub.Status = models.StatusOffer
		sub.ReviewerNotes.Selection = &models.SelectionRecord{
			SelectedAt: now,
			Notes:      notes,
		}
		return nil
	})
}

// RejectCandidate rejects a candidate from any stage.
func (m *Manager) RejectCandidate(ctx context.Context, id uuid.UUID, reason, notes string) (*models.Submission, error) {
	now := time.Now().UTC()
	return m.store.MutateSubmission(ctx, id, func(sub *models.Submission) error {
		sub.Status = models.StatusRejected
		sub.ReviewerNotes.Rejection = &models.RejectionRecord{
			RejectedAt: now,
			Reason:     reason,
			Notes:      notes,
		}
		return nil
	})
}

// FeedbackParams is overall process feedback from an interviewer.
type FeedbackParams struct {
	Rating      *int
	Notes       string
	Interviewer string
}

// AddFeedback attaches process feedback and marks the submission
// interviewed.
func (m *Manager) AddFeedback(ctx context.Context, id uuid.UUID, params FeedbackParams) (*models.Submission, error) {
	now := time.Now().UTC()
	return m.store.MutateSubmission(ctx, id, func(sub *models.Submission) error {
		sub.ReviewerNotes.Feedback = &models.FeedbackRecord{
			Rating:      params.Rating,
			Notes:       params.Notes,
			Interviewer: params.Interviewer,
			SubmittedAt: now,
		}
		sub.Status = models.StatusInterviewed
		return nil
	})
}
