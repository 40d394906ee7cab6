// Package scoring runs the background AI resume-scoring pipeline. A fixed
// worker pool drains an in-process queue of submission IDs; results are
// written back to the database and progress is mirrored into Redis.
package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hubhr/hubhr/internal/cache"
	"github.com/hubhr/hubhr/internal/config"
	"github.com/hubhr/hubhr/internal/storage"
	"github.com/hubhr/hubhr/pkg/models"
)

// statusTTL bounds how long scoring progress stays visible in the cache.
const statusTTL = 30 * time.Minute

// Store is the subset of the data layer the scoring pool needs.
type Store interface {
	GetSubmissionWithJob(ctx context.Context, id uuid.UUID) (*models.Submission, *models.Job, error)
	UpdateSubmissionScore(ctx context.Context, id uuid.UUID, details models.ScoringDetails) error
}

// Pool is the scoring worker pool. Queued work is lost on process restart;
// unscored submissions simply stay unscored, which the pipeline tolerates.
type Pool struct {
	store   Store
	resumes storage.ResumeStore
	cache   cache.Cache
	scorer  models.ResumeScorer
	logger  *slog.Logger
	timeout time.Duration

	queue chan uuid.UUID
	wg    sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	workers int
}

// NewPool creates a scoring pool. Call Start to launch the workers.
func NewPool(cfg config.ScoringConfig, st Store, resumes storage.ResumeStore, ca cache.Cache, scorer models.ResumeScorer, timeout time.Duration, logger *slog.Logger) *Pool {
	return &Pool{
		store:   st,
		resumes: resumes,
		cache:   ca,
		scorer:  scorer,
		logger:  logger,
		timeout: timeout,
		queue:   make(chan uuid.UUID, cfg.QueueSize),
		workers: cfg.Workers,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	p.logger.Info("scoring pool started",
		"workers", p.workers, "queue_size", cap(p.queue), "provider", p.scorer.Name())
}

// Enqueue queues a submission for scoring without blocking. It reports
// whether the submission was accepted; a full queue drops the request.
func (p *Pool) Enqueue(submissionID uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}

	select {
	case p.queue <- submissionID:
		_ = p.cache.SetScoringStatus(context.Background(), submissionID, cache.ScoringQueued, statusTTL)
		return true
	default:
		return false
	}
}

// Close stops accepting work and waits for in-flight scoring to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for id := range p.queue {
		p.score(id)
	}
}

// score runs the full pipeline for one submission. It recovers from panics
// so a bad document can never take down a worker.
func (p *Pool) score(id uuid.UUID) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic while scoring submission", "error", r, "submission_id", id)
			_ = p.cache.SetScoringStatus(ctx, id, cache.ScoringFailed, statusTTL)
		}
	}()

	_ = p.cache.SetScoringStatus(ctx, id, cache.ScoringProcessing, statusTTL)

	sub, job, err := p.store.GetSubmissionWithJob(ctx, id)
	if err != nil {
		p.fail(ctx, id, fmt.Errorf("load submission: %w", err))
		return
	}

	data, err := p.resumes.Download(ctx, job.OrgID.String(), sub.ResumePath)
	if err != nil {
		p.fail(ctx, id, fmt.Errorf("download resume: %w", err))
		return
	}

	mime := sub.ResumeMIME
	if mime == "" {
		mime = "application/pdf"
	}

	inferCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	raw, err := p.scorer.ScoreResume(inferCtx, buildPrompt(job), models.ResumeDocument{
		Data:     data,
		MIMEType: mime,
	})
	if err != nil {
		p.fail(ctx, id, fmt.Errorf("score resume: %w", err))
		return
	}

	details, err := parseResponse(raw)
	if err != nil {
		p.fail(ctx, id, err)
		return
	}

	if err := p.store.UpdateSubmissionScore(ctx, id, details); err != nil {
		p.fail(ctx, id, fmt.Errorf("persist score: %w", err))
		return
	}

	_ = p.cache.SetScoringStatus(ctx, id, cache.ScoringCompleted, statusTTL)
	p.logger.Info("submission scored",
		"submission_id", id, "job_id", job.ID, "score", details.Score)
}

func (p *Pool) fail(ctx context.Context, id uuid.UUID, err error) {
	p.logger.Error("scoring failed", "submission_id", id, "error", err)
	_ = p.cache.SetScoringStatus(ctx, id, cache.ScoringFailed, statusTTL)
}
