package job

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"civic-forum-api/internal/cache"
	"civic-forum-api/internal/domain"
	"civic-forum-api/internal/metrics"
	"civic-forum-api/internal/repository"
)

// Aggregate repair targets, used as metric labels
const (
	TargetPostVotes     = "post_vote_count"
	TargetCommentVotes  = "comment_vote_count"
	TargetCommentCounts = "post_comment_count"
)

const defaultReconcileTimeout = 2 * time.Minute

// ReconcileReport holds the number of rows each step rewrote
type ReconcileReport struct {
	PostVotes     int64
	CommentVotes  int64
	CommentCounts int64
	Failed        int
}

// Repaired returns the total number of rewritten rows
func (r ReconcileReport) Repaired() int64 {
	return r.PostVotes + r.CommentVotes + r.CommentCounts
}

// ReconcileJob recomputes materialized counters from their source tables.
// Under normal operation every write keeps them exact and the job rewrites nothing;
// it repairs drift left by manual data fixes or rows edited outside the service.
//
// Drift is found with one unlocked scan per counter. Each drifted row is then repaired
// in its own transaction under the same row lock the write paths take, and the source
// is re-read after the lock is held, so a vote or comment committed meanwhile is counted.
type ReconcileJob struct {
	transactor  repository.Transactor
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	voteRepo    repository.VoteRepository
	threadCache cache.ThreadCache
	metrics     *metrics.Metrics
	logger      *zap.Logger
	timeout     time.Duration
}

// NewReconcileJob creates a new ReconcileJob instance. threadCache may be nil.
func NewReconcileJob(
	transactor repository.Transactor,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	voteRepo repository.VoteRepository,
	threadCache cache.ThreadCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ReconcileJob {
	if threadCache == nil {
		threadCache = cache.NewNoopThreadCache()
	}
	return &ReconcileJob{
		transactor:  transactor,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		voteRepo:    voteRepo,
		threadCache: threadCache,
		metrics:     m,
		logger:      logger,
		timeout:     defaultReconcileTimeout,
	}
}

// Run executes the job with its own timeout. It satisfies cron.Job.
func (j *ReconcileJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	j.RunContext(ctx)
}

// RunContext executes every repair step. A failing step is logged and does not stop the others.
func (j *ReconcileJob) RunContext(ctx context.Context) ReconcileReport {
	j.logger.Info("Starting aggregate reconcile job")

	var report ReconcileReport
	steps := []struct {
		target string
		run    func(ctx context.Context) (int64, error)
		into   *int64
	}{
		{TargetPostVotes, j.repairPostVotes, &report.PostVotes},
		{TargetCommentVotes, j.repairCommentVotes, &report.CommentVotes},
		{TargetCommentCounts, j.repairCommentCounts, &report.CommentCounts},
	}

	for _, step := range steps {
		rows, err := step.run(ctx)
		*step.into = rows
		if err != nil {
			report.Failed++
			j.logger.Error("Aggregate reconcile step failed",
				zap.String("target", step.target),
				zap.Int64("repaired_before_failure", rows),
				zap.Error(err),
			)
		}
		if rows > 0 {
			j.logger.Warn("Repaired drifted aggregates",
				zap.String("target", step.target),
				zap.Int64("rows", rows),
			)
			if j.metrics != nil {
				j.metrics.AddAggregateRepairs(step.target, rows)
			}
		}
	}

	j.logger.Info("Aggregate reconcile job completed",
		zap.Int64("repaired", report.Repaired()),
		zap.Int("failed_steps", report.Failed),
	)
	return report
}

func (j *ReconcileJob) repairPostVotes(ctx context.Context) (int64, error) {
	ids, err := j.postRepo.FindVoteCountDrift(ctx)
	if err != nil {
		return 0, err
	}

	var repaired int64
	for _, id := range ids {
		changed := false
		err := j.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			post, err := j.postRepo.FindByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			sum, err := j.voteRepo.SumByVotable(ctx, domain.VotableRef{Kind: domain.VotableKindPost, ID: id})
			if err != nil {
				return err
			}
			if post.VoteCount == sum {
				return nil
			}
			changed = true
			return j.postRepo.UpdateVoteCount(ctx, id, sum)
		})
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return repaired, err
		}
		if changed && err == nil {
			repaired++
		}
	}
	return repaired, nil
}

func (j *ReconcileJob) repairCommentVotes(ctx context.Context) (int64, error) {
	drifted, err := j.commentRepo.FindVoteCountDrift(ctx)
	if err != nil {
		return 0, err
	}

	var repaired int64
	for _, c := range drifted {
		changed := false
		err := j.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			comment, err := j.commentRepo.FindByIDForUpdate(ctx, c.ID)
			if err != nil {
				return err
			}
			sum, err := j.voteRepo.SumByVotable(ctx, domain.VotableRef{Kind: domain.VotableKindComment, ID: c.ID})
			if err != nil {
				return err
			}
			if comment.VoteCount == sum {
				return nil
			}
			changed = true
			return j.commentRepo.UpdateVoteCount(ctx, c.ID, sum)
		})
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return repaired, err
		}
		if changed && err == nil {
			repaired++
			// cached trees carry comment vote counts
			j.threadCache.Invalidate(ctx, c.PostID)
		}
	}
	return repaired, nil
}

func (j *ReconcileJob) repairCommentCounts(ctx context.Context) (int64, error) {
	ids, err := j.postRepo.FindCommentCountDrift(ctx)
	if err != nil {
		return 0, err
	}

	var repaired int64
	for _, id := range ids {
		changed := false
		err := j.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			post, err := j.postRepo.FindByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			count, err := j.postRepo.RefreshCommentCount(ctx, id)
			if err != nil {
				return err
			}
			changed = count != post.CommentCount
			return nil
		})
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return repaired, err
		}
		if changed && err == nil {
			repaired++
		}
	}
	return repaired, nil
}
