package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/follow"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/logging"
)

type WarmFollowsInput struct {
	MaxWorkers int
}

type WarmFollowsResult struct {
	ClubCount    int   `json:"club_count"`
	SuccessCount int   `json:"success_count"`
	FailedCount  int   `json:"failed_count"`
	WorkerCount  int   `json:"worker_count"`
	DurationMs   int64 `json:"duration_ms"`
}

// WarmFollowsService pre-fetches every followed club into the response
// cache so dashboard loads hit warm entries instead of the provider.
type WarmFollowsService struct {
	follows    follow.Repository
	clubs      *ClubService
	maxWorkers int
	logger     *logging.Logger
}

func NewWarmFollowsService(follows follow.Repository, clubs *ClubService, maxWorkers int, logger *logging.Logger) *WarmFollowsService {
	if maxWorkers < 1 {
		maxWorkers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WarmFollowsService{
		follows:    follows,
		clubs:      clubs,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

func (s *WarmFollowsService) Run(ctx context.Context, input WarmFollowsInput) (WarmFollowsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.jobWarmFollows")
	defer span.End()

	start := time.Now()

	targets, err := s.follows.ListDistinctClubs(ctx)
	if err != nil {
		return WarmFollowsResult{}, fmt.Errorf("list followed clubs: %w", err)
	}

	workerCount := input.MaxWorkers
	if workerCount < 1 {
		workerCount = s.maxWorkers
	}
	if workerCount > len(targets) && len(targets) > 0 {
		workerCount = len(targets)
	}

	result := WarmFollowsResult{
		ClubCount:   len(targets),
		WorkerCount: workerCount,
	}
	if len(targets) == 0 {
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return WarmFollowsResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if _, warmErr := s.clubs.Overview(ctx, target.Platform, target.ClubID); warmErr != nil {
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "warm followed club failed", "club_id", target.ClubID, "platform", target.Platform, "error", warmErr)
				return
			}
			successCount.Add(1)
		}); err != nil {
			workers.Done()
			return WarmFollowsResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "warm follows finished",
		"clubs", result.ClubCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
	)
	return result, nil
}
