// Package sync keeps the ordinal index aligned with the node's active chain.
// It catches up from the persisted tip on startup, follows new blocks as the
// node announces them, and rewinds the index across forks.
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/satindex-backend/internal/clock"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/model"
	"github.com/goodnatureofminers/satindex-backend/pkg/workerpool"
)

const (
	defaultPrefetchWindow  = 16
	defaultPrefetchWorkers = 4

	sleepDuration     = 5 * time.Second
	longSleepDuration = 30 * time.Second

	// A fork deeper than this is beyond anything the index can unwind
	// safely; the operator has to reindex anyway.
	maxRewindDepth = 100
)

// FollowerService drives the index from the node's chain state.
type FollowerService struct {
	logger            *zap.Logger
	source            NodeSource
	index             BlockIndex
	metrics           FollowerMetrics
	sleep             func(context.Context, time.Duration) error
	sleepDuration     time.Duration
	longSleepDuration time.Duration
	blockSignal       <-chan struct{}
	prefetchWindow    int32
	prefetchWorkers   int
}

// NewFollowerService builds a FollowerService with dependencies. blockSignal
// may be nil; the service then falls back to polling.
func NewFollowerService(
	source NodeSource,
	index BlockIndex,
	metrics FollowerMetrics,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*FollowerService, error) {
	if metrics == nil {
		return nil, errors.New("follower metrics is required")
	}

	return &FollowerService{
		logger:            logger,
		source:            source,
		index:             index,
		metrics:           metrics,
		sleep:             clock.SleepWithContext,
		sleepDuration:     sleepDuration,
		longSleepDuration: longSleepDuration,
		blockSignal:       blockSignal,
		prefetchWindow:    defaultPrefetchWindow,
		prefetchWorkers:   defaultPrefetchWorkers,
	}, nil
}

// Run starts the sync loop until the context is canceled.
func (s *FollowerService) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			s.logger.Warn("sync iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.sleepDuration))
			if sleepErr := s.wait(ctx, s.sleepDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *FollowerService) run(ctx context.Context) error {
	started := time.Now()
	tip, err := s.source.TipHeight(ctx)
	s.metrics.ObserveFetchTip(err, started)
	if err != nil {
		return fmt.Errorf("fetch node tip: %w", err)
	}

	if err := s.rewindForks(ctx, tip); err != nil {
		return err
	}

	next, err := s.nextHeight()
	if err != nil {
		return err
	}
	if next > tip {
		s.logger.Debug("index at node tip; waiting", zap.Int32("tip", tip))
		return s.wait(ctx, s.longSleepDuration)
	}

	if err := s.catchUp(ctx, next, tip); err != nil {
		return err
	}
	return s.wait(ctx, s.sleepDuration)
}

func (s *FollowerService) nextHeight() (int32, error) {
	_, height, ok, err := s.index.BestBlock()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return height + 1, nil
}

// rewindForks disconnects indexed blocks until the indexed tip lies on the
// node's active chain. Stale blocks are fetched from the node by hash.
func (s *FollowerService) rewindForks(ctx context.Context, tip int32) error {
	for depth := 0; ; depth++ {
		bestHash, bestHeight, ok, err := s.index.BestBlock()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if bestHeight <= tip {
			nodeHash, err := s.source.BlockHashAt(ctx, bestHeight)
			if err != nil {
				return fmt.Errorf("node hash at height %d: %w", bestHeight, err)
			}
			if nodeHash == bestHash {
				if depth > 0 {
					s.logger.Info("rewound to the active chain",
						zap.Int("depth", depth),
						zap.Int32("height", bestHeight),
					)
				}
				return nil
			}
		}

		if depth >= maxRewindDepth {
			return fmt.Errorf("fork deeper than %d blocks, reindex required", maxRewindDepth)
		}

		stale, err := s.source.FetchBlockByHash(ctx, bestHash)
		if err != nil {
			return fmt.Errorf("fetch stale block %s: %w", bestHash, err)
		}
		started := time.Now()
		err = s.index.DisconnectBlock(ctx, stale)
		s.metrics.ObserveDisconnect(err, stale.Height, started)
		if err != nil {
			return fmt.Errorf("disconnect stale block %s at %d: %w", bestHash, stale.Height, err)
		}
	}
}

// catchUp connects blocks next..tip, prefetching a window ahead of the single
// writer so the node round trips overlap with index commits.
func (s *FollowerService) catchUp(ctx context.Context, next, tip int32) error {
	for next <= tip {
		to := next + s.prefetchWindow - 1
		if to > tip {
			to = tip
		}

		blocks, err := s.fetchWindow(ctx, next, to)
		if err != nil {
			return err
		}
		for _, blk := range blocks {
			started := time.Now()
			err := s.index.ConnectBlock(ctx, blk)
			s.metrics.ObserveConnect(err, blk.Height, started)
			if err != nil {
				return fmt.Errorf("connect block %s at %d: %w", blk.Hash, blk.Height, err)
			}
		}
		s.logger.Info("connected blocks", zap.Int32("from", next), zap.Int32("to", to))
		next = to + 1
	}
	return nil
}

func (s *FollowerService) fetchWindow(ctx context.Context, from, to int32) ([]*model.Block, error) {
	heights := make([]int32, 0, to-from+1)
	for h := from; h <= to; h++ {
		heights = append(heights, h)
	}

	// Workers write disjoint slots, so no lock is needed.
	blocks := make([]*model.Block, len(heights))
	err := workerpool.Process(ctx, s.prefetchWorkers, heights, func(ctx context.Context, h int32) error {
		blk, err := s.source.FetchBlockAt(ctx, h)
		if err != nil {
			return err
		}
		blocks[h-from] = blk
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("prefetch blocks %d..%d: %w", from, to, err)
	}
	return blocks, nil
}

func (s *FollowerService) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.blockSignal:
		return nil
	case <-timer.C:
		return nil
	}
}
