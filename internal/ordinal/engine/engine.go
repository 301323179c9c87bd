// Package engine applies blocks to the ordinal index. Satoshi ranges flow
// from transaction inputs to outputs in FIFO order; fees flow into the
// coinbase after the block subsidy. Each block is committed as a single
// atomic batch.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/satindex-backend/internal/clock"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/model"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/ranges"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/store"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/supply"
)

const commitRetryDelay = 250 * time.Millisecond

var (
	// ErrStaleTip is returned when a block does not extend (or, on
	// disconnect, does not match) the indexed tip.
	ErrStaleTip = errors.New("block does not extend the indexed tip")

	// ErrMissingPrevOut is returned when a transaction spends an output the
	// index does not hold.
	ErrMissingPrevOut = errors.New("previous output not indexed")

	// ErrSupplyMismatch is returned when the satoshi ranges entering a
	// transaction cannot cover its outputs, or when a coinbase leaves
	// minted satoshi unclaimed.
	ErrSupplyMismatch = errors.New("satoshi supply mismatch")

	// ErrNoUndoData is returned on disconnect when the entry needed to
	// restore a spent output is gone, typically because it was pruned.
	ErrNoUndoData = errors.New("undo data not available")

	// ErrModeMismatch is returned when the configured mode differs from the
	// mode the store was built with. The installation needs a reindex.
	ErrModeMismatch = errors.New("index mode mismatch")

	// ErrUnhealthy is returned once the engine has latched unhealthy after
	// a storage failure. The process must be restarted.
	ErrUnhealthy = errors.New("index halted after storage failure")
)

// Observer receives per-block accounting events. Implementations must be safe
// for concurrent use.
type Observer interface {
	BlockConnected(height int32, txCount int, elapsed time.Duration)
	BlockDisconnected(height int32)
	OutputsPruned(count int)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) BlockConnected(int32, int, time.Duration) {}
func (NopObserver) BlockDisconnected(int32)                  {}
func (NopObserver) OutputsPruned(int)                        {}

// Engine drives the ordinal index forward and backward one block at a time.
// It is not safe for concurrent use; the sync loop is its only writer.
type Engine struct {
	store   *store.Store
	logger  *zap.Logger
	obs     Observer
	mode    model.Mode
	horizon int32
	healthy atomic.Bool
}

// New validates the configured mode against the store's stamp and returns an
// engine. A fresh store is stamped with the configured mode; a stamped store
// opened under a different mode is rejected.
func New(st *store.Store, mode model.Mode, pruneHorizon int32, obs Observer, logger *zap.Logger) (*Engine, error) {
	switch mode {
	case model.ModeFull, model.ModePrune, model.ModeRewriteSpent:
	default:
		return nil, fmt.Errorf("unknown index mode %q", mode)
	}
	if mode == model.ModePrune && pruneHorizon <= 0 {
		return nil, fmt.Errorf("prune horizon must be positive, got %d", pruneHorizon)
	}

	stamped, ok, err := st.Mode()
	if err != nil {
		return nil, err
	}
	if ok && stamped != mode {
		return nil, fmt.Errorf("%w: store indexed in %q mode, configured %q; reindex required", ErrModeMismatch, stamped, mode)
	}
	if !ok {
		batch := st.NewBatch()
		batch.SetMode(mode)
		if err := st.Commit(batch); err != nil {
			return nil, fmt.Errorf("stamp index mode: %w", err)
		}
	}

	e := &Engine{
		store:   st,
		logger:  logger,
		obs:     obs,
		mode:    mode,
		horizon: pruneHorizon,
	}
	e.healthy.Store(true)
	return e, nil
}

// Mode returns the mode the engine runs in.
func (e *Engine) Mode() model.Mode {
	return e.mode
}

// BestBlock returns the indexed tip. ok is false on a fresh index.
func (e *Engine) BestBlock() (chainhash.Hash, int32, bool, error) {
	return e.store.BestBlock()
}

// Healthy reports whether the engine is still accepting blocks.
func (e *Engine) Healthy() bool {
	return e.healthy.Load()
}

// ConnectBlock applies a block on top of the indexed tip. All writes land in
// one atomic batch, so a crash mid-block leaves the index at the previous
// tip.
func (e *Engine) ConnectBlock(ctx context.Context, blk *model.Block) error {
	if !e.healthy.Load() {
		return ErrUnhealthy
	}
	start := time.Now()

	if err := validateBlock(blk); err != nil {
		return err
	}
	if err := e.checkExtendsTip(blk); err != nil {
		return err
	}

	last, err := e.store.LastOrdinal()
	if err != nil {
		return err
	}

	batch := e.store.NewBatch()
	view := newBlockView(e.store)

	var (
		fees     ranges.RangeList
		spentOps []model.Outpoint
	)

	for _, tx := range blk.Txs[1:] {
		pool := make(ranges.RangeList, 0, len(tx.Inputs))
		for _, in := range tx.Inputs {
			op := model.Outpoint{TxID: in.PrevTxID, Vout: in.PrevVout}
			entry, err := view.take(op)
			if err != nil {
				return fmt.Errorf("tx %s: %w", tx.TxID, err)
			}
			pool = append(pool, entry.Ranges...)

			switch e.mode {
			case model.ModeRewriteSpent:
				entry.Spent = true
				batch.PutOutput(op, entry)
				view.put(op, entry)
			case model.ModePrune:
				spentOps = append(spentOps, op)
			}
		}

		pool, err = e.assignOutputs(batch, view, tx, blk.Height, pool)
		if err != nil {
			return err
		}
		fees = append(fees, pool...)
	}

	minted := supply.Subsidy(blk.Height)
	pool := make(ranges.RangeList, 0, 1+len(fees))
	if minted > 0 {
		pool = append(pool, ranges.SatRange{Start: last, End: last + minted})
	}
	pool = append(pool, fees...)

	pool, err = e.assignOutputs(batch, view, blk.Txs[0], blk.Height, pool)
	if err != nil {
		return err
	}
	if unclaimed := pool.Size(); unclaimed != 0 {
		return fmt.Errorf("%w: coinbase of block %d leaves %d satoshi unclaimed", ErrSupplyMismatch, blk.Height, unclaimed)
	}

	pruned, err := e.stagePrune(batch, blk.Height, spentOps)
	if err != nil {
		return err
	}

	batch.SetLastOrdinal(last + minted)
	batch.SetBestBlock(blk.Hash, blk.Height)

	if err := e.commit(ctx, batch); err != nil {
		return err
	}

	e.obs.BlockConnected(blk.Height, len(blk.Txs), time.Since(start))
	if pruned > 0 {
		e.obs.OutputsPruned(pruned)
	}
	e.logger.Debug("block connected",
		zap.Int32("height", blk.Height),
		zap.Stringer("hash", &blk.Hash),
		zap.Int("tx_count", len(blk.Txs)),
		zap.Int("pruned_outputs", pruned),
	)
	return nil
}

// assignOutputs skims the pool across the outputs of one transaction in FIFO
// order and stages the resulting entries. It returns the unassigned remainder
// of the pool.
func (e *Engine) assignOutputs(batch *store.Batch, view *blockView, tx model.Transaction, height int32, pool ranges.RangeList) (ranges.RangeList, error) {
	for vout, out := range tx.Outputs {
		taken, rest, err := ranges.Skim(pool, out.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: tx %s output %d needs %d satoshi, pool holds %d: %w",
				ErrSupplyMismatch, tx.TxID, vout, out.Value, pool.Size(), err)
		}
		pool = rest

		op := model.Outpoint{TxID: tx.TxID, Vout: uint32(vout)}
		entry := model.OutputEntry{
			Ranges:      taken,
			BlockHeight: height,
			Inscription: hasInscriptionMarker(out.Script),
		}
		// A duplicate txid overwrites the earlier entry and its ranges
		// are lost, matching how the chain itself handles the overwrite.
		batch.PutOutput(op, entry)
		view.put(op, entry)
	}
	return pool, nil
}

// stagePrune records the outputs spent at this height and drops the entries
// whose spend has fallen past the prune horizon.
func (e *Engine) stagePrune(batch *store.Batch, height int32, spentOps []model.Outpoint) (int, error) {
	if e.mode != model.ModePrune {
		return 0, nil
	}
	if len(spentOps) > 0 {
		batch.PutPendingPrune(height, spentOps)
	}

	expired := height - e.horizon
	if expired < 0 {
		return 0, nil
	}
	ops, err := e.store.PendingPrune(expired)
	if err != nil {
		return 0, err
	}
	if len(ops) == 0 {
		return 0, nil
	}
	for _, op := range ops {
		batch.DeleteOutput(op)
	}
	batch.DeletePendingPrune(expired)
	return len(ops), nil
}

// DisconnectBlock rolls the indexed tip back past the given block, which must
// be the current tip. Transactions are undone in reverse order.
func (e *Engine) DisconnectBlock(ctx context.Context, blk *model.Block) error {
	if !e.healthy.Load() {
		return ErrUnhealthy
	}
	if err := validateBlock(blk); err != nil {
		return err
	}

	hash, height, ok, err := e.store.BestBlock()
	if err != nil {
		return err
	}
	if !ok || hash != blk.Hash || height != blk.Height {
		return fmt.Errorf("%w: disconnecting %s at %d, tip is %s at %d", ErrStaleTip, blk.Hash, blk.Height, hash, height)
	}

	last, err := e.store.LastOrdinal()
	if err != nil {
		return err
	}

	batch := e.store.NewBatch()

	for i := len(blk.Txs) - 1; i >= 0; i-- {
		tx := blk.Txs[i]
		for vout := range tx.Outputs {
			batch.DeleteOutput(model.Outpoint{TxID: tx.TxID, Vout: uint32(vout)})
		}
		if tx.IsCoinbase {
			continue
		}
		for j := len(tx.Inputs) - 1; j >= 0; j-- {
			op := model.Outpoint{TxID: tx.Inputs[j].PrevTxID, Vout: tx.Inputs[j].PrevVout}
			entry, err := e.store.GetOutput(op)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: spent output %s of tx %s", ErrNoUndoData, op, tx.TxID)
			}
			if err != nil {
				return err
			}
			if e.mode == model.ModeRewriteSpent {
				entry.Spent = false
				batch.PutOutput(op, entry)
			}
		}
	}

	if e.mode == model.ModePrune {
		batch.DeletePendingPrune(blk.Height)
	}

	batch.SetLastOrdinal(last - supply.Subsidy(blk.Height))
	if blk.Height == 0 {
		batch.DeleteBestBlock()
	} else {
		batch.SetBestBlock(blk.PrevHash, blk.Height-1)
	}

	if err := e.commit(ctx, batch); err != nil {
		return err
	}

	e.obs.BlockDisconnected(blk.Height)
	e.logger.Info("block disconnected",
		zap.Int32("height", blk.Height),
		zap.Stringer("hash", &blk.Hash),
	)
	return nil
}

func (e *Engine) checkExtendsTip(blk *model.Block) error {
	hash, height, ok, err := e.store.BestBlock()
	if err != nil {
		return err
	}
	if !ok {
		if blk.Height != 0 {
			return fmt.Errorf("%w: fresh index requires the genesis block, got height %d", ErrStaleTip, blk.Height)
		}
		return nil
	}
	if blk.PrevHash != hash || blk.Height != height+1 {
		return fmt.Errorf("%w: block %s at %d does not build on %s at %d", ErrStaleTip, blk.Hash, blk.Height, hash, height)
	}
	return nil
}

func validateBlock(blk *model.Block) error {
	if len(blk.Txs) == 0 {
		return fmt.Errorf("block %s has no transactions", blk.Hash)
	}
	if !blk.Txs[0].IsCoinbase {
		return fmt.Errorf("block %s: first transaction is not a coinbase", blk.Hash)
	}
	for i, tx := range blk.Txs[1:] {
		if tx.IsCoinbase {
			return fmt.Errorf("block %s: unexpected coinbase at index %d", blk.Hash, i+1)
		}
	}
	return nil
}

// commit writes the batch, retrying a transient failure once. A second
// failure latches the engine unhealthy so the sync loop stops instead of
// advancing over a hole.
func (e *Engine) commit(ctx context.Context, batch *store.Batch) error {
	err := e.store.Commit(batch)
	if err == nil {
		return nil
	}
	e.logger.Warn("batch commit failed, retrying once", zap.Error(err))
	if serr := clock.SleepWithContext(ctx, commitRetryDelay); serr != nil {
		return serr
	}
	if err := e.store.Commit(batch); err != nil {
		e.healthy.Store(false)
		e.logger.Error("batch commit failed after retry, halting index", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnhealthy, err)
	}
	return nil
}

// blockView resolves previous outputs against entries staged earlier in the
// same block before falling back to the store.
type blockView struct {
	store  *store.Store
	staged map[model.Outpoint]model.OutputEntry
	spent  map[model.Outpoint]struct{}
}

func newBlockView(st *store.Store) *blockView {
	return &blockView{
		store:  st,
		staged: make(map[model.Outpoint]model.OutputEntry),
		spent:  make(map[model.Outpoint]struct{}),
	}
}

func (v *blockView) put(op model.Outpoint, e model.OutputEntry) {
	v.staged[op] = e
}

// take resolves the entry for op and marks it spent within this block.
func (v *blockView) take(op model.Outpoint) (model.OutputEntry, error) {
	if _, gone := v.spent[op]; gone {
		return model.OutputEntry{}, fmt.Errorf("%w: %s already spent in this block", ErrMissingPrevOut, op)
	}
	entry, ok := v.staged[op]
	if !ok {
		var err error
		entry, err = v.store.GetOutput(op)
		if errors.Is(err, store.ErrNotFound) {
			return model.OutputEntry{}, fmt.Errorf("%w: %s", ErrMissingPrevOut, op)
		}
		if err != nil {
			return model.OutputEntry{}, err
		}
	}
	if entry.Spent {
		return model.OutputEntry{}, fmt.Errorf("%w: %s already spent", ErrMissingPrevOut, op)
	}
	v.spent[op] = struct{}{}
	return entry, nil
}
