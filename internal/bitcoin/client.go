// Package bitcoin adapts a Bitcoin Core node into the block shape consumed
// by the ordinal index.
package bitcoin

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/ratelimit"

	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// NodeRPC is the subset of the node RPC surface the index needs. It is
	// satisfied by *rpcclient.Client.
	NodeRPC interface {
		GetBlockCount() (int64, error)
		GetBestBlockHash() (*chainhash.Hash, error)
		GetBlockHash(height int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(hash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
	}

	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Client wraps the node RPC with rate limiting and metrics instrumentation.
// Stale blocks remain fetchable by hash, which the reorg rewind relies on.
type Client struct {
	rpc     NodeRPC
	limiter ratelimit.Limiter
	metrics RPCMetrics
}

// NewClient constructs a Client capped at callsPerSecond node requests.
// A non-positive cap disables limiting.
func NewClient(rpc NodeRPC, callsPerSecond int, metrics RPCMetrics) *Client {
	limiter := ratelimit.NewUnlimited()
	if callsPerSecond > 0 {
		limiter = ratelimit.New(callsPerSecond)
	}
	return &Client{
		rpc:     rpc,
		limiter: limiter,
		metrics: metrics,
	}
}

// TipHeight returns the node's current best height.
func (c *Client) TipHeight(ctx context.Context) (height int32, err error) {
	if err = ctx.Err(); err != nil {
		return 0, err
	}
	c.limiter.Take()
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_block_count", err, started)
	}()

	count, err := c.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	if count < 0 || count > math.MaxInt32 {
		return 0, fmt.Errorf("block count %d out of range", count)
	}
	return int32(count), nil
}

// TipHash returns the node's current best block hash.
func (c *Client) TipHash(ctx context.Context) (hash chainhash.Hash, err error) {
	if err = ctx.Err(); err != nil {
		return chainhash.Hash{}, err
	}
	c.limiter.Take()
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_best_block_hash", err, started)
	}()

	h, err := c.rpc.GetBestBlockHash()
	if err != nil {
		return chainhash.Hash{}, err
	}
	return *h, nil
}

// BlockHashAt returns the active-chain block hash at the given height.
func (c *Client) BlockHashAt(ctx context.Context, height int32) (hash chainhash.Hash, err error) {
	if err = ctx.Err(); err != nil {
		return chainhash.Hash{}, err
	}
	c.limiter.Take()
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_block_hash", err, started)
	}()

	h, err := c.rpc.GetBlockHash(int64(height))
	if err != nil {
		return chainhash.Hash{}, err
	}
	return *h, nil
}

// FetchBlockByHash retrieves a block with full transaction details.
func (c *Client) FetchBlockByHash(ctx context.Context, hash chainhash.Hash) (blk *model.Block, err error) {
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	c.limiter.Take()
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_block_verbose_tx", err, started)
	}()

	src, err := c.rpc.GetBlockVerboseTx(&hash)
	if err != nil {
		return nil, err
	}
	return BuildBlock(src)
}

// FetchBlockAt retrieves the active-chain block at the given height.
func (c *Client) FetchBlockAt(ctx context.Context, height int32) (*model.Block, error) {
	hash, err := c.BlockHashAt(ctx, height)
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	blk, err := c.FetchBlockByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	return blk, nil
}
