package sync

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// NodeSource serves blocks and chain state from the node. Stale blocks
	// must remain fetchable by hash so forks can be rewound.
	NodeSource interface {
		TipHeight(ctx context.Context) (int32, error)
		BlockHashAt(ctx context.Context, height int32) (chainhash.Hash, error)
		FetchBlockByHash(ctx context.Context, hash chainhash.Hash) (*model.Block, error)
		FetchBlockAt(ctx context.Context, height int32) (*model.Block, error)
	}

	// BlockIndex is the writable side of the ordinal index.
	BlockIndex interface {
		BestBlock() (chainhash.Hash, int32, bool, error)
		ConnectBlock(ctx context.Context, blk *model.Block) error
		DisconnectBlock(ctx context.Context, blk *model.Block) error
	}

	// FollowerMetrics records metrics for the sync loop.
	FollowerMetrics interface {
		ObserveFetchTip(err error, started time.Time)
		ObserveConnect(err error, height int32, started time.Time)
		ObserveDisconnect(err error, height int32, started time.Time)
	}
)
