// Package model defines domain types shared across the satoshi-range index.
package model

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/ranges"
)

// Network identifies the Bitcoin network the index follows.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
)

// Mode selects how the index treats entries of spent outputs. The mode is
// stamped into the store on first creation; changing it requires a reindex.
type Mode string

var (
	// ModeFull keeps every entry untouched after creation. Spent outputs are
	// only removed when their creating block is disconnected.
	ModeFull Mode = "full"
	// ModePrune physically deletes spent entries once the spend is buried
	// beyond the prune horizon.
	ModePrune Mode = "prune"
	// ModeRewriteSpent rewrites consumed entries with the spent flag set.
	// Required for current-location lookups.
	ModeRewriteSpent Mode = "rewrite-spent"
)

// Outpoint uniquely identifies a transaction output.
type Outpoint struct {
	TxID chainhash.Hash
	Vout uint32
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID, o.Vout)
}

// OutputEntry is the per-output record persisted by the index.
type OutputEntry struct {
	Ranges      ranges.RangeList
	BlockHeight int32
	Spent       bool
	Inscription bool
}

// TxIn references the output consumed by a transaction input.
type TxIn struct {
	PrevTxID chainhash.Hash
	PrevVout uint32
}

// TxOut is a transaction output with its nominal value and raw script.
type TxOut struct {
	Value  uint64
	Script []byte
}

// Transaction carries the fields of a confirmed transaction the index needs.
type Transaction struct {
	TxID       chainhash.Hash
	IsCoinbase bool
	Inputs     []TxIn
	Outputs    []TxOut
}

// Block is a confirmed block handed to the flow engine.
type Block struct {
	Hash     chainhash.Hash
	PrevHash chainhash.Hash
	Height   int32
	Txs      []Transaction
}
