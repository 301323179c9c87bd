// Package supply computes the coinbase subsidy schedule that drives ordinal
// minting.
package supply

const (
	// InitialSubsidy is the block subsidy of the first halving epoch, in
	// satoshis.
	InitialSubsidy uint64 = 50 * 100_000_000

	// HalvingInterval is the number of blocks between subsidy halvings.
	HalvingInterval = 210_000

	// maxHalvings caps the shift count at the width of uint64. The shifted
	// subsidy is already zero from the 33rd halving on.
	maxHalvings = 64
)

// Subsidy returns the newly minted satoshi amount for a block at the given
// height. Negative heights mint nothing.
func Subsidy(height int32) uint64 {
	if height < 0 {
		return 0
	}
	halvings := uint64(height) / HalvingInterval
	if halvings >= maxHalvings {
		return 0
	}
	return InitialSubsidy >> halvings
}
