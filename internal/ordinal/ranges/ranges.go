// Package ranges implements ordered, pairwise-disjoint satoshi ordinal ranges
// and the skim operation used to move ordinals from inputs to outputs.
package ranges

import "errors"

// ErrInsufficientSupply is returned when a skim asks for more ordinals than
// the list holds. It never fires on valid chain data.
var ErrInsufficientSupply = errors.New("range list holds fewer ordinals than requested")

// SatRange is a half-open interval [Start, End) of ordinal numbers.
type SatRange struct {
	Start uint64
	End   uint64
}

// Size returns the number of ordinals in the range.
func (r SatRange) Size() uint64 {
	return r.End - r.Start
}

// Contains reports whether the ordinal falls inside the range.
func (r SatRange) Contains(ord uint64) bool {
	return ord >= r.Start && ord < r.End
}

// RangeList is a sequence of pairwise-disjoint ranges. Order is significant:
// skims consume from the head, so the sequence encodes FIFO position, not
// ascending ordinal order.
type RangeList []SatRange

// Size returns the total number of ordinals across all ranges.
func (l RangeList) Size() uint64 {
	var total uint64
	for _, r := range l {
		total += r.Size()
	}
	return total
}

// Contains reports whether any range in the list holds the ordinal.
func (l RangeList) Contains(ord uint64) bool {
	for _, r := range l {
		if r.Contains(ord) {
			return true
		}
	}
	return false
}

// Skim removes the first n ordinals from the list. The skimmed prefix is
// returned first, the remainder second. A range straddling the cut is split,
// its prefix going to taken and its suffix leading the remainder. Neither
// input slice is mutated.
func Skim(list RangeList, n uint64) (RangeList, RangeList, error) {
	if n == 0 {
		return RangeList{}, list, nil
	}

	taken := make(RangeList, 0, 1)
	remaining := n
	for i, r := range list {
		size := r.Size()
		if size < remaining {
			taken = append(taken, r)
			remaining -= size
			continue
		}
		if size == remaining {
			taken = append(taken, r)
			return taken, list[i+1:], nil
		}
		cut := r.Start + remaining
		taken = append(taken, SatRange{Start: r.Start, End: cut})
		rest := make(RangeList, 0, len(list)-i)
		rest = append(rest, SatRange{Start: cut, End: r.End})
		rest = append(rest, list[i+1:]...)
		return taken, rest, nil
	}
	return nil, nil, ErrInsufficientSupply
}

// Normalize coalesces consecutive contiguous ranges. Only sequence-adjacent
// ranges are merged so the FIFO order is preserved. The store codec runs
// every list through Normalize so that connect/disconnect round-trips
// reproduce byte-identical values.
func Normalize(list RangeList) RangeList {
	out := make(RangeList, 0, len(list))
	for _, r := range list {
		if r.Start == r.End {
			continue
		}
		if n := len(out); n > 0 && out[n-1].End == r.Start {
			out[n-1].End = r.End
			continue
		}
		out = append(out, r)
	}
	return out
}
