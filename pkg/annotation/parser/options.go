package parser

import (
	"fmt"
	"runtime"
)

// MixedPolicy decides what happens to cells mixing keyed and bare blocks.
type MixedPolicy string

const (
	// MixedKeyed keeps only the keyed blocks; bare blocks are reported and dropped.
	MixedKeyed MixedPolicy = "keyed"
	// MixedPreserve keeps both shapes in a KindMixed value.
	MixedPreserve MixedPolicy = "preserve"
)

// UnbalancedPolicy decides what happens to a block that is never closed.
type UnbalancedPolicy string

const (
	// UnbalancedDrop discards the unterminated tail and reports a warning.
	UnbalancedDrop UnbalancedPolicy = "drop"
	// UnbalancedError makes Parse fail on unterminated blocks.
	UnbalancedError UnbalancedPolicy = "error"
)

// Options holds the column-level parsing policy.
type Options struct {
	// SkipInvalidKey drops "[un-specified]" blocks and blocks whose key is
	// the sentinel.
	SkipInvalidKey bool

	// SkipInvalidValue drops sentinel tokens from value lists.
	SkipInvalidValue bool

	// Mixed selects the policy for cells with keyed and bare blocks.
	Mixed MixedPolicy

	// Unbalanced selects the policy for unterminated blocks.
	Unbalanced UnbalancedPolicy

	// Workers bounds ParseColumnContext concurrency. Zero means GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the policy used when nothing is configured:
// skip both kinds of invalid entries, keep keyed blocks in mixed cells and
// drop unterminated blocks.
func DefaultOptions() Options {
	return Options{
		SkipInvalidKey:   true,
		SkipInvalidValue: true,
		Mixed:            MixedKeyed,
		Unbalanced:       UnbalancedDrop,
	}
}

// Validate checks that the policy names are known.
func (o Options) Validate() error {
	switch o.Mixed {
	case MixedKeyed, MixedPreserve, "":
	default:
		return fmt.Errorf("unknown mixed policy %q (valid: keyed, preserve)", o.Mixed)
	}
	switch o.Unbalanced {
	case UnbalancedDrop, UnbalancedError, "":
	default:
		return fmt.Errorf("unknown unbalanced policy %q (valid: drop, error)", o.Unbalanced)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", o.Workers)
	}
	return nil
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}
