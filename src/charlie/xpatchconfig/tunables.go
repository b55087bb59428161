// Package xpatchconfig holds the GDelta matcher's tunable parameters.
// The wire format and round-trip behavior never depend on these values
// (see the GDelta internal matcher design note); they only affect how
// hard the encoder looks for copies, and therefore compression ratio
// and CPU time.
package xpatchconfig

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/amarbel-llc/xpatch/src/alfa/errors"
)

// GDelta holds the rolling-hash matcher's tunables.
type GDelta struct {
	// WindowLength is the k-gram size the rolling hash is computed
	// over. Larger windows reduce false-positive hash hits at the
	// cost of missing short matches.
	WindowLength int `toml:"window-length"`

	// MinMatchLength is the shortest COPY run the matcher will ever
	// emit; shorter runs are left as INSERT literals since the
	// instruction overhead would exceed the savings.
	MinMatchLength int `toml:"min-match-length"`

	// MaxChainLength bounds how many base offsets each hash bucket
	// keeps: once a bucket is full the oldest offset is dropped, so
	// only the most recent MaxChainLength offsets are checked. Zero
	// means unbounded.
	MaxChainLength int `toml:"max-chain-length"`
}

// Tunables is the top-level configuration document for a xpatch
// deployment. It carries only matcher knobs today; the wire format has
// no configuration surface of its own.
type Tunables struct {
	GDelta GDelta `toml:"gdelta"`
}

// Default returns the tunables the selector uses when the caller does
// not supply any, matched against the corpus sizes xpatch is expected
// to see (delta.go benchmarks in the §9 design notes).
func Default() Tunables {
	return Tunables{
		GDelta: GDelta{
			WindowLength:   16,
			MinMatchLength: 8,
			MaxChainLength: 32,
		},
	}
}

// Parse decodes a TOML tunables document, filling in any field a
// zero-value struct started with Default() would already have.
func Parse(data []byte) (tunables Tunables, err error) {
	tunables = Default()

	if err = toml.Unmarshal(data, &tunables); err != nil {
		err = errors.Wrap(err)
		return Tunables{}, err
	}

	if tunables.GDelta.WindowLength <= 0 {
		err = errors.Errorf(
			"xpatchconfig: window-length must be positive, got %d",
			tunables.GDelta.WindowLength,
		)
		return Tunables{}, err
	}

	if tunables.GDelta.MinMatchLength <= 0 {
		err = errors.Errorf(
			"xpatchconfig: min-match-length must be positive, got %d",
			tunables.GDelta.MinMatchLength,
		)
		return Tunables{}, err
	}

	return tunables, nil
}
