package bank

import (
	_ "embed"
	"fmt"
)

//go:embed seed.yaml
var seedSuite []byte

// SeedSource is the source name recorded for the seed suite.
const SeedSource = "seed.yaml"

// Seed returns a Bank holding the built-in seed suite. It
// includes one deliberately failing scenario marked
// expected_failure and one scenario marked skip.
func Seed() (*Bank, error) {
	b := New()
	if err := b.LoadBytes(seedSuite, SeedSource); err != nil {
		return nil, fmt.Errorf("load seed suite: %w", err)
	}
	return b, nil
}

// SeedBytes returns a copy of the raw seed suite.
func SeedBytes() []byte {
	out := make([]byte, len(seedSuite))
	copy(out, seedSuite)
	return out
}
