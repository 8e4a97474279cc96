// Package random derives seeds for the deterministic game core.
//
// Sessions that are not handed an explicit seed draw one here, so every
// board layout stays reproducible afterwards from the recorded seed value.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed draws a 64-bit seed from the operating system entropy pool.
func NewSeed() (int64, error) {
	var seed int64
	if err := binary.Read(crand.Reader, binary.BigEndian, &seed); err != nil {
		return 0, fmt.Errorf("draw seed entropy: %w", err)
	}
	return seed, nil
}
