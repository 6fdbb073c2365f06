// Package seed derives the fixed-size generator seed for a reading.
//
// A seed is the SHA-256 digest of the prompt bytes followed by the canonical
// YYYY-MM-DD rendering of the as-of date. The feed order and the date layout
// are part of the reproducibility contract: changing either changes every
// reading ever produced, so any change must bump Version and add a version tag
// to the hash input.
package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"cloud.google.com/go/civil"
)

// Version identifies the seed derivation contract. Version 1 feeds no tag.
const Version = 1

// Size is the seed length in bytes.
const Size = sha256.Size

// Seed is the 32-byte digest used to key the coin generator.
type Seed [Size]byte

// String renders the seed as lowercase hex.
func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}

// Derive collapses the prompt and as-of date into a Seed.
//
// The prompt is hashed as an opaque byte sequence: no trimming and no
// normalization. asof must be a valid date; validation happens at the request
// boundary before Derive is called.
func Derive(prompt []byte, asof civil.Date) Seed {
	h := sha256.New()
	h.Write(prompt)
	h.Write([]byte(FormatDate(asof)))

	var out Seed
	copy(out[:], h.Sum(nil))
	return out
}

// FormatDate renders asof in the canonical seed layout, YYYY-MM-DD. Years
// outside 0 through 9999 use the ISO 8601 expanded form with an explicit
// sign, such as -0001-01-01 or +10000-01-01.
func FormatDate(asof civil.Date) string {
	if asof.Year < 0 || asof.Year > 9999 {
		return fmt.Sprintf("%+05d-%02d-%02d", asof.Year, int(asof.Month), asof.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", asof.Year, int(asof.Month), asof.Day)
}

// Parse decodes a seed from its String form.
func Parse(s string) (Seed, error) {
	var out Seed
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("decode seed: %w", err)
	}
	if len(raw) != Size {
		return out, fmt.Errorf("decode seed: got %d bytes, want %d", len(raw), Size)
	}
	copy(out[:], raw)
	return out, nil
}
