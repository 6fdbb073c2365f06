// Package hexagram assembles six thrown lines into a hexagram.
//
// Lines are drawn with the three-coin method: each line is the sum of three
// fair tosses valued 2 or 3, so codes 6, 7, 8 and 9 occur with probability
// 1/8, 3/8, 3/8 and 1/8. Position 1 is the first line drawn and sits at the
// bottom of the figure.
package hexagram

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/louisbranch/hexagram/internal/oracle/coin"
	"github.com/louisbranch/hexagram/internal/oracle/seed"
)

// Size is the number of lines in a hexagram.
const Size = 6

// Hexagram is six lines in draw order.
type Hexagram [Size]Line

// Draw draws Size lines from t in sequence.
func Draw(t Tosser) Hexagram {
	var h Hexagram
	for i := range h {
		h[i] = DrawLine(t)
	}
	return h
}

// Cast runs the full pipeline for one reading: seed derivation, a fresh
// generator, and six line draws.
func Cast(prompt []byte, asof civil.Date) Hexagram {
	return Draw(coin.New(seed.Derive(prompt, asof)))
}

// String returns the canonical encoding: one glyph per line in draw order,
// joined by a single newline with no trailing newline.
func (h Hexagram) String() string {
	var b strings.Builder
	for i, line := range h {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.Glyph())
	}
	return b.String()
}

// FromCodes rebuilds a hexagram from line codes in draw order.
func FromCodes(codes []int) (Hexagram, error) {
	var h Hexagram
	if len(codes) != Size {
		return h, fmt.Errorf("hexagram needs %d lines, got %d", Size, len(codes))
	}
	for i, code := range codes {
		line := Line(code)
		if !line.Valid() {
			return h, fmt.Errorf("line %d: invalid code %d", i+1, code)
		}
		h[i] = line
	}
	return h, nil
}

// Lines returns the lines as a slice, in draw order.
func (h Hexagram) Lines() []Line {
	lines := make([]Line, Size)
	copy(lines, h[:])
	return lines
}

// Codes returns the numeric line codes in draw order.
func (h Hexagram) Codes() []int {
	codes := make([]int, Size)
	for i, line := range h {
		codes[i] = line.Code()
	}
	return codes
}

// HasChanging reports whether any line is changing.
func (h Hexagram) HasChanging() bool {
	for _, line := range h {
		if line.Changing() {
			return true
		}
	}
	return false
}

// Relating returns the hexagram reached once every changing line moves. The
// bool is false when no line changes.
func (h Hexagram) Relating() (Hexagram, bool) {
	if !h.HasChanging() {
		return h, false
	}
	var out Hexagram
	for i, line := range h {
		out[i] = line.Changed()
	}
	return out, true
}
