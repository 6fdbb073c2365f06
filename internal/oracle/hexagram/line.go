package hexagram

import "fmt"

// Line is one thrown line, identified by its traditional numeric code.
type Line int

const (
	ChangingYin  Line = 6
	StaticYang   Line = 7
	StaticYin    Line = 8
	ChangingYang Line = 9
)

// linesBySum maps a three-toss sum to its line. Index 0..5 are impossible
// sums and stay zero.
var linesBySum = [...]Line{
	6: ChangingYin,
	7: StaticYang,
	8: StaticYin,
	9: ChangingYang,
}

// glyphs is the canonical single-line rendering for each line code.
var glyphs = map[Line]string{
	ChangingYin:  "--- x --- 6",
	StaticYang:   "--------- 7",
	StaticYin:    "---   --- 8",
	ChangingYang: "----o---- 9",
}

// Valid reports whether l is one of the four line codes.
func (l Line) Valid() bool {
	_, ok := glyphs[l]
	return ok
}

// Code returns the numeric line code, 6 through 9.
func (l Line) Code() int {
	return int(l)
}

// Yang reports whether the line is solid. Yin lines are broken.
func (l Line) Yang() bool {
	return l == StaticYang || l == ChangingYang
}

// Changing reports whether the line is old (moving) rather than young.
func (l Line) Changing() bool {
	return l == ChangingYin || l == ChangingYang
}

// Changed returns the line after it moves: old yin becomes young yang and old
// yang becomes young yin. Static lines are returned unchanged.
func (l Line) Changed() Line {
	switch l {
	case ChangingYin:
		return StaticYang
	case ChangingYang:
		return StaticYin
	default:
		return l
	}
}

// Glyph returns the canonical text for the line.
func (l Line) Glyph() string {
	glyph, ok := glyphs[l]
	if !ok {
		panic(fmt.Sprintf("hexagram: no glyph for line %d", int(l)))
	}
	return glyph
}

func (l Line) String() string {
	switch l {
	case ChangingYin:
		return "changing yin"
	case StaticYang:
		return "static yang"
	case StaticYin:
		return "static yin"
	case ChangingYang:
		return "changing yang"
	default:
		return fmt.Sprintf("Line(%d)", int(l))
	}
}

// Tosser is the weighted binary draw a line is built from. Each call returns
// 2 or 3 with equal probability.
type Tosser interface {
	Toss() int
}

// DrawLine tosses three coins and classifies their sum.
//
// It panics if the sum falls outside 6..9, which means t broke the Tosser
// contract.
func DrawLine(t Tosser) Line {
	sum := t.Toss() + t.Toss() + t.Toss()
	if sum < 0 || sum >= len(linesBySum) || linesBySum[sum] == 0 {
		panic(fmt.Sprintf("hexagram: impossible throw value %d", sum))
	}
	return linesBySum[sum]
}
