package hexagram

// trigram packs three lines bottom to top, yang = 1, bottom line in bit 0.
type trigram uint8

const (
	kun  trigram = 0b000
	zhen trigram = 0b001
	kan  trigram = 0b010
	dui  trigram = 0b011
	gen  trigram = 0b100
	li   trigram = 0b101
	xun  trigram = 0b110
	qian trigram = 0b111
)

// kingWenOrder lists trigrams in the row and column order of kingWenRows.
var kingWenOrder = [8]trigram{qian, zhen, kan, gen, kun, xun, li, dui}

// kingWenRows[upper][lower] is the King Wen sequence number, with both
// indexes following kingWenOrder.
var kingWenRows = [8][8]int{
	{1, 25, 6, 33, 12, 44, 13, 10},
	{34, 51, 40, 62, 16, 32, 55, 54},
	{5, 3, 29, 39, 8, 48, 63, 60},
	{26, 27, 4, 52, 23, 18, 22, 41},
	{11, 24, 7, 15, 2, 46, 36, 19},
	{9, 42, 59, 53, 20, 57, 37, 61},
	{14, 21, 64, 56, 35, 50, 30, 38},
	{43, 17, 47, 31, 45, 28, 49, 58},
}

// kingWen[upper][lower] is kingWenRows re-indexed by trigram value.
var kingWen = func() (table [8][8]int) {
	for u, upper := range kingWenOrder {
		for l, lower := range kingWenOrder {
			table[upper][lower] = kingWenRows[u][l]
		}
	}
	return table
}()

var names = [65]string{
	1:  "The Creative",
	2:  "The Receptive",
	3:  "Difficulty at the Beginning",
	4:  "Youthful Folly",
	5:  "Waiting",
	6:  "Conflict",
	7:  "The Army",
	8:  "Holding Together",
	9:  "The Taming Power of the Small",
	10: "Treading",
	11: "Peace",
	12: "Standstill",
	13: "Fellowship with Men",
	14: "Possession in Great Measure",
	15: "Modesty",
	16: "Enthusiasm",
	17: "Following",
	18: "Work on What Has Been Spoiled",
	19: "Approach",
	20: "Contemplation",
	21: "Biting Through",
	22: "Grace",
	23: "Splitting Apart",
	24: "Return",
	25: "Innocence",
	26: "The Taming Power of the Great",
	27: "The Corners of the Mouth",
	28: "Preponderance of the Great",
	29: "The Abysmal",
	30: "The Clinging",
	31: "Influence",
	32: "Duration",
	33: "Retreat",
	34: "The Power of the Great",
	35: "Progress",
	36: "Darkening of the Light",
	37: "The Family",
	38: "Opposition",
	39: "Obstruction",
	40: "Deliverance",
	41: "Decrease",
	42: "Increase",
	43: "Break-through",
	44: "Coming to Meet",
	45: "Gathering Together",
	46: "Pushing Upward",
	47: "Oppression",
	48: "The Well",
	49: "Revolution",
	50: "The Caldron",
	51: "The Arousing",
	52: "Keeping Still",
	53: "Development",
	54: "The Marrying Maiden",
	55: "Abundance",
	56: "The Wanderer",
	57: "The Gentle",
	58: "The Joyous",
	59: "Dispersion",
	60: "Limitation",
	61: "Inner Truth",
	62: "Preponderance of the Small",
	63: "After Completion",
	64: "Before Completion",
}

func packTrigram(lines []Line) trigram {
	var t trigram
	for i, line := range lines {
		if line.Yang() {
			t |= 1 << i
		}
	}
	return t
}

// Number returns the King Wen sequence number, 1 through 64, of the figure
// read as it stands (changing lines taken at their current polarity).
func (h Hexagram) Number() int {
	lower := packTrigram(h[:3])
	upper := packTrigram(h[3:])
	return kingWen[upper][lower]
}

// Name returns the English title of the hexagram.
func (h Hexagram) Name() string {
	return Title(h.Number())
}

// Title returns the English title for a King Wen number, or "" when n is out
// of range.
func Title(n int) string {
	if n < 1 || n >= len(names) {
		return ""
	}
	return names[n]
}
