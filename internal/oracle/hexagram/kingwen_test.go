package hexagram

import "testing"

func figure(lines ...bool) Hexagram {
	var h Hexagram
	for i, yang := range lines {
		if yang {
			h[i] = StaticYang
		} else {
			h[i] = StaticYin
		}
	}
	return h
}

func TestNumberKnownFigures(t *testing.T) {
	t.Parallel()

	const (
		o = true
		x = false
	)
	tcs := []struct {
		h    Hexagram
		want int
		name string
	}{
		{h: figure(o, o, o, o, o, o), want: 1, name: "The Creative"},
		{h: figure(x, x, x, x, x, x), want: 2, name: "The Receptive"},
		{h: figure(o, x, x, x, o, x), want: 3, name: "Difficulty at the Beginning"},
		{h: figure(x, o, x, x, x, o), want: 4, name: "Youthful Folly"},
		{h: figure(o, o, o, x, x, x), want: 11, name: "Peace"},
		{h: figure(x, x, x, o, o, o), want: 12, name: "Standstill"},
		{h: figure(x, o, o, x, x, o), want: 18, name: "Work on What Has Been Spoiled"},
		{h: figure(o, x, o, x, o, x), want: 63, name: "After Completion"},
		{h: figure(x, o, x, o, x, o), want: 64, name: "Before Completion"},
	}
	for _, tc := range tcs {
		if got := tc.h.Number(); got != tc.want {
			t.Fatalf("Number(%v) = %d, want %d", tc.h.Codes(), got, tc.want)
		}
		if got := tc.h.Name(); got != tc.name {
			t.Fatalf("Name(%v) = %q, want %q", tc.h.Codes(), got, tc.name)
		}
	}
}

func TestNumberUsesCurrentPolarity(t *testing.T) {
	t.Parallel()

	h := Hexagram{ChangingYang, ChangingYang, ChangingYang, ChangingYin, ChangingYin, ChangingYin}
	if got := h.Number(); got != 11 {
		t.Fatalf("Number() = %d, want 11", got)
	}
	relating, _ := h.Relating()
	if got := relating.Number(); got != 12 {
		t.Fatalf("relating Number() = %d, want 12", got)
	}
}

func TestNumberIsBijective(t *testing.T) {
	t.Parallel()

	seen := map[int]int{}
	for bits := 0; bits < 64; bits++ {
		var lines [Size]bool
		for i := range lines {
			lines[i] = bits&(1<<i) != 0
		}
		n := figure(lines[:]...).Number()
		if n < 1 || n > 64 {
			t.Fatalf("figure %06b numbered %d", bits, n)
		}
		if prev, ok := seen[n]; ok {
			t.Fatalf("figures %06b and %06b both numbered %d", prev, bits, n)
		}
		seen[n] = bits
		if Title(n) == "" {
			t.Fatalf("Title(%d) is empty", n)
		}
	}
}

func TestTitleOutOfRange(t *testing.T) {
	t.Parallel()

	for _, n := range []int{-1, 0, 65} {
		if got := Title(n); got != "" {
			t.Fatalf("Title(%d) = %q, want empty", n, got)
		}
	}
}
