package format

import "testing"

func TestAlignUp(t *testing.T) {
	cases := []struct{ in, a, want int }{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{4095, 4096, 4096},
		{4097, 4096, 8192},
	}
	for _, c := range cases {
		if got := AlignUp(c.in, c.a); got != c.want {
			t.Fatalf("AlignUp(%d, %d) = %d, want %d", c.in, c.a, got, c.want)
		}
	}
	if got := AlignUp(uint32(13), 8); got != 16 {
		t.Fatalf("AlignUp(uint32) = %d", got)
	}
}

func TestAdjustedSize(t *testing.T) {
	cases := []struct{ in, want int }{
		{1, 16},
		{8, 16},
		{9, 24},
		{16, 24},
		{17, 32},
		{32, 40},
		{56, 64},
		{100, 112},
		{4096, 4104},
	}
	for _, c := range cases {
		got := AdjustedSize(c.in)
		if got != c.want {
			t.Fatalf("AdjustedSize(%d) = %d, want %d", c.in, got, c.want)
		}
		if got-DoubleWord < c.in {
			t.Fatalf("AdjustedSize(%d) = %d leaves too little payload", c.in, got)
		}
		if !IsAligned(got) {
			t.Fatalf("AdjustedSize(%d) = %d not aligned", c.in, got)
		}
	}
}

func TestEvenWords(t *testing.T) {
	if got := EvenWords(3); got != 16 {
		t.Fatalf("EvenWords(3) = %d", got)
	}
	if got := EvenWords(4); got != 16 {
		t.Fatalf("EvenWords(4) = %d", got)
	}
	if got := EvenWords(ChunkSize / WordSize); got != ChunkSize {
		t.Fatalf("EvenWords(chunk) = %d", got)
	}
}
