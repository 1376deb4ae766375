package render

import (
	"testing"
)

// checkChunks verifies a chunk list against the rows it encodes: runs cover
// the row exactly, every column is within diff of its chunk's first column,
// and each color is the truncated mean of its columns.
func checkChunks(t *testing.T, chunks []Chunk, top, bottom []uint8, diff uint8) {
	t.Helper()
	at := func(i int) (uint8, uint8) {
		if bottom == nil {
			return top[i], 0
		}
		return top[i], bottom[i]
	}

	col := 0
	for ci, ch := range chunks {
		if ch.Run < 1 {
			t.Fatalf("chunk %d has run %d", ci, ch.Run)
		}
		baseT, baseB := at(col)
		sumT, sumB := 0, 0
		for i := col; i < col+ch.Run; i++ {
			tv, bv := at(i)
			if absDiff(tv, baseT) > diff || absDiff(bv, baseB) > diff {
				t.Errorf("chunk %d column %d (%d,%d) strays from first sample (%d,%d)", ci, i, tv, bv, baseT, baseB)
			}
			sumT += int(tv)
			sumB += int(bv)
		}
		if ch.Top != uint8(sumT/ch.Run) || ch.Bottom != uint8(sumB/ch.Run) {
			t.Errorf("chunk %d color (%d,%d), want mean (%d,%d)", ci, ch.Top, ch.Bottom, sumT/ch.Run, sumB/ch.Run)
		}
		if absDiff(ch.Top, baseT) > diff || absDiff(ch.Bottom, baseB) > diff {
			t.Errorf("chunk %d mean (%d,%d) strays from first sample (%d,%d)", ci, ch.Top, ch.Bottom, baseT, baseB)
		}
		col += ch.Run
	}
	if col != len(top) {
		t.Errorf("runs sum to %d, want %d", col, len(top))
	}
}

func TestCompressRowPairBlank(t *testing.T) {
	row := make([]uint8, 1080)
	got := CompressRowPair(row, row, DefaultCompressionDiff)
	if len(got) != 1 || got[0] != (Chunk{Run: 1080}) {
		t.Errorf("blank row = %v, want one chunk of 1080 black cells", got)
	}
}

func TestCompressRowPairSplits(t *testing.T) {
	top := []uint8{0, 0, 200, 210, 200, 0}
	bottom := []uint8{0, 5, 200, 200, 100, 0}
	got := CompressRowPair(top, bottom, DefaultCompressionDiff)
	want := []Chunk{
		{Run: 2, Top: 0, Bottom: 2},
		{Run: 2, Top: 205, Bottom: 200},
		{Run: 1, Top: 200, Bottom: 100},
		{Run: 1, Top: 0, Bottom: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	checkChunks(t, got, top, bottom, DefaultCompressionDiff)
}

func TestCompressRowPairThresholdInclusive(t *testing.T) {
	got := CompressRowPair([]uint8{100, 116, 84, 117}, nil, 16)
	want := []Chunk{{Run: 3, Top: 100}, {Run: 1, Top: 117}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCompressRowPairBaselineIsFirstSample(t *testing.T) {
	// The mean drops toward 0 after the first column, but 26 is still
	// within 16 of the first sample (10), so it joins the chunk.
	top := []uint8{10, 0, 0, 0, 26}
	got := CompressRowPair(top, nil, 16)
	if len(got) != 1 {
		t.Fatalf("got %v, want a single chunk", got)
	}
	if got[0] != (Chunk{Run: 5, Top: 7}) {
		t.Errorf("chunk = %+v, want {Run:5 Top:7 Bottom:0}", got[0])
	}
}

func TestCompressRowPairOddRow(t *testing.T) {
	top := []uint8{255, 255, 0}
	got := CompressRowPair(top, nil, 16)
	want := []Chunk{{Run: 2, Top: 255}, {Run: 1}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCompressRowPairEmpty(t *testing.T) {
	if got := CompressRowPair(nil, nil, 16); got != nil {
		t.Errorf("empty row = %v, want nil", got)
	}
}

func TestCompressRowPairZeroThreshold(t *testing.T) {
	top := []uint8{1, 1, 2, 2, 2, 1}
	got := CompressRowPair(top, nil, 0)
	if len(got) != 3 {
		t.Fatalf("got %v, want 3 exact runs", got)
	}
	checkChunks(t, got, top, nil, 0)
}

func TestCompressDiagonal(t *testing.T) {
	const size = 1080
	r := createTestRasterizer()
	g := NewGrid(size, size)
	r.DrawLine(g, ScreenPoint{X: 0, Y: 0, D: 1}, ScreenPoint{X: size - 1, Y: size - 1, D: 6})

	rows := Compress(g, DefaultCompressionDiff)
	if len(rows) != size/2 {
		t.Fatalf("got %d rows, want %d", len(rows), size/2)
	}

	multi := 0
	for i, chunks := range rows {
		top, bottom := g.Row(2*i), g.Row(2*i+1)
		checkChunks(t, chunks, top, bottom, DefaultCompressionDiff)

		blank := true
		for x := range top {
			if top[x] != 0 || bottom[x] != 0 {
				blank = false
				break
			}
		}
		if blank {
			if len(chunks) != 1 || chunks[0] != (Chunk{Run: size}) {
				t.Errorf("blank row %d = %v, want one black chunk", i, chunks)
			}
		} else if len(chunks) > 1 {
			multi++
		}
	}
	if multi == 0 {
		t.Error("rows crossing the diagonal should split into several chunks")
	}
}

func TestCompressOddHeight(t *testing.T) {
	g := NewGrid(4, 3)
	for x := range 4 {
		g.Set(x, 2, 90)
	}
	rows := Compress(g, DefaultCompressionDiff)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if len(rows[1]) != 1 || rows[1][0] != (Chunk{Run: 4, Top: 90, Bottom: 0}) {
		t.Errorf("last row = %v, want one chunk {4 90 0}", rows[1])
	}
}

func BenchmarkCompress(b *testing.B) {
	r := createTestRasterizer()
	s := NewState()
	s.AngleXW = 0.6
	g := r.Render(s, 1080, 1080)

	for b.Loop() {
		_ = Compress(g, DefaultCompressionDiff)
	}
}
