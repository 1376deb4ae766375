package render

// DefaultCompressionDiff is the largest per-channel difference from a chunk's
// first sample that still joins the chunk.
const DefaultCompressionDiff = 16

// Chunk is a run of terminal cells sharing one color pair: Top colors the
// upper half of each cell and Bottom the lower half.
type Chunk struct {
	Run    int
	Top    uint8
	Bottom uint8
}

// CompressRowPair run-length encodes two grid rows into chunks. A column
// joins the open chunk when both of its channels are within diff of the
// chunk's first column; the chunk's color is the truncated mean of its
// columns. bottom may be nil (odd grid height), in which case the lower
// channel is black.
//
// The comparison baseline stays at the first column even as the mean moves,
// so a slow gradient can drift further than diff inside one chunk.
func CompressRowPair(top, bottom []uint8, diff uint8) []Chunk {
	if len(top) == 0 {
		return nil
	}

	sample := func(i int) (uint8, uint8) {
		if bottom == nil {
			return top[i], 0
		}
		return top[i], bottom[i]
	}

	var chunks []Chunk
	baseT, baseB := sample(0)
	n, accT, accB := 0, 0, 0

	for i := range top {
		t, b := sample(i)
		if absDiff(t, baseT) <= diff && absDiff(b, baseB) <= diff {
			n++
			accT += int(t)
			accB += int(b)
			continue
		}
		chunks = append(chunks, Chunk{Run: n, Top: uint8(accT / n), Bottom: uint8(accB / n)})
		baseT, baseB = t, b
		n, accT, accB = 1, int(t), int(b)
	}
	return append(chunks, Chunk{Run: n, Top: uint8(accT / n), Bottom: uint8(accB / n)})
}

// Compress encodes the grid two rows at a time, one chunk list per terminal
// row.
func Compress(g *Grid, diff uint8) [][]Chunk {
	rows := make([][]Chunk, 0, (g.Height+1)/2)
	for y := 0; y < g.Height; y += 2 {
		var bottom []uint8
		if y+1 < g.Height {
			bottom = g.Row(y + 1)
		}
		rows = append(rows, CompressRowPair(g.Row(y), bottom, diff))
	}
	return rows
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
