package phase

import "sync"

// Region classifies a point of the diagram by its phase fractions.
type Region int

const (
	RegionUndefined Region = iota // zero-width envelope, no fractions
	RegionVapour
	RegionLiquid
	RegionTwoPhase
)

func (r Region) String() string {
	switch r {
	case RegionVapour:
		return "vapour"
	case RegionLiquid:
		return "liquid"
	case RegionTwoPhase:
		return "two-phase"
	}
	return "undefined"
}

// Symbol is the single-rune map glyph for the region.
func (r Region) Symbol() rune {
	switch r {
	case RegionVapour:
		return 'V'
	case RegionLiquid:
		return 'L'
	case RegionTwoPhase:
		return '+'
	}
	return '.'
}

func Classify(f Fractions) Region {
	switch {
	case f.Vapour == 0 && f.Liquid == 0:
		return RegionUndefined
	case f.Vapour >= 1:
		return RegionVapour
	case f.Liquid >= 1:
		return RegionLiquid
	}
	return RegionTwoPhase
}

// RegionGrid classifies a cols x rows lattice over composition [0,1] and the
// dependent interval [lo, hi]. Row 0 is the top (hi) edge.
func RegionGrid(e Evaluator, lo, hi float64, cols, rows int) ([][]Region, error) {
	if cols <= 0 || rows <= 0 {
		return nil, ErrInvalidGrid
	}
	if e.Curve.Len() == 0 {
		return nil, ErrEmptyCurve
	}

	grid := make([][]Region, rows)
	for r := range grid {
		grid[r] = make([]Region, cols)
	}

	ParallelFor(rows, 4, func(start, end int) {
		for r := start; r < end; r++ {
			y := hi
			if rows > 1 {
				y = hi - float64(r)*(hi-lo)/float64(rows-1)
			}
			for col := 0; col < cols; col++ {
				x := 0.0
				if cols > 1 {
					x = float64(col) / float64(cols-1)
				}
				grid[r][col] = Classify(e.Evaluate(Probe{X: x, Y: y}).Fractions)
			}
		}
	})
	return grid, nil
}

// ParallelFor executes fn over [0, n) split into contiguous chunks.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := 4
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
