package pnmkit

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forEachRow calls fn for every row in [0, height), spreading rows over up
// to GOMAXPROCS goroutines. fn must only write to destination indices of
// its own row.
func forEachRow(height int, fn func(y int)) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < height; y++ {
		y := y
		g.Go(func() error {
			fn(y)
			return nil
		})
	}
	// fn cannot fail
	_ = g.Wait()
}
