package temporal_test

import (
	"fmt"
	"time"

	"github.com/hupe1980/geochrono/geo"
	"github.com/hupe1980/geochrono/index/temporal"
)

func ExampleIndex_SlidingWindow() {
	idx := temporal.New[string]()
	base := geo.MustParseTimestamp("2024-05-01T00:00:00Z")
	idx.Insert("a", base)
	idx.Insert("b", base.Add(20*time.Minute))
	idx.Insert("c", base.Add(3*time.Hour+5*time.Minute))

	w := idx.SlidingWindow(time.Hour)
	for items := range w.All() {
		fmt.Println(w.Window().Start, items)
	}
	// Output:
	// 2024-05-01T00:00:00Z [a b]
	// 2024-05-01T03:00:00Z [c]
}
