package geo

import (
	"sort"

	"github.com/paulmach/orb"
)

// Nearest keeps the items whose point lies inside c, ordered by distance from
// the center. Items without a point are dropped. A limit <= 0 keeps everything.
// Equidistant items keep their input order.
func Nearest[T any](c Cap, items []T, point func(T) (orb.Point, bool), limit int) []T {
	type ranked struct {
		item     T
		distance float64
	}

	inside := make([]ranked, 0, len(items))
	for _, item := range items {
		p, ok := point(item)
		if !ok || !c.Contains(p) {
			continue
		}
		inside = append(inside, ranked{item: item, distance: AngularDistance(c.Center, p)})
	}

	sort.SliceStable(inside, func(i, j int) bool {
		return inside[i].distance < inside[j].distance
	})

	if limit > 0 && len(inside) > limit {
		inside = inside[:limit]
	}

	result := make([]T, len(inside))
	for i, r := range inside {
		result[i] = r.item
	}

	return result
}
