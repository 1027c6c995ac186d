package geometry

import (
	"cmp"
	"slices"
)

// Intersection records where along a ray an object was struck
type Intersection struct {
	T      float64
	Object *Shape
}

// NewIntersection creates an intersection at t with the given object
func NewIntersection(t float64, object *Shape) Intersection {
	return Intersection{T: t, Object: object}
}

// same reports whether two intersections are the same hit on the same shape
func (i Intersection) same(other Intersection) bool {
	return i.T == other.T && i.Object == other.Object
}

// Intersections is a collection of intersections kept in ascending t order
type Intersections struct {
	list []Intersection
}

// NewIntersections builds a sorted collection
func NewIntersections(xs ...Intersection) Intersections {
	list := slices.Clone(xs)
	slices.SortStableFunc(list, compareT)
	return Intersections{list: list}
}

func compareT(a, b Intersection) int {
	return cmp.Compare(a.T, b.T)
}

// Add inserts intersections, keeping the collection sorted
func (xs *Intersections) Add(items ...Intersection) {
	for _, item := range items {
		i, _ := slices.BinarySearchFunc(xs.list, item, func(e, target Intersection) int {
			// insert after existing equal values so ties keep arrival order
			if e.T <= target.T {
				return -1
			}
			return 1
		})
		xs.list = slices.Insert(xs.list, i, item)
	}
}

// Merge returns a sorted collection holding the intersections of both
func (xs Intersections) Merge(other Intersections) Intersections {
	merged := make([]Intersection, 0, len(xs.list)+len(other.list))
	i, j := 0, 0
	for i < len(xs.list) && j < len(other.list) {
		if other.list[j].T < xs.list[i].T {
			merged = append(merged, other.list[j])
			j++
		} else {
			merged = append(merged, xs.list[i])
			i++
		}
	}
	merged = append(merged, xs.list[i:]...)
	merged = append(merged, other.list[j:]...)
	return Intersections{list: merged}
}

// Len returns the number of intersections
func (xs Intersections) Len() int {
	return len(xs.list)
}

// Get returns the i-th intersection in t order
func (xs Intersections) Get(i int) (Intersection, bool) {
	if i < 0 || i >= len(xs.list) {
		return Intersection{}, false
	}
	return xs.list[i], true
}

// All returns a copy of the intersections in t order
func (xs Intersections) All() []Intersection {
	return slices.Clone(xs.list)
}

// Hit returns the visible intersection: the one with the smallest
// non-negative t
func (xs Intersections) Hit() (Intersection, bool) {
	for _, x := range xs.list {
		if x.T >= 0 {
			return x, true
		}
	}
	return Intersection{}, false
}
