package aliases

import (
	"slices"
)

// ranking keeps the limit best values offered to it. The worst kept value
// sits at the root, so a better one can replace it without a full sort.
type ranking[T any] struct {
	data  []T
	limit int
	// better reports whether a ranks before b.
	better func(a, b T) bool
}

func newRanking[T any](limit int, better func(a, b T) bool) *ranking[T] {
	return &ranking[T]{
		data:   []T{},
		limit:  limit,
		better: better,
	}
}

func (r *ranking[T]) worse(a, b T) bool {
	return r.better(b, a)
}

func (r *ranking[T]) offer(value T) {
	if r.limit <= 0 {
		return
	}
	if len(r.data) < r.limit {
		r.data = append(r.data, value)
		r.bubbleUp(len(r.data) - 1)
		return
	}
	if r.better(value, r.data[0]) {
		r.data[0] = value
		r.bubbleDown(0)
	}
}

// sorted returns the kept values, best first.
func (r *ranking[T]) sorted() []T {
	result := slices.Clone(r.data)
	slices.SortStableFunc(result, func(a, b T) int {
		switch {
		case r.better(a, b):
			return -1
		case r.better(b, a):
			return 1
		}
		return 0
	})
	return result
}

func (r *ranking[T]) bubbleUp(index int) {
	for index > 0 {
		parent := (index - 1) / 2
		if !r.worse(r.data[index], r.data[parent]) {
			break
		}
		r.data[index], r.data[parent] = r.data[parent], r.data[index]
		index = parent
	}
}

func (r *ranking[T]) bubbleDown(index int) {
	size := len(r.data)
	for {
		left := 2*index + 1
		right := 2*index + 2
		worst := index

		if left < size && r.worse(r.data[left], r.data[worst]) {
			worst = left
		}
		if right < size && r.worse(r.data[right], r.data[worst]) {
			worst = right
		}
		if worst == index {
			break
		}

		r.data[index], r.data[worst] = r.data[worst], r.data[index]
		index = worst
	}
}
