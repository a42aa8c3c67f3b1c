package genetic

import (
	"container/heap"
	"math"
)

type ranked struct {
	index   int
	fitness float64
}

// better orders by fitness, breaking ties towards the lower index.
func (a ranked) better(b ranked) bool {
	if a.fitness != b.fitness {
		return a.fitness > b.fitness
	}
	return a.index < b.index
}

// eliteHeap is a min-heap with the weakest elite on top.
type eliteHeap []ranked

func (h eliteHeap) Len() int           { return len(h) }
func (h eliteHeap) Less(i, j int) bool { return h[j].better(h[i]) }
func (h eliteHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *eliteHeap) Push(x any)        { *h = append(*h, x.(ranked)) }
func (h *eliteHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// selectElites returns the indices of the k fittest candidates, best first. Only the elite
// boundary is maintained, so the cost is O(n log k). NaN fitness ranks below everything.
func selectElites(fitness []float64, k int, dst []int) []int {
	k = min(k, len(fitness))
	h := make(eliteHeap, 0, k)
	for i, f := range fitness {
		if math.IsNaN(f) {
			f = math.Inf(-1)
		}
		r := ranked{index: i, fitness: f}
		if len(h) < k {
			heap.Push(&h, r)
			continue
		}
		if r.better(h[0]) {
			h[0] = r
			heap.Fix(&h, 0)
		}
	}

	dst = append(dst[:0], make([]int, len(h))...)
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = heap.Pop(&h).(ranked).index
	}
	return dst
}
