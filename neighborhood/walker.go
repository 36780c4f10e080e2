// SPDX-License-Identifier: MIT

package neighborhood

// queueItem pairs a node index with the distance budget left on arrival.
type queueItem struct {
	node   int
	budget float64
}

// walker encapsulates the mutable state of one source's bounded walk.
// A walker is owned by exactly one goroutine.
type walker struct {
	rows    [][]float64 // read-only adjacency, shared between walkers
	source  int
	queue   []queueItem
	visited []bool
	order   []int
	onVisit func(source, node int, budget float64)
}

// newWalker prepares a walk from source over the shared adjacency rows.
func newWalker(rows [][]float64, source int, onVisit func(int, int, float64)) *walker {
	n := len(rows)

	return &walker{
		rows:    rows,
		source:  source,
		queue:   make([]queueItem, 0, n),
		visited: make([]bool, n),
		order:   make([]int, 0, n),
		onVisit: onVisit,
	}
}

// run drains the queue seeded with (source, epsilon) and returns the reached
// nodes in visit order. order[0] is always the source.
func (w *walker) run(epsilon float64) []int {
	w.queue = append(w.queue, queueItem{node: w.source, budget: epsilon})
	for len(w.queue) > 0 {
		item := w.dequeue()
		if w.visited[item.node] {
			continue // a copy with an earlier arrival already won
		}
		w.visit(item)
		if item.budget != 0 {
			w.enqueueNeighbors(item)
		}
	}

	return w.order
}

// dequeue pops the first item.
func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]

	return item
}

// visit marks the node reached and calls OnVisit.
func (w *walker) visit(item queueItem) {
	w.visited[item.node] = true
	w.order = append(w.order, item.node)
	w.onVisit(w.source, item.node, item.budget)
}

// enqueueNeighbors pushes every affordable, positive-weight, unvisited
// neighbor in ascending index order.
func (w *walker) enqueueNeighbors(item queueItem) {
	row := w.rows[item.node]
	var (
		m    int
		wt   float64
		left float64
	)
	for m = 0; m < len(row); m++ {
		if m == item.node || w.visited[m] {
			continue
		}
		wt = row[m]
		if wt <= 0 {
			continue
		}
		left = item.budget - wt
		if left < 0 {
			continue
		}
		w.queue = append(w.queue, queueItem{node: m, budget: left})
	}
}
