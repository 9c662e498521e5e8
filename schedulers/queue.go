package schedulers

import (
	"container/heap"
	"time"
)

type task struct {
	at    time.Time
	seq   uint64
	guard Guard
	fn    Schedulable
}

// queue orders tasks by time point, then by insertion order.
type queue struct {
	tasks taskHeap
	seq   uint64
}

func newQueue() *queue {
	return &queue{}
}

func (q *queue) push(at time.Time, guard Guard, fn Schedulable) {
	q.pushTask(&task{guard: guard, fn: fn}, at)
}

// pushTask (re)queues t at a new time point, behind everything already queued for that time.
func (q *queue) pushTask(t *task, at time.Time) {
	q.seq++
	t.at = at
	t.seq = q.seq
	heap.Push(&q.tasks, t)
}

func (q *queue) pop() *task {
	return heap.Pop(&q.tasks).(*task)
}

func (q *queue) peek() *task {
	return q.tasks[0]
}

func (q *queue) empty() bool {
	return len(q.tasks) == 0
}

func (q *queue) len() int {
	return len(q.tasks)
}

type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) { *h = append(*h, x.(*task)) }

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
