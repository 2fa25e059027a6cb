package modifier

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"golang.org/x/net/html"
)

// Queue is the ordered list of text nodes awaiting transformation.
type Queue struct {
	nodes *arraylist.List
	head  int
}

// NewQueue creates a queue holding nodes, in order.
func NewQueue(nodes ...*html.Node) *Queue {
	q := &Queue{nodes: arraylist.New()}
	q.Push(nodes...)
	return q
}

// Push appends nodes to the end of the queue.
func (q *Queue) Push(nodes ...*html.Node) {
	for _, n := range nodes {
		q.nodes.Add(n)
	}
}

// Pop removes and returns the first node of the queue, or nil.
func (q *Queue) Pop() *html.Node {
	v, ok := q.nodes.Get(q.head)
	if !ok {
		return nil
	}
	q.head++
	if q.head >= 256 && q.head*2 >= q.nodes.Size() {
		q.compact()
	}
	return v.(*html.Node)
}

// Len returns the number of nodes waiting.
func (q *Queue) Len() int {
	return q.nodes.Size() - q.head
}

// Empty is true if no node is waiting.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}

// Clear discards all waiting nodes.
func (q *Queue) Clear() {
	q.nodes.Clear()
	q.head = 0
}

func (q *Queue) compact() {
	rest := q.nodes.Values()[q.head:]
	q.nodes = arraylist.New(rest...)
	q.head = 0
}
