package search

import "errors"

// ErrEmptyFrontier is returned when Remove is called on an empty frontier.
var ErrEmptyFrontier = errors.New("empty frontier")

// NoParent marks the root node of a search tree.
const NoParent = -1

// Node is one step of a search tree. Nodes live in an arena owned by a single
// search; Parent is the arena index of the predecessor and Action the movie
// that led from it.
type Node struct {
	State  string
	Action string
	Parent int
	Index  int
}

// IsRoot reports whether the node has no predecessor.
func (n Node) IsRoot() bool {
	return n.Parent == NoParent
}

// Frontier holds discovered nodes that are waiting to be expanded.
type Frontier interface {
	Add(node Node)
	Remove() (Node, error)
	ContainsState(state string) bool
	Empty() bool
	Len() int
}

type nodeList struct {
	nodes []Node
}

func (l *nodeList) Add(node Node) {
	l.nodes = append(l.nodes, node)
}

// ContainsState scans the held nodes for one with the given state.
func (l *nodeList) ContainsState(state string) bool {
	for _, n := range l.nodes {
		if n.State == state {
			return true
		}
	}
	return false
}

func (l *nodeList) Empty() bool {
	return len(l.nodes) == 0
}

func (l *nodeList) Len() int {
	return len(l.nodes)
}

// StackFrontier removes the most recently added node first.
type StackFrontier struct {
	nodeList
}

// NewStackFrontier returns an empty LIFO frontier.
func NewStackFrontier() *StackFrontier {
	return &StackFrontier{}
}

// Remove pops the newest node.
func (s *StackFrontier) Remove() (Node, error) {
	if s.Empty() {
		return Node{}, ErrEmptyFrontier
	}
	last := len(s.nodes) - 1
	node := s.nodes[last]
	s.nodes = s.nodes[:last]
	return node, nil
}

// QueueFrontier removes the oldest node first.
type QueueFrontier struct {
	nodeList
	head int
}

// NewQueueFrontier returns an empty FIFO frontier.
func NewQueueFrontier() *QueueFrontier {
	return &QueueFrontier{}
}

// Remove dequeues the oldest node.
func (q *QueueFrontier) Remove() (Node, error) {
	if q.Empty() {
		return Node{}, ErrEmptyFrontier
	}
	node := q.nodes[q.head]
	q.nodes[q.head] = Node{}
	q.head++
	// reclaim the consumed prefix once it dominates the backing array
	if q.head > 64 && q.head*2 >= len(q.nodes) {
		q.nodes = append([]Node(nil), q.nodes[q.head:]...)
		q.head = 0
	}
	return node, nil
}

// ContainsState scans the nodes still queued.
func (q *QueueFrontier) ContainsState(state string) bool {
	for _, n := range q.nodes[q.head:] {
		if n.State == state {
			return true
		}
	}
	return false
}

// Empty reports whether no nodes remain queued.
func (q *QueueFrontier) Empty() bool {
	return q.head == len(q.nodes)
}

// Len returns the number of queued nodes.
func (q *QueueFrontier) Len() int {
	return len(q.nodes) - q.head
}

var (
	_ Frontier = (*StackFrontier)(nil)
	_ Frontier = (*QueueFrontier)(nil)
)
