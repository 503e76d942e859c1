package tree

import (
	"fmt"
	"iter"
	"strings"
)

// Order selects a traversal order for Walk.
type Order int

const (
	// PreOrder visits a folder before its children.
	PreOrder Order = iota
	// PostOrder visits a folder after all of its children.
	PostOrder
	// LevelOrder visits folders breadth first, one depth at a time.
	LevelOrder
)

func (o Order) String() string {
	switch o {
	case PreOrder:
		return "pre"
	case PostOrder:
		return "post"
	case LevelOrder:
		return "level"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder accepts pre, post or level, with an optional "order" suffix.
func ParseOrder(s string) (Order, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(strings.TrimSuffix(s, "order"), "-")
	switch s {
	case "", "pre":
		return PreOrder, nil
	case "post":
		return PostOrder, nil
	case "level", "bfs":
		return LevelOrder, nil
	default:
		return PreOrder, fmt.Errorf("unknown traversal order %q (want pre, post or level)", s)
	}
}

// Walk yields the folders of the subtree rooted at id in the given order.
// Children are always taken in insertion order. The traversal uses explicit
// stacks and queues, so deep trees cannot exhaust the goroutine stack.
func (t *Tree) Walk(id NodeID, order Order) iter.Seq[NodeID] {
	switch order {
	case PostOrder:
		return t.walkPost(id)
	case LevelOrder:
		return t.walkLevel(id)
	default:
		return t.walkPre(id)
	}
}

func (t *Tree) walkPre(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		stack := []NodeID{id}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(current) {
				return
			}
			children := t.nodes[current].children
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

func (t *Tree) walkPost(id NodeID) iter.Seq[NodeID] {
	type frame struct {
		id   NodeID
		next int
	}
	return func(yield func(NodeID) bool) {
		stack := []frame{{id: id}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := t.nodes[top.id].children
			if top.next < len(children) {
				child := children[top.next]
				top.next++
				stack = append(stack, frame{id: child})
				continue
			}
			done := top.id
			stack = stack[:len(stack)-1]
			if !yield(done) {
				return
			}
		}
	}
}

func (t *Tree) walkLevel(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		queue := []NodeID{id}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			if !yield(current) {
				return
			}
			queue = append(queue, t.nodes[current].children...)
		}
	}
}

// Paths yields the full path of every folder under id in the given order.
func (t *Tree) Paths(id NodeID, order Order) iter.Seq[string] {
	return func(yield func(string) bool) {
		for folder := range t.Walk(id, order) {
			if !yield(t.Path(folder)) {
				return
			}
		}
	}
}

// Depth returns how many edges separate id from the root.
func (t *Tree) Depth(id NodeID) int {
	depth := 0
	for current := t.nodes[id].parent; current != noParent; current = t.nodes[current].parent {
		depth++
	}
	return depth
}
