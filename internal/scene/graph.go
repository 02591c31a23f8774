package scene

import (
	"fmt"

	"github.com/keel3d/engine/internal/core/pool"
)

// Graph is the live scene graph: a pool of nodes plus parent/child links.
// It is single-writer; the editor mutates it only through commands.
type Graph struct {
	nodes *pool.Pool[Node]
	root  pool.Handle
}

// NewGraph creates a graph holding only the root node.
func NewGraph() *Graph {
	g := &Graph{nodes: pool.New[Node]()}
	g.root = g.nodes.Add(NewNode("__ROOT__"))
	return g
}

// Root returns the handle of the permanent root node.
func (g *Graph) Root() pool.Handle { return g.root }

// Node returns the node at handle, or false for stale/reserved handles.
func (g *Graph) Node(handle pool.Handle) (*Node, bool) {
	return g.nodes.Borrow(handle)
}

// MustNode is Node for handles the caller knows are alive.
func (g *Graph) MustNode(handle pool.Handle) *Node {
	return g.nodes.MustBorrow(handle)
}

// Alive reports whether handle resolves to a live node.
func (g *Graph) Alive(handle pool.Handle) bool { return g.nodes.Alive(handle) }

// Len returns the number of live nodes, the root included.
func (g *Graph) Len() int { return g.nodes.Len() }

// AddNode inserts node into the pool and links it under the root.
func (g *Graph) AddNode(node Node) pool.Handle {
	handle := g.addUnlinked(node)
	g.LinkNodes(handle, g.root)
	return handle
}

func (g *Graph) addUnlinked(node Node) pool.Handle {
	node.parent = pool.None
	return g.nodes.Add(node)
}

// LinkNodes re-parents child under parent, detaching it from its current
// parent first.
func (g *Graph) LinkNodes(child, parent pool.Handle) {
	g.Unlink(child)
	c := g.nodes.MustBorrow(child)
	p := g.nodes.MustBorrow(parent)
	c.parent = parent
	p.children = append(p.children, child)
}

// Unlink detaches child from its parent, leaving it parentless but alive.
func (g *Graph) Unlink(child pool.Handle) {
	c := g.nodes.MustBorrow(child)
	if c.parent.IsNone() {
		return
	}
	p := g.nodes.MustBorrow(c.parent)
	for i, h := range p.children {
		if h == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	c.parent = pool.None
}

// TakeReserve detaches a single node from the graph, returning its ticket and
// value. The node must be childless: taking an inner node would leave its
// children holding a dangling parent handle, which is the same invariant
// violation as forgetting a linked node. Use TakeReserveSubGraph for trees.
func (g *Graph) TakeReserve(handle pool.Handle) (pool.Ticket, Node) {
	if handle == g.root {
		panic("graph: cannot take-reserve the root node")
	}
	n := g.nodes.MustBorrow(handle)
	if len(n.children) != 0 {
		panic(fmt.Sprintf("graph: take-reserve of node %v with %d children", handle, len(n.children)))
	}
	g.Unlink(handle)
	return g.nodes.TakeReserve(handle)
}

// PutBack reinstates a node taken with TakeReserve. The returned handle is
// identical to the one the node was taken from. The node comes back unlinked;
// the caller restores the parent link.
func (g *Graph) PutBack(ticket pool.Ticket, node Node) pool.Handle {
	return g.nodes.PutBack(ticket, node)
}

// Forget permanently releases a detached node and frees its slot for reuse.
func (g *Graph) Forget(ticket pool.Ticket, node Node) {
	if !node.parent.IsNone() || len(node.children) != 0 {
		panic(fmt.Sprintf("graph: forget of node %q that is still linked", node.name))
	}
	g.nodes.Forget(ticket)
}

// FindByName does a depth-first search under root for a node with the given
// name, returning pool.None if absent.
func (g *Graph) FindByName(root pool.Handle, name string) pool.Handle {
	n, ok := g.nodes.Borrow(root)
	if !ok {
		return pool.None
	}
	if n.name == name {
		return root
	}
	for _, child := range n.children {
		if found := g.FindByName(child, name); !found.IsNone() {
			return found
		}
	}
	return pool.None
}
