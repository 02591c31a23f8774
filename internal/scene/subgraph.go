package scene

import "github.com/keel3d/engine/internal/core/pool"

// ReservedNode pairs a vacated node value with the ticket for its slot.
// The two travel together: holding one without the other is invalid.
type ReservedNode struct {
	Ticket pool.Ticket
	Node   Node
}

// SubGraph is a rooted subtree extracted from the graph as one atomic unit.
// Every node keeps its original parent/child handles, so putting the
// sub-graph back restores the exact same topology at the exact same handles.
// Only the root's own parent link is cleared; relinking it is the caller's job.
type SubGraph struct {
	Root        ReservedNode
	Descendants []ReservedNode
}

// RootHandle returns the handle the sub-graph root will occupy again after
// PutSubGraphBack.
func (sg *SubGraph) RootHandle() pool.Handle { return sg.Root.Ticket.Handle() }

// TakeReserveSubGraph extracts the node at handle and all of its descendants,
// leaving reserved slots behind so no unrelated add can claim the handles.
func (g *Graph) TakeReserveSubGraph(handle pool.Handle) SubGraph {
	if handle == g.root {
		panic("graph: cannot take-reserve a sub-graph at the root node")
	}
	g.Unlink(handle)

	ticket, node := g.nodes.TakeReserve(handle)
	sg := SubGraph{Root: ReservedNode{Ticket: ticket, Node: node}}
	for _, child := range node.children {
		g.takeDescendants(child, &sg)
	}
	return sg
}

func (g *Graph) takeDescendants(handle pool.Handle, sg *SubGraph) {
	ticket, node := g.nodes.TakeReserve(handle)
	sg.Descendants = append(sg.Descendants, ReservedNode{Ticket: ticket, Node: node})
	for _, child := range node.children {
		g.takeDescendants(child, sg)
	}
}

// PutSubGraphBack reinserts every node of the sub-graph at its original
// handle and returns the root handle. Internal edges come back intact; the
// root is left unlinked for the caller to re-parent.
func (g *Graph) PutSubGraphBack(sg SubGraph) pool.Handle {
	for _, d := range sg.Descendants {
		g.nodes.PutBack(d.Ticket, d.Node)
	}
	return g.nodes.PutBack(sg.Root.Ticket, sg.Root.Node)
}

// ForgetSubGraph permanently releases every slot the sub-graph was reserving.
func (g *Graph) ForgetSubGraph(sg SubGraph) {
	for _, d := range sg.Descendants {
		g.nodes.Forget(d.Ticket)
	}
	g.nodes.Forget(sg.Root.Ticket)
}
