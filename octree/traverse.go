package octree

// PreOrder calls onLeaf for a node holding exactly one point and onBranch for any other node, visiting
// each node before its children and the children in ascending octant order. Either visitor may be nil.
// It returns false only when called on a nil node.
func (n *Node) PreOrder(onBranch, onLeaf Visitor) bool {
	if n == nil {
		return false
	}
	n.visit(onBranch, onLeaf)
	for _, child := range n.children {
		child.PreOrder(onBranch, onLeaf)
	}
	return true
}

// PostOrder is like PreOrder but visits each node after all of its children.
func (n *Node) PostOrder(onBranch, onLeaf Visitor) bool {
	if n == nil {
		return false
	}
	for _, child := range n.children {
		child.PostOrder(onBranch, onLeaf)
	}
	n.visit(onBranch, onLeaf)
	return true
}

func (n *Node) visit(onBranch, onLeaf Visitor) {
	if n.count == 1 {
		if onLeaf != nil {
			onLeaf(n)
		}
		return
	}
	if onBranch != nil {
		onBranch(n)
	}
}
