package ast

// Visitor is invoked once per node during a walk. Returning false stops
// descent into the node's children but not the rest of the traversal.
type Visitor func(n Node) bool

// Walk traverses the tree rooted at n in depth-first document order.
// Attributes are visited after their element, before the element's children.
func Walk(n Node, visit Visitor) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	switch node := n.(type) {
	case *Template:
		walkAll(node.Body, visit)
	case *Element:
		for _, a := range node.Attributes {
			Walk(a, visit)
		}
		walkAll(node.Children, visit)
	case *Block:
		walkAll(node.Program, visit)
		walkAll(node.Inverse, visit)
	}
}

func walkAll(nodes []Node, visit Visitor) {
	for _, n := range nodes {
		Walk(n, visit)
	}
}
