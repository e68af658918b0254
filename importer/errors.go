package importer

import "fmt"

// UnresolvedParentError is returned when a rest matrix is needed before it was computed.
// Nodes are instantiated parent first, so this indicates an ordering bug.
type UnresolvedParentError struct {
	Node   int
	Parent int
}

func (e *UnresolvedParentError) Error() string {
	if e.Node == e.Parent {
		return fmt.Sprintf("node %d: rest matrix not computed", e.Node)
	}
	return fmt.Sprintf("node %d: rest matrix of parent joint %d not computed", e.Node, e.Parent)
}
