package dom

import "github.com/pkg/errors"

var (
	// ErrCycle is returned when the node to insert contains the insertion point.
	ErrCycle = errors.New("node is an ancestor of the insertion point")
	// ErrHasParent is returned when the node to insert is still attached.
	ErrHasParent = errors.New("node already has a parent")
	// ErrNotContainer is returned when the target cannot hold children.
	ErrNotContainer = errors.New("node cannot have children")
	// ErrNotChild is returned when a reference node is not a child of the parent.
	ErrNotChild = errors.New("reference node is not a child of the parent")
	// ErrInvalidNode is returned for handles that do not belong to the document.
	ErrInvalidNode = errors.New("invalid node handle")
	// ErrDocumentNode is returned when the Document node would be moved or removed.
	ErrDocumentNode = errors.New("the document node cannot be moved")
	// ErrForeignNode is returned when two nodes of different documents are combined.
	ErrForeignNode = errors.New("node belongs to another document")
)

// StructuralError reports a mutation that was rejected because it would break
// the tree invariants. The tree is left unchanged.
type StructuralError struct {
	Op   string
	Node NodeID
	Err  error
}

func (e *StructuralError) Error() string {
	return "dom: " + e.Op + ": " + e.Err.Error()
}

// Cause returns the underlying sentinel error.
func (e *StructuralError) Cause() error { return e.Err }

// Unwrap returns the underlying sentinel error.
func (e *StructuralError) Unwrap() error { return e.Err }

func structural(op string, id NodeID, err error) error {
	return errors.WithStack(&StructuralError{Op: op, Node: id, Err: err})
}
