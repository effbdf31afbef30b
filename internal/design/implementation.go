package design

// Implementation is the behaviour attached to a streamlet. The structural
// composer provides the common one; back-end primitives provide leaf
// implementations.
type Implementation interface {
	// Owner returns the handle of the streamlet this implements.
	Owner() StreamletHandle
}

// BackendImpl marks a streamlet as implemented directly by a named
// back-end primitive rather than by structural composition.
type BackendImpl struct {
	// Target names the back-end primitive.
	Target string

	// Handle is the implemented streamlet.
	Handle StreamletHandle
}

// Owner implements Implementation.
func (b BackendImpl) Owner() StreamletHandle {
	return b.Handle
}
