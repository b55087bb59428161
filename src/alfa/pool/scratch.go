package pool

import "github.com/amarbel-llc/xpatch/src/_/interfaces"

// Bytes pools scratch []byte buffers. The GDelta encoder borrows one
// per call for its instruction stream.
var Bytes = MakeSlice[byte, []byte]()

// GetBytes borrows a zero-length scratch buffer. Callers append into
// it and must not retain it past the returned repool call. The repool
// call puts back the slice exactly as it was borrowed, so capacity
// gained by appending after the borrow is not kept in the pool.
func GetBytes() ([]byte, interfaces.FuncRepool) {
	return Bytes.GetWithRepool()
}
