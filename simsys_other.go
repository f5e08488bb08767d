//go:build !amd64
// +build !amd64

package pstld

// hasWideSIMD is conservatively false on architectures this library has no
// SIMD-width probe for; chunksPerCPU keeps its default.
func hasWideSIMD() bool {
	return false
}
