//go:build amd64
// +build amd64

package pstld

import "golang.org/x/sys/cpu"

// hasWideSIMD reports whether the CPU supports AVX2, used to lower the
// oversubscription factor on cores that can retire more useful work per
// chunk.
func hasWideSIMD() bool {
	return cpu.X86.HasAVX2
}

func init() {
	if hasWideSIMD() {
		chunksPerCPU = 6
	}
}
