//go:build !linux

package fj

import "runtime"

func availableCPUs() int {
	// Affinity masks are only queried on Linux for now.
	return runtime.NumCPU()
}
