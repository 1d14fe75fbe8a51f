// Copyright 2025 go-forkjoin Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fj

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sys/cpu"
)

// Mode selects how a fork-join split is executed.
type Mode int

const (
	// ModeSpawn forks two fresh goroutines per split and joins them.
	// Concurrency is bounded only by recursion depth.
	ModeSpawn Mode = iota

	// ModePool offers split halves to a bounded worker pool and runs them
	// inline when every worker is busy.
	ModePool

	// ModeSequential runs the same recursion and merges on the caller.
	ModeSequential
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeSpawn:
		return "spawn"
	case ModePool:
		return "pool"
	case ModeSequential:
		return "sequential"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name back into a Mode. The empty string maps to
// the detected CurrentMode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return CurrentMode(), nil
	case "spawn":
		return ModeSpawn, nil
	case "pool":
		return ModePool, nil
	case "sequential", "seq":
		return ModeSequential, nil
	}
	return ModeSequential, fmt.Errorf("unknown mode %q: %w", s, ErrInvalidInput)
}

// currentMode is the detected execution mode for this runtime.
// Set by init() from the environment and the worker count.
var currentMode Mode

// defaultWorkers is the number of CPUs this process may run on.
// Set by init() via availableCPUs in dispatch_*.go files.
var defaultWorkers int

func init() {
	defaultWorkers = availableCPUs()
	if defaultWorkers <= 0 {
		defaultWorkers = runtime.GOMAXPROCS(0)
	}
	defaultWorkers = min(defaultWorkers, runtime.GOMAXPROCS(0))

	switch {
	case NoParallelEnv():
		currentMode = ModeSequential
	case os.Getenv("FJ_MODE") != "":
		m, err := ParseMode(os.Getenv("FJ_MODE"))
		if err != nil {
			m = ModeSpawn
		}
		currentMode = m
	case defaultWorkers == 1:
		currentMode = ModeSequential
	default:
		currentMode = ModeSpawn
	}
}

// CurrentMode returns the execution mode detected for this process.
func CurrentMode() Mode {
	return currentMode
}

// DefaultWorkers returns the number of CPUs available to this process,
// capped at GOMAXPROCS. On Linux the scheduler affinity mask is honoured.
func DefaultWorkers() int {
	return defaultWorkers
}

// NoParallelEnv checks if the FJ_NO_PARALLEL environment variable is set.
// When set, kernels run sequentially regardless of the CPU count.
// This is useful for testing and debugging.
func NoParallelEnv() bool {
	val := os.Getenv("FJ_NO_PARALLEL")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// CPUName returns a short description of the CPU features relevant to the
// kernels, for diagnostics.
func CPUName() string {
	var feats []string
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpu.X86.HasAVX2 {
			feats = append(feats, "avx2")
		}
		if cpu.X86.HasAVX512F {
			feats = append(feats, "avx512f")
		}
		if cpu.X86.HasBMI2 {
			feats = append(feats, "bmi2")
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			feats = append(feats, "asimd")
		}
		if cpu.ARM64.HasSVE {
			feats = append(feats, "sve")
		}
		if cpu.ARM64.HasATOMICS {
			feats = append(feats, "lse")
		}
	}
	if len(feats) == 0 {
		return runtime.GOARCH
	}
	return runtime.GOARCH + "/" + strings.Join(feats, ",")
}
