// Copyright 2025 go-msm Authors
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

package fp

import (
	"os"
	"runtime"
	"strconv"

	"golang.org/x/sys/cpu"
)

// Kind identifies the multiply kernel a Field selected.
type Kind int

const (
	// Kernel51FMA is the 5x51 double-precision kernel on hardware FMA.
	Kernel51FMA Kind = iota

	// Kernel51Int is the 5x51 integer fallback, bit-identical to the FMA
	// kernel. Selected where hardware FMA is absent (math.FMA would fall
	// back to a slow software sequence) or forced via MSM_NO_FMA.
	Kernel51Int

	// Kernel29Int is the wide 16x29 integer kernel for moduli beyond the
	// 255-bit bound of the 51-limb representation.
	Kernel29Int
)

// String returns a human-readable name for the kernel.
func (k Kind) String() string {
	switch k {
	case Kernel51FMA:
		return "fma51"
	case Kernel51Int:
		return "int51"
	case Kernel29Int:
		return "int29"
	default:
		return "unknown"
	}
}

// NoFMAEnv reports whether MSM_NO_FMA is set to a true value, forcing the
// integer fallback regardless of CPU support.
func NoFMAEnv() bool {
	v := os.Getenv("MSM_NO_FMA")
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// hasHardwareFMA reports whether math.FMA compiles to a fused instruction
// on this CPU.
func hasHardwareFMA() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasFMA
	case "arm64", "ppc64", "ppc64le", "s390x":
		// FMA is part of the baseline instruction set.
		return true
	default:
		return false
	}
}

func pickKernel51() Kind {
	if NoFMAEnv() || !hasHardwareFMA() {
		return Kernel51Int
	}
	return Kernel51FMA
}
