// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poisson

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Solution holds a manufactured solution and its right-hand side
// f = -cx uxx - cy uyy (with cx = cy = 1)
type Solution struct {
	UExact func(x, y float64) float64
	FRhs   func(x, y float64) float64
}

// allocators holds all available manufactured solutions
var allocators = map[string]func() *Solution{}

// GetSolution returns the named manufactured solution
func GetSolution(name string) (*Solution, error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("cannot find manufactured solution named %q", name)
	}
	return alloc(), nil
}

// Solutions returns the sorted names of all manufactured solutions
func Solutions() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func init() {

	// u = (x - x²) (y² - y)
	allocators["manupoly"] = func() *Solution {
		return &Solution{
			UExact: func(x, y float64) float64 {
				return (x - x*x) * (y*y - y)
			},
			FRhs: func(x, y float64) float64 {
				uxx := -2.0 * (y*y - y)
				uyy := (x - x*x) * 2.0
				return -uxx - uyy
			},
		}
	}

	// u = -x exp(y);  note -(uxx + uyy) = -u
	allocators["manuexp"] = func() *Solution {
		return &Solution{
			UExact: func(x, y float64) float64 {
				return -x * math.Exp(y)
			},
			FRhs: func(x, y float64) float64 {
				return x * math.Exp(y)
			},
		}
	}

	// u = 0
	allocators["zero"] = func() *Solution {
		return &Solution{
			UExact: func(x, y float64) float64 { return 0 },
			FRhs:   func(x, y float64) float64 { return 0 },
		}
	}
}
