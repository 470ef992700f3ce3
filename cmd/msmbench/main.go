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

// Command msmbench benchmarks the MSM engine on BLS12-381 G1 with
// pseudorandom inputs and prints per-phase statistics.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-msm/msm"
)

func main() {
	var (
		logN    int
		threads int
		c, c0   int
		unsafe  bool
		verify  bool
		repeat  int
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "msmbench",
		Short: "Benchmark multi-scalar multiplication on BLS12-381 G1",
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 1 << logN
			engine, err := msm.New(msm.BLS12381G1())
			if err != nil {
				return err
			}
			if threads > 1 {
				if err := engine.StartThreads(threads); err != nil {
					return err
				}
				defer engine.StopThreads()
			}

			rng := rand.New(rand.NewSource(seed))
			fmt.Printf("generating %d points and scalars (seed %d)...\n", n, seed)
			points := engine.RandomPointsFast(n, rng)
			scalars := engine.RandomScalars(n, rng)

			opts := &msm.CallOptions{C: c, C0: c0, UnsafeAdditions: unsafe}

			var totals []time.Duration
			var last *msm.Log
			for i := 0; i < repeat; i++ {
				result, log, err := engine.MSM(scalars, points, opts)
				if err != nil {
					return err
				}
				totals = append(totals, log.Total)
				last = log

				if verify && i == 0 {
					fmt.Println("verifying against the bigint reference...")
					want, err := engine.NaiveMSM(scalars, points)
					if err != nil {
						return err
					}
					got := engine.ToAffine(result)
					if !equalPoints(got, want) {
						return fmt.Errorf("msmbench: result mismatch against reference")
					}
					fmt.Println("verified")
				}
			}

			fmt.Printf("\nn=%d c=%d c0=%d windows=%d threads=%d kernel=%s maxBucket=%d\n",
				last.N, last.C, last.C0, last.Windows, last.Threads, last.Kernel, last.MaxBucket)
			fmt.Printf("phases: prepare=%v sort=%v accumulate=%v reduce=%v combine=%v\n",
				last.Prepare, last.Sort, last.Accumulate, last.Reduce, last.Combine)
			fmt.Printf("total over %d runs: min=%v mean=%v max=%v\n",
				repeat, lo.Min(totals), lo.Sum(totals)/time.Duration(repeat), lo.Max(totals))
			return nil
		},
	}

	cmd.Flags().IntVarP(&logN, "log-n", "n", 14, "log2 of the MSM size")
	cmd.Flags().IntVarP(&threads, "threads", "t", runtime.GOMAXPROCS(0), "worker threads")
	cmd.Flags().IntVar(&c, "c", 0, "window width override (0 = tuning table)")
	cmd.Flags().IntVar(&c0, "c0", 0, "column width override (0 = tuning table)")
	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "use the unsafe first accumulation pass")
	cmd.Flags().BoolVar(&verify, "verify", false, "cross-check against the bigint reference (slow)")
	cmd.Flags().IntVarP(&repeat, "repeat", "r", 3, "benchmark repetitions")
	cmd.Flags().Int64Var(&seed, "seed", 1, "rng seed")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func equalPoints(a, b msm.PointBytes) bool {
	if a.Infinity || b.Infinity {
		return a.Infinity == b.Infinity
	}
	return string(a.X) == string(b.X) && string(a.Y) == string(b.Y)
}
