// Primecount is a command-line front-end for the primecount library.
//
// Usage:
//
//	primecount [options] x
//
// Options:
//
//	-t, --threads N   number of threads (default: all CPUs)
//	    --alpha F     Deléglise-Rivat tuning factor
//	    --phi A       compute phi(x, A) instead of pi(x)
//	-s, --status      show a progress bar during sieving
//	    --time        print the elapsed time
//	-h, --help        display help
package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/pborman/getopt/v2"
	"github.com/schollz/progressbar/v3"

	"github.com/pgujjula/primecount"
)

func main() {
	helpFlag := getopt.BoolLong("help", 'h', "display help")
	threads := getopt.IntLong("threads", 't', runtime.NumCPU(), "number of threads")
	alphaStr := getopt.StringLong("alpha", 0, "", "tuning factor alpha")
	phiA := getopt.Int64Long("phi", 0, -1, "compute phi(x, a) with this a")
	status := getopt.BoolLong("status", 's', "show a progress bar")
	timeFlag := getopt.BoolLong("time", 0, "print the elapsed time")
	getopt.SetParameters("x")
	getopt.Parse()

	if *helpFlag {
		getopt.PrintUsage(os.Stdout)
		return
	}

	args := getopt.Args()
	if len(args) != 1 {
		getopt.PrintUsage(os.Stderr)
		os.Exit(2)
	}
	x, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "primecount: invalid x %q\n", args[0])
		os.Exit(2)
	}

	opts := []primecount.Option{primecount.WithThreads(*threads)}
	if *alphaStr != "" {
		alpha, err := strconv.ParseFloat(*alphaStr, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "primecount: invalid alpha %q\n", *alphaStr)
			os.Exit(2)
		}
		opts = append(opts, primecount.WithAlpha(alpha))
	}

	var bar *progressbar.ProgressBar
	if *status {
		opts = append(opts, primecount.WithProgress(func(done, total int64) {
			if bar == nil {
				bar = progressbar.Default(total, "sieving")
			}
			_ = bar.Set64(done)
		}))
	}

	start := time.Now()
	var result string
	if *phiA >= 0 {
		if x > primecount.MaxX() {
			fmt.Fprintf(os.Stderr, "primecount: x exceeds maximum %d\n", primecount.MaxX())
			os.Exit(1)
		}
		value, err := primecount.Phi(int64(x), *phiA, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "primecount: %v\n", err)
			os.Exit(1)
		}
		result = fmt.Sprintf("phi(%d, %d) = %d", x, *phiA, value)
	} else {
		count, err := primecount.Pi(x, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "primecount: %v\n", err)
			os.Exit(1)
		}
		result = fmt.Sprintf("%d", count)
	}
	elapsed := time.Since(start)

	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}
	fmt.Println(result)
	if *timeFlag {
		fmt.Printf("time: %.3fs\n", elapsed.Seconds())
	}
}
