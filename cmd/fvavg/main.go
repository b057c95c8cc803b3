// Command fvavg runs the flow-volume averaging pipeline over one or
// more recordings, each producing its own output workbook.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	fvavg "github.com/dcxht/fvavg/src"
)

func main() {
	intervals := pflag.IntP("intervals", "k", 100, "Number of bins per breath phase.")
	output := pflag.StringP("output", "o", "", "Output file path (single input only); defaults to <input>_processed.xlsx.")
	maxLoopPath := pflag.String("max-loop", "", "Optional reference (Vol, Flow) workbook for max-loop comparison.")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug logging.")
	runLogPath := pflag.String("run-log", "", "Optional CSV ledger path for batch outcomes.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = usage
	pflag.Parse()

	if *help || pflag.NArg() == 0 {
		usage()
		if *help {
			return
		}
		os.Exit(1)
	}

	if *verbose {
		fvavg.Log.SetLevel(log.DebugLevel)
	}

	if *output != "" && pflag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "fvavg: -o/--output can only be used with a single input file")
		os.Exit(1)
	}

	cfg := fvavg.DefaultConfig()
	cfg.Intervals = *intervals

	var runLog *fvavg.RunLog
	if *runLogPath != "" {
		rl, err := fvavg.OpenRunLog(*runLogPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fvavg:", err)
			os.Exit(1)
		}
		defer rl.Close()
		runLog = rl
	}

	var maxLoop *fvavg.MaxLoop
	if *maxLoopPath != "" {
		ml, err := fvavg.ReadMaxLoop(*maxLoopPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fvavg:", err)
			os.Exit(1)
		}
		maxLoop = &ml
	}

	failures := 0
	for _, input := range pflag.Args() {
		out := *output
		if out == "" {
			out = strings.TrimSuffix(input, filepath.Ext(input)) + "_processed.xlsx"
		}

		if err := processOne(input, out, cfg, maxLoop); err != nil {
			fvavg.Log.Warn("processing failed", "file", input, "err", err)
			if runLog != nil {
				runLog.RecordError(time.Now(), input, err)
			}
			failures++
			continue
		}

		fvavg.Log.Info("processed", "file", input, "output", out)
		if runLog != nil {
			runLog.Record(time.Now(), input, "ok", "")
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func processOne(input, output string, cfg fvavg.Config, maxLoop *fvavg.MaxLoop) error {
	rec, err := fvavg.ReadFormattedRecording(input)
	if err != nil {
		return err
	}

	result, err := fvavg.Run(rec, cfg)
	if err != nil {
		return err
	}

	return fvavg.WriteResult(result, output, maxLoop)
}

func usage() {
	fmt.Fprintln(os.Stderr, "Flow-volume averaging over one or more tidal-breathing recordings.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  fvavg [flags] recording.xlsx [recording2.xlsx ...]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	pflag.PrintDefaults()
}
