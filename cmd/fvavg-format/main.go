// Command fvavg-format converts a batch of "unedited" single-column
// respiratory data dumps into the formatted Time/Vol/Flow layout FVAvg
// expects, continuing past any file that fails to parse.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	fvavg "github.com/dcxht/fvavg/src"
)

func main() {
	outputDir := pflag.StringP("output-dir", "o", "", "Directory to write converted files into (defaults to each input's own directory).")
	period := pflag.Float64P("period", "p", 0.01, "Synthesized sample period, in seconds.")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug logging.")
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

	var successful, failed int
	for _, input := range pflag.Args() {
		outDir := *outputDir
		if outDir == "" {
			outDir = filepath.Dir(input)
		}
		base := filepath.Base(input)
		ext := filepath.Ext(base)
		outPath := filepath.Join(outDir, base[:len(base)-len(ext)]+"_formatted.xlsx")

		rec, err := fvavg.ConvertUnedited(input, *period)
		if err != nil {
			fvavg.Log.Warn("conversion failed", "file", input, "err", err)
			failed++
			continue
		}
		if err := fvavg.WriteFormattedRecording(rec, outPath); err != nil {
			fvavg.Log.Warn("write failed", "file", input, "err", err)
			failed++
			continue
		}

		fvavg.Log.Info("converted", "file", input, "output", outPath)
		successful++
	}

	fmt.Printf("%d converted, %d failed\n", successful, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Convert unedited respiratory data dumps into FVAvg's Time/Vol/Flow layout.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  fvavg-format [flags] raw1.xlsx [raw2.xlsx ...]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	pflag.PrintDefaults()
}
