// Command fvavg-tlc consolidates several FVAvg output workbooks into
// one percent-of-TLC comparison table, or one annotated file per
// subject.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	fvavg "github.com/dcxht/fvavg/src"
)

// manifestEntry is one row of a --manifest YAML file: a batch of
// inputs too numerous to spell out as repeated --file flags.
type manifestEntry struct {
	Path      string  `yaml:"path"`
	TLC       float64 `yaml:"tlc"`
	SubjectID string  `yaml:"subject_id"`
}

func main() {
	files := pflag.StringArray("file", nil, "Input file as path=tlc; may be repeated.")
	manifestPath := pflag.String("manifest", "", "YAML file listing {path, tlc, subject_id} entries.")
	output := pflag.StringP("output", "o", "consolidated.xlsx", "Output workbook path (horizontal mode only).")
	separate := pflag.Bool("separate", false, "Write one annotated file per subject instead of a horizontal comparison.")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug logging.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = usage
	pflag.Parse()

	if *help {
		usage()
		return
	}

	if *verbose {
		fvavg.Log.SetLevel(log.DebugLevel)
	}

	inputs, err := collectInputs(*files, *manifestPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fvavg-tlc:", err)
		os.Exit(1)
	}
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "fvavg-tlc: no input files given (use --file or --manifest)")
		os.Exit(1)
	}

	for i := range inputs {
		if inputs[i].SubjectID == "" {
			inputs[i].SubjectID = fvavg.ExtractSubjectID(inputs[i].Path)
		}
	}

	result := fvavg.Consolidate(inputs)
	for _, f := range result.Failed {
		fmt.Fprintln(os.Stderr, "fvavg-tlc: skipped", f)
	}
	if len(result.Files) == 0 {
		fmt.Fprintln(os.Stderr, "fvavg-tlc: no files consolidated successfully")
		os.Exit(1)
	}

	if *separate {
		for _, cf := range result.Files {
			if err := fvavg.WriteSeparate(cf); err != nil {
				fmt.Fprintln(os.Stderr, "fvavg-tlc:", err)
				os.Exit(1)
			}
		}
		fmt.Printf("%d files written alongside their inputs\n", len(result.Files))
		return
	}

	if err := fvavg.WriteHorizontal(result, *output); err != nil {
		fmt.Fprintln(os.Stderr, "fvavg-tlc:", err)
		os.Exit(1)
	}
	fmt.Printf("consolidated %d files into %s\n", len(result.Files), *output)
}

func collectInputs(files []string, manifestPath string) ([]fvavg.TLCInput, error) {
	var inputs []fvavg.TLCInput

	for _, spec := range files {
		path, tlcStr, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("--file %q: expected path=tlc", spec)
		}
		tlc, err := strconv.ParseFloat(tlcStr, 64)
		if err != nil {
			return nil, fmt.Errorf("--file %q: invalid TLC value: %w", spec, err)
		}
		inputs = append(inputs, fvavg.TLCInput{Path: path, TLC: tlc})
	}

	if manifestPath != "" {
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			return nil, err
		}
		var entries []manifestEntry
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", manifestPath, err)
		}
		for _, e := range entries {
			inputs = append(inputs, fvavg.TLCInput{Path: e.Path, TLC: e.TLC, SubjectID: e.SubjectID})
		}
	}

	return inputs, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "Consolidate FVAvg outputs into a percent-of-TLC comparison table.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  fvavg-tlc --file a.xlsx=6.1 --file b.xlsx=5.8 -o out.xlsx")
	fmt.Fprintln(os.Stderr, "  fvavg-tlc --manifest batch.yaml --separate")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	pflag.PrintDefaults()
}
