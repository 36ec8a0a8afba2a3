package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/pflag"

	"github.com/ParkWardRR/Echelon-Video-Analyzer/internal/analyzer"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

func help() {
	fmt.Println(heredoc.Doc(`
		echelon-video-analyzer scans a directory tree for video files and reports
		duration and size statistics per category, plus the most frequent words
		found in the video filenames.

		Categories are fixed duration ranges: Super Short (under 1 min),
		Short (1-5 min), Medium (5-20 min), Long (20-60 min) and
		Very Long (1 hour and up).

		Duration extraction shells out to ffprobe, which must be on PATH.
		Files that cannot be analyzed are counted and listed, never fatal.

		Usage:

			echelon-video-analyzer -d <directory> [flags]

		Flags:
	`))
	pflag.PrintDefaults()
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var options analyzer.Options

	allowedOutputs := []string{"table", "json"}

	pflag.StringVarP(&options.Root, "directory", "d", "", "Directory to scan for video files (required)")
	pflag.IntVarP(&options.Threads, "threads", "t", 0, "Maximum number of probe workers (0 = number of CPU cores)")
	pflag.IntVarP(&options.TopN, "topn", "n", analyzer.DefaultTopN, "Number of top filename words to display (0 disables the tally)")
	pflag.BoolVarP(&options.Verbose, "verbose", "v", false, "List every file that could not be analyzed")
	pflag.StringVarP(&options.Output, "output", "o", "table", "Output format: json or table")
	pflag.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	pflag.BoolVar(&options.Version, "version", false, "Show version and exit")

	pflag.CommandLine.SortFlags = false
	pflag.Usage = help
	pflag.Parse()

	if options.Version {
		fmt.Println(c.version)

		return nil
	}

	if options.Root == "" {
		return errors.New("missing required flag: -d/--directory")
	}

	if options.Threads < 0 {
		return errors.New("threads cannot be negative")
	}

	if options.TopN < 0 {
		return errors.New("topn cannot be negative")
	}

	if !slices.Contains(allowedOutputs, options.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
	}

	return logic(options)
}
