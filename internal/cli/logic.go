package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/ParkWardRR/Echelon-Video-Analyzer/internal/analyzer"
)

func logic(options analyzer.Options) error {
	enableProgress := strings.ToLower(options.Output) != "json" &&
		!options.Debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	ctx := context.Background()

	// Simple progress callback that prints directly to stderr
	var progressHook func(done, total int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(done, total int64) {
			msg := fmt.Sprintf("Probing… %d/%d videos", done, total)
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	stats, err := analyzer.Run(ctx, options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch strings.ToLower(options.Output) {
	case "json":
		return PrintJSON(stats, os.Stdout)
	case "table":
		return PrintTable(stats, os.Stdout)
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}
