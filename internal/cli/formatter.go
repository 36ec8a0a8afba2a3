package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/ParkWardRR/Echelon-Video-Analyzer/internal/analyzer"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// reasonOrder fixes the order failure reasons appear in the summary.
var reasonOrder = []analyzer.ProbeReason{
	analyzer.Unreadable,
	analyzer.UnsupportedFormat,
	analyzer.MetadataMissing,
}

// PrintJSON outputs statistics in JSON format.
func PrintJSON(stats *analyzer.Stats, writer io.Writer) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// formatDuration renders a duration in seconds as H:MM:SS, truncated to
// whole seconds.
func formatDuration(seconds float64) string {
	total := int64(seconds)

	return fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)
}

// PrintTable outputs statistics in human-readable table format.
func PrintTable(stats *analyzer.Stats, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\nScanned %d directories and found %d videos.\n", stats.DirCount, stats.Discovered)
	fmt.Fprintf(w, "Analyzed %d videos successfully", stats.Processed)

	if n := len(stats.Failures); n > 0 {
		fmt.Fprintf(w, ", %d could not be analyzed", n)
	}

	fmt.Fprint(w, ".\n")

	// Category table
	fmt.Fprintln(w, "\nCategory\tVideos\tRange\tAvg Duration\tAvg Size")

	for _, bucket := range stats.Buckets {
		if bucket.Count == 0 {
			fmt.Fprintf(w, "%s\t0\t-\t-\t-\n", bucket.Category)

			continue
		}

		fmt.Fprintf(w, "%s\t%d\t%s - %s\t%s\t%s\n",
			bucket.Category,
			bucket.Count,
			formatDuration(bucket.MinDuration), formatDuration(bucket.MaxDuration),
			formatDuration(bucket.AvgDuration),
			humanize.IBytes(uint64(bucket.AvgSize)))
	}

	// Stats summary
	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(stats.TotalBytes)), stats.TotalBytes)

	if stats.Processed > 0 {
		fmt.Fprintf(w, "Avg video size:\t%s\n",
			humanize.IBytes(uint64(stats.TotalBytes/stats.Processed)))
	}

	fmt.Fprintf(w, "Elapsed:\t%v\n", stats.Elapsed)

	if secs := stats.Elapsed.Seconds(); secs > 0 && stats.Discovered > 0 {
		fmt.Fprintf(w, "Speed:\t%.2f videos per minute\n", float64(stats.Discovered)/secs*60)
	}

	// Word tally
	if stats.TopN > 0 && len(stats.TopWords) > 0 {
		fmt.Fprintln(w, "\nTop filename words:\t\t")

		for i, word := range stats.TopWords {
			fmt.Fprintf(w, "  %d) %s:\t%d\n", i+1, word.Word, word.Count)
		}
	}

	// Failure summary
	if len(stats.Failures) > 0 {
		fmt.Fprintf(w, "\n%d files could not be analyzed:\t\t\n", len(stats.Failures))

		counts := make(map[analyzer.ProbeReason]int)
		for _, failure := range stats.Failures {
			counts[failure.Reason]++
		}

		for _, reason := range reasonOrder {
			if counts[reason] > 0 {
				fmt.Fprintf(w, "  %s:\t%d\n", reason, counts[reason])
			}
		}

		if stats.Verbose {
			fmt.Fprintln(w, "")

			for _, failure := range stats.Failures {
				fmt.Fprintf(w, "  %s\t(%s)\n", failure.Path, failure.Reason)
			}
		}
	}

	if stats.WalkErrors > 0 {
		fmt.Fprintf(w, "\nSkipped %d unreadable entries during discovery.\n", stats.WalkErrors)
	}

	return w.Flush()
}
