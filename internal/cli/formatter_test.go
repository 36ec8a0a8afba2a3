package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ParkWardRR/Echelon-Video-Analyzer/internal/analyzer"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00:00"},
		{59.9, "0:00:59"},
		{60, "0:01:00"},
		{90, "0:01:30"},
		{3661, "1:01:01"},
		{5000, "1:23:20"},
		{90000, "25:00:00"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

// fixtureStats builds a Stats with one populated bucket, one failure and a
// word tally entry.
func fixtureStats() *analyzer.Stats {
	return &analyzer.Stats{
		Root:       "/videos",
		DirCount:   3,
		Discovered: 3,
		Processed:  2,
		TotalBytes: 300 << 20,
		Buckets: []analyzer.BucketStats{
			{Category: "Super Short", Count: 0},
			{Category: "Short", Count: 2, MinDuration: 90, MaxDuration: 120, AvgDuration: 105, TotalSize: 300 << 20, AvgSize: 150 << 20},
			{Category: "Medium", Count: 0},
			{Category: "Long", Count: 0},
			{Category: "Very Long", Count: 0},
		},
		TopWords: []analyzer.WordCount{
			{Word: "holiday", Count: 2},
			{Word: "beach", Count: 1},
		},
		Failures: []analyzer.Failure{
			{Path: "/videos/corrupt.mp4", Reason: analyzer.MetadataMissing},
		},
		Elapsed: 2 * time.Second,
		TopN:    10,
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	if err := PrintTable(fixtureStats(), &buf); err != nil {
		t.Fatalf("PrintTable failed: %v", err)
	}

	out := buf.String()

	for _, want := range []string{
		"Scanned 3 directories and found 3 videos.",
		"Analyzed 2 videos successfully, 1 could not be analyzed.",
		"Short",
		"0:01:30 - 0:02:00",
		"0:01:45",
		"150 MiB",
		"Total size:",
		"300 MiB",
		"Top filename words:",
		"holiday:",
		"1 files could not be analyzed:",
		"metadata missing:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Empty buckets appear with a dash, not omitted.
	for _, category := range []string{"Super Short", "Medium", "Long", "Very Long"} {
		if !strings.Contains(out, category) {
			t.Errorf("empty bucket %q missing from output", category)
		}
	}

	// Not verbose: the failing path is not listed individually.
	if strings.Contains(out, "/videos/corrupt.mp4") {
		t.Error("failure paths listed without verbose")
	}
}

func TestPrintTableVerboseListsFailures(t *testing.T) {
	stats := fixtureStats()
	stats.Verbose = true

	var buf bytes.Buffer
	if err := PrintTable(stats, &buf); err != nil {
		t.Fatalf("PrintTable failed: %v", err)
	}

	if !strings.Contains(buf.String(), "/videos/corrupt.mp4") {
		t.Error("verbose output should list each failed path")
	}
}

func TestPrintTableNoWordSectionWhenDisabled(t *testing.T) {
	stats := fixtureStats()
	stats.TopN = 0
	stats.TopWords = nil

	var buf bytes.Buffer
	if err := PrintTable(stats, &buf); err != nil {
		t.Fatalf("PrintTable failed: %v", err)
	}

	if strings.Contains(buf.String(), "Top filename words") {
		t.Error("word tally section should be absent when TopN is 0")
	}
}

func TestPrintTableDeterministic(t *testing.T) {
	var first, second bytes.Buffer

	if err := PrintTable(fixtureStats(), &first); err != nil {
		t.Fatalf("PrintTable failed: %v", err)
	}

	if err := PrintTable(fixtureStats(), &second); err != nil {
		t.Fatalf("PrintTable failed: %v", err)
	}

	if first.String() != second.String() {
		t.Error("PrintTable output is not deterministic")
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer

	if err := PrintJSON(fixtureStats(), &buf); err != nil {
		t.Fatalf("PrintJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded["discovered"] != float64(3) {
		t.Errorf("discovered = %v, want 3", decoded["discovered"])
	}

	buckets, ok := decoded["buckets"].([]any)
	if !ok || len(buckets) != 5 {
		t.Fatalf("buckets = %v, want 5 entries", decoded["buckets"])
	}

	failures, ok := decoded["failures"].([]any)
	if !ok || len(failures) != 1 {
		t.Fatalf("failures = %v, want 1 entry", decoded["failures"])
	}

	failure := failures[0].(map[string]any)
	if failure["reason"] != "metadata missing" {
		t.Errorf("failure reason = %v, want %q", failure["reason"], "metadata missing")
	}
}
