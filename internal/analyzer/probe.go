package analyzer

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ProbeReason classifies why a single file could not be analyzed.
type ProbeReason int

const (
	// Unreadable means the file could not be opened or stat'd.
	Unreadable ProbeReason = iota
	// UnsupportedFormat means the metadata extractor rejected the container.
	UnsupportedFormat
	// MetadataMissing means the file was readable but no duration could be
	// determined.
	MetadataMissing
)

var reasonNames = [...]string{
	"unreadable",
	"unsupported format",
	"metadata missing",
}

func (r ProbeReason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}

	return reasonNames[r]
}

// MarshalText renders the reason as its name in JSON output.
func (r ProbeReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ProbeError reports one file that could not be analyzed. It never aborts a
// run; the dispatcher collects it for the final report.
type ProbeError struct {
	Path   string
	Reason ProbeReason
	Err    error
}

func (e *ProbeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("probe %s: %s: %v", e.Path, e.Reason, e.Err)
	}

	return fmt.Sprintf("probe %s: %s", e.Path, e.Reason)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// Metadata is the result of a successful probe.
type Metadata struct {
	// DurationSeconds is the container-reported duration, >= 0.
	DurationSeconds float64
	// SizeBytes is the filesystem-reported size.
	SizeBytes int64
}

// Prober extracts duration and size metadata from a single file.
// Implementations must be safe for concurrent use on distinct paths.
type Prober interface {
	Probe(ctx context.Context, path string) (Metadata, error)
}

// FFProbe extracts metadata by shelling out to ffprobe. Size comes from the
// filesystem, duration from the container's format section. Failures come
// back as *ProbeError.
type FFProbe struct{}

func (FFProbe) Probe(ctx context.Context, path string) (Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, &ProbeError{Path: path, Reason: Unreadable, Err: err}
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		"--", path)

	out, err := cmd.Output()
	if err != nil {
		return Metadata{}, &ProbeError{Path: path, Reason: UnsupportedFormat, Err: err}
	}

	duration, ok := parseDuration(out)
	if !ok {
		return Metadata{}, &ProbeError{Path: path, Reason: MetadataMissing}
	}

	return Metadata{DurationSeconds: duration, SizeBytes: info.Size()}, nil
}

// parseDuration extracts a finite, non-negative duration in seconds from
// ffprobe output. Broken containers can make ffprobe print "nan" or "inf",
// which ParseFloat accepts; both count as missing metadata. ffprobe prints
// one line per format section; only the first is used.
func parseDuration(out []byte) (float64, bool) {
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")

	line = strings.TrimSpace(line)
	if line == "" || line == "N/A" {
		return 0, false
	}

	duration, err := strconv.ParseFloat(line, 64)
	if err != nil || duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 0, false
	}

	return duration, true
}
