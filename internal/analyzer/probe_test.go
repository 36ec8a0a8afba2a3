package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   float64
		ok     bool
	}{
		{"plain seconds", "4200.5\n", 4200.5, true},
		{"no trailing newline", "90", 90, true},
		{"multiple lines uses the first", "120.25\n300\n", 120.25, true},
		{"surrounding whitespace", "  15.0  \n", 15.0, true},
		{"empty output", "", 0, false},
		{"whitespace only", "\n\n", 0, false},
		{"not available marker", "N/A\n", 0, false},
		{"garbage", "moov atom not found", 0, false},
		{"negative duration", "-5\n", 0, false},
		{"nan parses but is rejected", "nan\n", 0, false},
		{"inf parses but is rejected", "inf\n", 0, false},
		{"negative inf", "-inf\n", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDuration([]byte(tt.output))
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseDuration(%q) = (%v, %v), want (%v, %v)",
					tt.output, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFFProbeNonExistentFile(t *testing.T) {
	// Stat fails before ffprobe is ever invoked, so this runs without ffmpeg.
	_, err := FFProbe{}.Probe(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if err == nil {
		t.Fatal("expected error for non-existent file")
	}

	var probeErr *ProbeError
	if !errors.As(err, &probeErr) {
		t.Fatalf("expected *ProbeError, got %T", err)
	}

	if probeErr.Reason != Unreadable {
		t.Errorf("Reason = %v, want %v", probeErr.Reason, Unreadable)
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Error("expected the stat error to be wrapped")
	}
}

func TestProbeErrorMessage(t *testing.T) {
	err := &ProbeError{Path: "/x/clip.mp4", Reason: MetadataMissing}
	if got, want := err.Error(), "probe /x/clip.mp4: metadata missing"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := &ProbeError{Path: "/x/clip.mp4", Reason: Unreadable, Err: os.ErrPermission}
	if !errors.Is(wrapped, os.ErrPermission) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}

func TestProbeReasonString(t *testing.T) {
	tests := []struct {
		reason ProbeReason
		want   string
	}{
		{Unreadable, "unreadable"},
		{UnsupportedFormat, "unsupported format"},
		{MetadataMissing, "metadata missing"},
		{ProbeReason(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("ProbeReason(%d).String() = %q, want %q", tt.reason, got, tt.want)
		}
	}
}
