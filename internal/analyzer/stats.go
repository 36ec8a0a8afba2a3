package analyzer

import (
	"sort"
	"sync"
	"time"
)

// DefaultExtensions is the recognized video extension allow-list, matched
// case-insensitively. Override via Options.Extensions.
var DefaultExtensions = []string{".mp4", ".avi", ".mkv", ".mov", ".wmv"}

const (
	// DefaultTopN is the default number of words reported by the tally.
	DefaultTopN = 10
	// DefaultMinWordLen is the default minimum token length for the tally.
	DefaultMinWordLen = 2
)

// Options configures a directory analysis run and CLI behavior.
type Options struct {
	// Root is the directory to scan.
	Root string
	// Threads is the probe worker pool size (0 = number of CPUs, minimum 1).
	Threads int
	// TopN is the number of top words to report (0 disables the word tally).
	TopN int
	// MinWordLen drops shorter tokens from the word tally (0 = default).
	MinWordLen int
	// Extensions is the video extension allow-list (empty = DefaultExtensions).
	Extensions []string
	// Prober overrides the metadata extractor (nil = FFProbe).
	Prober Prober
	// Verbose lists each failed file in the report.
	Verbose bool
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Output represents output format (table or json).
	Output string
	// Version indicates whether to show version and exit.
	Version bool
}

// VideoRecord is one successfully probed file.
type VideoRecord struct {
	// Path is the file path.
	Path string
	// DurationSeconds is the probed duration.
	DurationSeconds float64
	// SizeBytes is the filesystem-reported size.
	SizeBytes int64
}

// Failure is one file excluded from the category statistics.
type Failure struct {
	// Path is the file path.
	Path string `json:"path"`
	// Reason classifies the probe failure.
	Reason ProbeReason `json:"reason"`
}

// BucketStats holds the final aggregates for one duration category.
// Duration fields are zero for empty buckets and must not be read as ranges.
type BucketStats struct {
	// Category is the bucket name.
	Category string `json:"category"`
	// Count is the number of videos in the bucket.
	Count int64 `json:"count"`
	// MinDuration is the shortest duration folded in, seconds.
	MinDuration float64 `json:"min_duration_seconds"`
	// MaxDuration is the longest duration folded in, seconds.
	MaxDuration float64 `json:"max_duration_seconds"`
	// AvgDuration is the mean duration, seconds.
	AvgDuration float64 `json:"avg_duration_seconds"`
	// TotalSize is the cumulative size in bytes.
	TotalSize int64 `json:"total_size_bytes"`
	// AvgSize is the mean size in bytes.
	AvgSize int64 `json:"avg_size_bytes"`
}

// Stats holds aggregate statistics for one analysis run.
type Stats struct {
	// Root is the scanned directory.
	Root string `json:"root"`
	// DirCount is the number of directories visited.
	DirCount int64 `json:"dir_count"`
	// Discovered is the number of files that passed the extension filter.
	Discovered int64 `json:"discovered"`
	// Processed is the number of successfully probed files.
	Processed int64 `json:"processed"`
	// TotalBytes is the cumulative size of all processed files.
	TotalBytes int64 `json:"total_bytes"`
	// Buckets always has one entry per category, ascending, empty or not.
	Buckets []BucketStats `json:"buckets"`
	// TopWords is the word tally result, nil when disabled.
	TopWords []WordCount `json:"top_words,omitempty"`
	// Failures lists the files that could not be analyzed, sorted by path.
	Failures []Failure `json:"failures,omitempty"`
	// WalkErrors is the number of directory entries skipped during discovery.
	WalkErrors int64 `json:"walk_errors"`
	// Elapsed is the total time taken for the run.
	Elapsed time.Duration `json:"elapsed"`
	// TopN is the configured word tally size.
	TopN int `json:"top_n"`
	// Verbose indicates whether the report lists individual failures.
	Verbose bool `json:"-"`
}

// bucketAgg is the running fold for one category.
type bucketAgg struct {
	count       int64
	minDuration float64
	maxDuration float64
	sumDuration float64
	sumSize     int64
}

// collector aggregates probe results from concurrent workers using a mutex.
type collector struct {
	mu         sync.Mutex // Protect concurrent access
	buckets    [numCategories]bucketAgg
	failures   []Failure
	probed     int64
	totalBytes int64
}

func newCollector() *collector {
	return &collector{}
}

// addRecord folds one successful probe into its bucket. This operation is
// protected by a mutex since pool workers deliver results concurrently.
func (c *collector) addRecord(rec VideoRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.probed++
	c.totalBytes += rec.SizeBytes

	agg := &c.buckets[Classify(rec.DurationSeconds)]
	if agg.count == 0 || rec.DurationSeconds < agg.minDuration {
		agg.minDuration = rec.DurationSeconds
	}

	if agg.count == 0 || rec.DurationSeconds > agg.maxDuration {
		agg.maxDuration = rec.DurationSeconds
	}

	agg.count++
	agg.sumDuration += rec.DurationSeconds
	agg.sumSize += rec.SizeBytes
}

// addFailure records a file that could not be analyzed.
func (c *collector) addFailure(f Failure) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.probed++
	c.failures = append(c.failures, f)
}

// done returns the number of files probed so far, success or failure.
func (c *collector) done() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.probed
}

// finalize produces the final Stats from the collected data. Failures are
// sorted by path so the report does not depend on probe completion order.
func (c *collector) finalize() *Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	buckets := make([]BucketStats, numCategories)

	for i := range c.buckets {
		agg := c.buckets[i]

		bucket := BucketStats{Category: Category(i).String(), Count: agg.count}
		if agg.count > 0 {
			bucket.MinDuration = agg.minDuration
			bucket.MaxDuration = agg.maxDuration
			bucket.AvgDuration = agg.sumDuration / float64(agg.count)
			bucket.TotalSize = agg.sumSize
			bucket.AvgSize = agg.sumSize / agg.count
		}

		buckets[i] = bucket
	}

	failures := make([]Failure, len(c.failures))
	copy(failures, c.failures)
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Path < failures[j].Path
	})

	return &Stats{
		Processed:  c.probed - int64(len(c.failures)),
		TotalBytes: c.totalBytes,
		Buckets:    buckets,
		Failures:   failures,
	}
}
