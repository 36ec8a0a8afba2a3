package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alitto/pond"
	"github.com/charlievieth/fastwalk"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// logger provides conditional debug output plus always-on warnings.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Printf(format, args...)
	}
}

// warnf prints a warning to stderr regardless of the debug setting.
func (l logger) warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format, args...)
}

// discovery holds the outcome of the walk phase.
type discovery struct {
	paths      []string
	dirCount   int64
	walkErrors int64
}

// discover walks the tree under root and returns candidate video paths.
// fastwalk runs its callback from multiple goroutines, so collection is
// mutex-protected; paths are sorted afterwards so the word tally and the
// probe dispatch see the same order on every run.
//
// Unreadable entries (permission-denied subtrees included) are skipped with
// a warning and counted, never fatal.
func discover(ctx context.Context, root string, extensions []string, log logger) (*discovery, error) {
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}

	var (
		mu    sync.Mutex
		found discovery
	)

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	walkErr := fastwalk.Walk(conf, root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			log.warnf("skipping %s: %v\n", path, err)
			mu.Lock()
			found.walkErrors++
			mu.Unlock()

			return nil
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if entry.IsDir() {
			mu.Lock()
			found.dirCount++
			mu.Unlock()

			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		if _, ok := extSet[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		mu.Lock()
		found.paths = append(found.paths, path)
		mu.Unlock()

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(found.paths)

	return &found, nil
}

// startProgressReporter invokes hook(done, total) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration, total int64) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.done(), total)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run analyzes the video files under opt.Root and returns aggregated
// statistics.
//
// Discovery happens first, in a single pass; probing then fans out over a
// bounded worker pool of opt.Threads workers. Every discovered file ends up
// either in exactly one duration bucket or in the failure list; a probe
// failure never aborts the run. The only fatal errors are an invalid root
// and a failed walk.
//
// Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(done, total int64)) (*Stats, error) {
	log := logger{enabled: opt.Debug}

	if opt.Root == "" {
		return nil, errors.New("no directory given")
	}

	// Normalize to native format to handle both separators on Windows
	opt.Root = filepath.Clean(opt.Root)

	// validate path exists and is a directory
	if statInfo, err := os.Stat(opt.Root); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Root, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Root)
	}

	threads := opt.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	extensions := opt.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	minWordLen := opt.MinWordLen
	if minWordLen <= 0 {
		minWordLen = DefaultMinWordLen
	}

	prober := opt.Prober
	if prober == nil {
		prober = FFProbe{}
	}

	log.printf("[debug]: allowed extensions: %v\n", extensions)
	log.printf("[debug]: probe workers: %d\n", threads)

	start := time.Now()

	found, err := discover(ctx, opt.Root, extensions, log)
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", opt.Root, err)
	}

	log.printf("[debug]: discovered %d candidate files in %d directories\n",
		len(found.paths), found.dirCount)

	// Tally words in discovery order, before probing, so the top-N
	// tie-break does not depend on probe completion order.
	var words *wordTally
	if opt.TopN > 0 {
		words = newWordTally(minWordLen)
		for _, path := range found.paths {
			words.addFilename(path)
		}
	}

	collector := newCollector()

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval, int64(len(found.paths)))

	if len(found.paths) > 0 {
		pool := pond.New(threads, len(found.paths))

		for _, path := range found.paths {
			path := path // capture per-iteration value for the closure (pre-Go 1.22 loop semantics)
			pool.Submit(func() {
				metadata, err := prober.Probe(ctx, path)
				if err != nil {
					reason := Unreadable

					var probeErr *ProbeError
					if errors.As(err, &probeErr) {
						reason = probeErr.Reason
					}

					log.printf("[debug]: %v\n", err)
					collector.addFailure(Failure{Path: path, Reason: reason})

					return
				}

				collector.addRecord(VideoRecord{
					Path:            path,
					DurationSeconds: metadata.DurationSeconds,
					SizeBytes:       metadata.SizeBytes,
				})
			})
		}

		pool.StopAndWait()
	}

	stats := collector.finalize()

	stats.Root = opt.Root
	stats.DirCount = found.dirCount
	stats.Discovered = int64(len(found.paths))
	stats.WalkErrors = found.walkErrors
	stats.TopN = opt.TopN
	stats.Verbose = opt.Verbose

	if words != nil {
		stats.TopWords = words.top(opt.TopN)
	}

	stats.Elapsed = time.Since(start)

	return stats, nil
}
