// Package analyzer scans a directory tree for video files, probes their
// duration and size, and aggregates the results into five fixed duration
// categories plus a word tally over the video filenames.
//
// Discovery walks the tree in parallel with fastwalk, probing fans out over
// a bounded worker pool, and results fold into a mutex-protected collector
// so the final statistics are independent of completion order.
package analyzer
