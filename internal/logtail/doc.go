// Package logtail reads the end of a log file for the log panel.
//
// # Overview
//
// The poller tails one file (log_path in the config) and dispatches its last
// lines into the store. This package does the reading:
//
//  1. Read: return the last N lines of a file in one pass
//  2. Tailer: call Read only when the file's size or mtime moved
//  3. DetectLevel: classify a line so the UI can color it
//
// # Ring Buffer
//
// Read keeps a circular buffer of maxLines entries while scanning the file,
// so memory stays O(maxLines) whatever the file size:
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line: store at idx, idx = (idx+1) % maxLines
//	3. Fewer lines than maxLines: return ring[:count]
//	4. Otherwise: return the ring starting at idx (oldest line)
//
// maxLines <= 0 reads the whole file.
//
// # Change Detection
//
// Tailer.Poll stats the file before reading it. When size and modification
// time match the previous poll it returns (nil, false, nil) and the poller
// skips the log payload, so the log panel's selector sees the same slice and
// the panel does not refresh.
//
// # Error Handling
//
// A missing file is not an error: Read returns nil, Tailer.Poll reports one
// change with an empty slice. Permission and I/O errors are wrapped.
package logtail
