// Package logtail reads the end of the client's log file for the terminal
// UI's log view.
//
// Read keeps a ring buffer of maxLines entries, so memory stays bounded by
// the number of lines requested rather than the size of the file. A missing
// file is not an error; the log view simply starts empty.
//
// Parse understands the key=value lines produced by slog.NewTextHandler and
// pulls out the time, level and message so the view can style them. Anything
// else (stack traces, stray output) is returned untouched in Entry.Raw.
package logtail
