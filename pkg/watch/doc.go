// Package watch re-runs work when the review dataset changes on disk.
//
// FileWatcher watches a dataset file, or a directory of exports, through
// fsnotify. A single file is watched through its parent directory so that
// editors which save by renaming a temporary file are still noticed. Bursts
// of events are collapsed by a Debouncer before the callback runs.
package watch
