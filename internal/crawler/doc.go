// Package crawler walks a library directory tree and yields the absolute
// paths of recognised video files.
//
// Walk returns a lazy iter.Seq2 so callers drive traversal with a plain range
// loop; breaking out of the loop stops the walk. Directory listing errors end
// the sequence unless WithSkipUnreadable is supplied, in which case unreadable
// subdirectories are logged and skipped.
package crawler
