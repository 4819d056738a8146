// Package logtail reads the end of tally's log file and renders its JSON
// entries as plain text for `tally logs`.
//
// Read keeps a ring buffer of the last N lines, so memory stays at O(N)
// whatever the file size. Format decodes one zap JSON entry into
//
//	<timestamp> <LEVEL> [<logger>] <message> key=value ...
//
// and leaves anything that is not a JSON object untouched, so lines written
// by something other than the logger still show up.
package logtail
