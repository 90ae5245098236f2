package release

import "regexp"

// ansiPattern matches ANSI CSI escape sequences (colors, cursor movement).
// Registry tooling colors its output even when not attached to a terminal,
// and the raw escapes are noise in notifications and JSON output.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// stripANSI removes terminal escape sequences from diagnostic text.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
