// Package color decides whether failure lines are styled and applies the
// styling. The Mode type parses the --color flag values always, auto and
// never; a Styler wraps a line in ANSI red without changing its text.
package color
