package describe

import "strings"

// AsLines joins lines with newlines.
func AsLines(lines ...string) string {
	return strings.Join(lines, "\n")
}

// AsLineGroups flattens groups of lines and joins them with newlines, so
// AsLineGroups([]string{"a"}, []string{"b", "c"}) == AsLines("a", "b", "c").
func AsLineGroups(groups ...[]string) string {
	var all []string
	for _, g := range groups {
		all = append(all, g...)
	}
	return AsLines(all...)
}

// Unindent compresses an indented multi-line string into one line, with a
// single space between words. Use AsLines when whitespace matters.
func Unindent(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
