package describe

import (
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
)

// PlatformIDPattern matches Discord snowflakes. Most are 17 to 19 digits, but
// custom emoji IDs have been seen at 20, so allow up to 22.
var PlatformIDPattern = regexp.MustCompile(`^\d{17,22}$`)

// IsPlatformID reports whether s is a bare platform ID.
func IsPlatformID(s string) bool {
	return PlatformIDPattern.MatchString(s)
}

// IsEmoji reports whether s starts with a built-in unicode emoji. IDs are
// never emoji, whatever they look like.
func IsEmoji(s string) bool {
	if s == "" || IsPlatformID(s) {
		return false
	}
	first, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	if isKnownEmoji(first) {
		return true
	}
	// Text-presentation emoji are often written without the VS16 selector,
	// or with one the table doesn't carry.
	return isKnownEmoji(strings.TrimSuffix(first, "\ufe0f")) || isKnownEmoji(first+"\ufe0f")
}

func isKnownEmoji(s string) bool {
	if s == "" {
		return false
	}
	_, err := gomoji.GetInfo(s)
	return err == nil
}
