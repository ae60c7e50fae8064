package rules

import (
	"regexp"
	"strings"
)

var (
	threeDigitCode   = regexp.MustCompile(`^\d{3}$`)
	replyWord        = regexp.MustCompile(`(?i)\breply\b`)
	reviewWord       = regexp.MustCompile(`(?i)\breview\b`)
	notificationWord = regexp.MustCompile(`(?i)\bnotifications?\b`)
)

// IsNameInvalid reports whether description breaks the naming policy. A name
// is valid when, after trimming, it is exactly three digits, mentions the
// word "reply", or mentions both "review" and "notification(s)" as whole
// words in any order.
func IsNameInvalid(description string) bool {
	name := strings.TrimSpace(description)

	if threeDigitCode.MatchString(name) {
		return false
	}
	if replyWord.MatchString(name) {
		return false
	}
	if reviewWord.MatchString(name) && notificationWord.MatchString(name) {
		return false
	}
	return true
}
