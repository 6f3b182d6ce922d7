package affiliation

import "regexp"

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// FindEmail returns the leftmost email address in text. The boolean is
// false when text is empty or holds no address.
func FindEmail(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	m := emailPattern.FindString(text)
	return m, m != ""
}
