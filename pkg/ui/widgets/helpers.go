package widgets

import "strings"

// cutColon splits "a:b" at the first colon.
func cutColon(s string) (left, right string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
