package model

import "strconv"

// RefPrefix starts a subject that refers to another statement by id.
const RefPrefix = "#"

// RefSubject returns the back-reference identifier for a statement id.
func RefSubject(id int) string {
	return RefPrefix + strconv.Itoa(id)
}

// ParseRef parses a back-reference of the form "#N" where N is one or more
// decimal digits.
func ParseRef(s string) (int, bool) {
	if len(s) < 2 || s[:1] != RefPrefix {
		return 0, false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		// too many digits
		return 0, false
	}
	return n, true
}

// RefID returns the id referenced by s, or -1 if s is not a back-reference.
func RefID(s string) int {
	if n, ok := ParseRef(s); ok {
		return n
	}
	return -1
}
