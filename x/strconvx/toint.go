package strconvx

const (
	maxInt = int64(^uint(0) >> 1)
	minInt = -maxInt - 1
)

// ToInt converts the leading decimal integer of s, the way Arduino's
// String.toInt does: leading spaces are skipped, an optional sign is
// honoured, digits are consumed until the first non-digit. Text with no
// leading digits yields 0. Magnitudes beyond the int range saturate.
func ToInt(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\r' || s[i] == '\n') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	var v int64
	over := false
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		d := int64(c - '0')
		if over || v > (maxInt-d)/10 {
			over = true
			continue
		}
		v = v*10 + d
	}
	switch {
	case over && neg:
		return int(minInt)
	case over:
		return int(maxInt)
	case neg:
		return int(-v)
	}
	return int(v)
}

// ParseBool accepts exactly "true" and "false".
func ParseBool(s string) (v bool, ok bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
