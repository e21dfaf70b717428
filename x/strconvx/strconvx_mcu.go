//go:build rp2040 || rp2350

package strconvx

// Minimal, allocation-aware helpers with signatures identical to strconv.
// Base is fixed at 10 for parsing; FormatInt supports 2..36.

func Itoa(i int) string { return FormatInt(int64(i), 10) }

func Atoi(s string) (int, error) {
	if len(s) == 0 {
		return 0, parseError{}
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
		if len(s) == 0 {
			return 0, parseError{}
		}
	}
	limit := uint64(maxInt)
	if neg {
		limit++
	}
	var u uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, parseError{}
		}
		d := uint64(c - '0')
		if u > (limit-d)/10 {
			return 0, rangeError{}
		}
		u = u*10 + d
	}
	if neg {
		return int(-int64(u - 1) - 1), nil
	}
	return int(u), nil
}

func FormatInt(i int64, base int) string {
	if base < 2 || base > 36 {
		base = 10
	}
	neg := i < 0
	var u uint64
	if neg {
		u = uint64(-i)
	} else {
		u = uint64(i)
	}
	if u == 0 {
		return "0"
	}
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	var buf [65]byte
	n := len(buf)
	b := uint64(base)
	for u > 0 {
		n--
		buf[n] = digits[u%b]
		u /= b
	}
	if neg {
		n--
		buf[n] = '-'
	}
	return string(buf[n:])
}

func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

type parseError struct{}

func (parseError) Error() string { return "invalid syntax" }

type rangeError struct{}

func (rangeError) Error() string { return "value out of range" }
