package domain

import (
	"math"
	"strings"
)

// ParseID reads a task id leniently: leading whitespace, an optional sign,
// then as many digits as follow. Trailing text is ignored and a value without
// leading digits yields 0. Out-of-range values saturate. Callers treat
// anything <= 0 as no valid id.
func ParseID(s string) int64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var n int64
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int64(s[i] - '0')
		if n > (math.MaxInt64-d)/10 {
			if negative {
				return math.MinInt64
			}
			return math.MaxInt64
		}
		n = n*10 + d
	}

	if negative {
		return -n
	}
	return n
}
