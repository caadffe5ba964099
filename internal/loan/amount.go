package loan

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseAmountToNumber converts user input into an amount.
//
// Numbers are returned unchanged. Strings keep only their ASCII digits, so
// both Turkish separators are dropped: "10.000" is 10000 and "10.000,50" is
// 1000050. Anything else, or a string without digits, yields NaN; callers
// check with math.IsNaN before use.
func ParseAmountToNumber(input any) float64 {
	switch v := input.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		return parseDigits(v)
	default:
		return math.NaN()
	}
}

func parseDigits(s string) float64 {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
