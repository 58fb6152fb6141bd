//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
package schema

import (
	"math"
	"strconv"
	"strings"
)

// resolveInt mirrors a typical integer-resolution branch: strip "_"
// digit-group separators, then parse with strconv's base 0, which accepts
// decimal, the "0x"/"0o"/"0b" prefixes, and also reads a bare leading "0"
// ("0777") as octal whatever allowYAML11Octal says; values beyond int64
// fall back to uint64. Signed results are returned as int64. The
// allowYAML11Octal branch is only reached when those parses fail.
func resolveInt(raw string, allowYAML11Octal bool) (interface{}, bool) {
	plain := strings.ReplaceAll(raw, "_", "")
	if plain == "" {
		return nil, false
	}
	if i, err := strconv.ParseInt(plain, 0, 64); err == nil {
		return i, true
	}
	if u, err := strconv.ParseUint(plain, 0, 64); err == nil {
		return u, true
	}
	if allowYAML11Octal && len(plain) > 1 && plain[0] == '0' {
		digits := plain[1:]
		neg := false
		if strings.HasPrefix(digits, "-") {
			neg, digits = true, digits[1:]
		}
		if i, err := strconv.ParseInt(digits, 8, 64); err == nil {
			if neg {
				i = -i
			}
			return i, true
		}
	}
	return nil, false
}

var yamlFloatPlain = func(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	sawDigit, sawDot := false, false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			sawDigit = true
		case c == '.' && !sawDot:
			sawDot = true
		case (c == 'e' || c == 'E') && sawDigit:
			i++
			if i < len(s) && (s[i] == '+' || s[i] == '-') {
				i++
			}
			for ; i < len(s); i++ {
				if s[i] < '0' || s[i] > '9' {
					return false
				}
			}
			return sawDigit
		default:
			return false
		}
	}
	return sawDigit && sawDot
}

func resolveFloat(raw string) (float64, bool) {
	plain := strings.ReplaceAll(raw, "_", "")
	if !yamlFloatPlain(plain) {
		return 0, false
	}
	f, err := strconv.ParseFloat(plain, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// specialFloats covers the textual NaN/Infinity spellings spec.md §4.3
// requires be preserved: "floats preserve NaN/±Infinity textual forms."
var specialFloats = map[string]float64{
	".nan": math.NaN(), ".NaN": math.NaN(), ".NAN": math.NaN(),
	".inf": math.Inf(1), ".Inf": math.Inf(1), ".INF": math.Inf(1),
	"+.inf": math.Inf(1), "+.Inf": math.Inf(1), "+.INF": math.Inf(1),
	"-.inf": math.Inf(-1), "-.Inf": math.Inf(-1), "-.INF": math.Inf(-1),
}
