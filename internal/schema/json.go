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

import "regexp"

var jsonIntRe = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)
var jsonFloatRe = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)

// JSON builds the json schema: failsafe plus strict JSON-compatible
// null/bool/int/float, spec.md §4.2.
func JSON() *Schema {
	s := Failsafe()
	s.Name = "json"
	s.register(&Resolver{
		Tag:     NullTag,
		Accepts: ScalarKind,
		Test:    regexp.MustCompile(`^null$`),
		Resolve: func(raw string) (interface{}, error) { return nil, nil },
		Stringify: func(v interface{}) (string, bool) {
			if v == nil {
				return "null", true
			}
			return "", false
		},
	})
	s.register(&Resolver{
		Tag:     BoolTag,
		Accepts: ScalarKind,
		Test:    regexp.MustCompile(`^(true|false)$`),
		Resolve: func(raw string) (interface{}, error) { return raw == "true", nil },
		Stringify: func(v interface{}) (string, bool) {
			b, ok := v.(bool)
			if !ok {
				return "", false
			}
			if b {
				return "true", true
			}
			return "false", true
		},
	})
	s.register(&Resolver{
		Tag:     IntTag,
		Accepts: ScalarKind,
		Test:    jsonIntRe,
		Resolve: func(raw string) (interface{}, error) {
			v, _ := resolveInt(raw, false)
			return v, nil
		},
	})
	s.register(&Resolver{
		Tag:     FloatTag,
		Accepts: ScalarKind,
		Test:    jsonFloatRe,
		Resolve: func(raw string) (interface{}, error) {
			f, _ := resolveFloat(raw)
			return f, nil
		},
	})
	return s
}
