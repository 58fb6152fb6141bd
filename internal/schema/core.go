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

var (
	coreNullRe = regexp.MustCompile(`^(~|[Nn]ull|NULL|)$`)
	coreBoolRe = regexp.MustCompile(`^([Tt]rue|TRUE|[Ff]alse|FALSE)$`)
	coreIntRe  = regexp.MustCompile(`^[-+]?(0|[1-9][0-9_]*|0x[0-9a-fA-F_]+|0o[0-7_]+|0b[01_]+)$`)
	coreFloatRe = regexp.MustCompile(`^[-+]?(\.inf|\.Inf|\.INF)$|^\.nan$|^\.NaN$|^\.NAN$|^[-+]?(\.[0-9_]+|[0-9_]+(\.[0-9_]*)?)([eE][-+]?[0-9]+)?$`)
)

// Core builds the core schema: permissive scalar forms on top of
// failsafe, per spec.md §4.2 ("Null, NULL, ~, True, yes under YAML 1.1
// only, octal/hex").
func Core() *Schema {
	s := Failsafe()
	s.Name = "core"
	s.register(&Resolver{
		Tag:     NullTag,
		Accepts: ScalarKind,
		Test:    coreNullRe,
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
		Test:    coreBoolRe,
		Resolve: func(raw string) (interface{}, error) {
			switch raw {
			case "true", "True", "TRUE":
				return true, nil
			default:
				return false, nil
			}
		},
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
		Test:    coreIntRe,
		Resolve: func(raw string) (interface{}, error) {
			v, _ := resolveInt(raw, false)
			return v, nil
		},
	})
	s.register(&Resolver{
		Tag:     FloatTag,
		Accepts: ScalarKind,
		Test:    coreFloatRe,
		Resolve: func(raw string) (interface{}, error) {
			if f, ok := specialFloats[raw]; ok {
				return f, nil
			}
			f, _ := resolveFloat(raw)
			return f, nil
		},
	})
	return s
}
