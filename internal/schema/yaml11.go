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
	"encoding/base64"
	"regexp"
	"strings"
)

var (
	yaml11NullRe = regexp.MustCompile(`^(~|[Nn]ull|NULL|)$`)
	yaml11BoolRe = regexp.MustCompile(`^(?i:y|yes|n|no|true|false|on|off)$`)
	yaml11IntRe  = regexp.MustCompile(`^[-+]?(0|[1-9][0-9_]*|0[0-7_]+|0x[0-9a-fA-F_]+|0b[01_]+)$`)
)

// YAML11 builds the yaml-1.1 schema: core's permissive literals plus
// binary/timestamp/omap/pairs/set/merge, spec.md §4.2. Merge-key splicing
// is enabled here per the Open Question resolution in DESIGN.md ("the
// source library toggles this based on the active schema").
func YAML11() *Schema {
	s := Core()
	s.Name = "yaml-1.1"
	s.AllowMerge = true
	s.AllowYAML11 = true

	// Replace core's stricter null/bool/int tests with the 1.1 vocabulary.
	s.ByTag[NullTag].Test = yaml11NullRe
	s.ByTag[BoolTag].Test = yaml11BoolRe
	s.ByTag[BoolTag].Resolve = func(raw string) (interface{}, error) {
		switch strings.ToLower(raw) {
		case "y", "yes", "true", "on":
			return true, nil
		default:
			return false, nil
		}
	}
	s.ByTag[IntTag].Test = yaml11IntRe
	s.ByTag[IntTag].Resolve = func(raw string) (interface{}, error) {
		v, _ := resolveInt(raw, true)
		return v, nil
	}

	s.register(&Resolver{
		Tag:     TimestampTag,
		Accepts: ScalarKind,
		TestFunc: func(raw string) bool {
			_, ok := resolveTimestamp(raw)
			return ok
		},
		Resolve: func(raw string) (interface{}, error) {
			t, _ := resolveTimestamp(raw)
			return t, nil
		},
	})
	s.register(&Resolver{
		Tag:     BinaryTag,
		Accepts: ScalarKind,
		Resolve: func(raw string) (interface{}, error) {
			clean := strings.Join(strings.Fields(raw), "")
			return base64.StdEncoding.DecodeString(clean)
		},
	})
	s.register(&Resolver{Tag: MergeTag, Accepts: ScalarKind, Test: regexp.MustCompile(`^<<$`)})
	s.register(&Resolver{Tag: OmapTag, Accepts: SeqKind})
	s.register(&Resolver{Tag: PairsTag, Accepts: SeqKind})
	s.register(&Resolver{Tag: SetTag, Accepts: MapKind})
	return s
}
