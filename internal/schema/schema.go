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
// Package schema implements the tag registry of spec.md §4.2: pluggable
// sets of tag resolvers for the failsafe, json, core, and yaml-1.1
// schemas, plus custom-tag extension. Numeric/boolean/null/timestamp
// recognition generalizes a single scalar-classification table from a
// hard-coded schema into per-Schema resolver lists.
package schema

import "regexp"

// Kind is the node shape a Resolver accepts, mirroring spec.md §4.2 "the
// node kinds it accepts (scalar, map, or sequence)".
type Kind int

const (
	ScalarKind Kind = iota
	MapKind
	SeqKind
)

const longTagPrefix = "tag:yaml.org,2002:"

// Long expands a shorthand tag ("!!str") to its full URI form.
func Long(tag string) string {
	if len(tag) > 2 && tag[0] == '!' && tag[1] == '!' {
		return longTagPrefix + tag[2:]
	}
	return tag
}

// Short collapses a long tag URI to its "!!foo" shorthand, the inverse of
// Long; tags outside the yaml.org namespace are returned unchanged.
func Short(tag string) string {
	if len(tag) > len(longTagPrefix) && tag[:len(longTagPrefix)] == longTagPrefix {
		return "!!" + tag[len(longTagPrefix):]
	}
	return tag
}

// Well-known tag URIs, named exactly as spec.md §4.2 lists them.
const (
	StrTag       = longTagPrefix + "str"
	MapTag       = longTagPrefix + "map"
	SeqTag       = longTagPrefix + "seq"
	NullTag      = longTagPrefix + "null"
	BoolTag      = longTagPrefix + "bool"
	IntTag       = longTagPrefix + "int"
	FloatTag     = longTagPrefix + "float"
	TimestampTag = longTagPrefix + "timestamp"
	BinaryTag    = longTagPrefix + "binary"
	MergeTag     = longTagPrefix + "merge"
	OmapTag      = longTagPrefix + "omap"
	PairsTag     = longTagPrefix + "pairs"
	SetTag       = longTagPrefix + "set"
)

// Resolver is one tag's implicit-typing and (de)serialization rule, the
// unit spec.md §4.2 describes: "the tag URI..., the node kinds it
// accepts..., a test..., a resolve(doc, node) -> value, and a
// stringify(item, ctx) -> text plus default style."
type Resolver struct {
	Tag         string
	Accepts     Kind
	Test        *regexp.Regexp // nil means "always matches" (used by str/map/seq)
	TestFunc    func(raw string) bool
	Resolve     func(raw string) (interface{}, error)
	Stringify   func(value interface{}) (string, bool)
	DefaultForGo func(value interface{}) bool // true if this resolver is the default emitter for a Go value of this shape
}

// matches reports whether r should be picked during implicit resolution.
// A resolver with neither Test nor TestFunc (str/map/seq) is an explicit-
// tag-only / shape-fallback resolver: it never wins implicit scanning, it
// is only reached via Lookup or the resolver's own by-shape fallback.
func (r *Resolver) matches(raw string) bool {
	if r.TestFunc != nil {
		return r.TestFunc(raw)
	}
	if r.Test != nil {
		return r.Test.MatchString(raw)
	}
	return false
}

// Schema is an ordered, named set of Resolvers plus feature toggles that
// vary by schema (spec.md §4.2, §4.3's "Open question" on merge keys).
type Schema struct {
	Name         string
	Resolvers    []*Resolver
	ByTag        map[string]*Resolver
	AllowMerge   bool // YAML-1.1 merge-key ("<<") splicing, see spec.md §9
	AllowYAML11  bool // permissive core-schema literals (True, yes, octal 0777, ...)
}

// Lookup finds the resolver registered for an explicit tag.
func (s *Schema) Lookup(tag string) (*Resolver, bool) {
	r, ok := s.ByTag[Long(tag)]
	return r, ok
}

// Implicit returns the first resolver (in registration order) whose Test
// matches raw, per spec.md §4.2: "Resolvers are tried in registration
// order; the first whose test matches wins."
func (s *Schema) Implicit(raw string) *Resolver {
	for _, r := range s.Resolvers {
		if r.Accepts == ScalarKind && r.matches(raw) {
			return r
		}
	}
	return nil
}

// AddCustomTag registers a user resolver, extending the schema the way
// spec.md §4.2 describes: "Custom tags extend any schema by URI or
// shorthand."
func (s *Schema) AddCustomTag(r *Resolver) {
	if r.Tag != "" {
		r.Tag = Long(r.Tag)
		s.ByTag[r.Tag] = r
	}
	s.Resolvers = append([]*Resolver{r}, s.Resolvers...)
}

func newSchema(name string) *Schema {
	return &Schema{Name: name, ByTag: make(map[string]*Resolver)}
}

func (s *Schema) register(r *Resolver) {
	s.Resolvers = append(s.Resolvers, r)
	s.ByTag[Long(r.Tag)] = r
}

// Registry names the built-in schema constructors by the strings
// spec.md §6 enumerates for the "schema" option.
var Registry = map[string]func() *Schema{
	"failsafe": Failsafe,
	"json":     JSON,
	"core":     Core,
	"yaml-1.1": YAML11,
}

// New looks up a built-in schema by name. An unknown name is a
// programmer error per spec.md §7 ("unknown schema name"), so New panics
// rather than returning an error, the same "please report the issue"
// treatment given to other caller-unreachable states in this module.
func New(name string) *Schema {
	ctor, ok := Registry[name]
	if !ok {
		panic("yaml: unknown schema " + name)
	}
	return ctor()
}
