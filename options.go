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
package yaml

// ScalarType enumerates the AST scalar styles of spec.md §3:
// "type ∈ {PLAIN, QUOTE_SINGLE, QUOTE_DOUBLE, BLOCK_LITERAL, BLOCK_FOLDED}".
type ScalarType int

const (
	PLAIN ScalarType = iota
	QUOTE_SINGLE
	QUOTE_DOUBLE
	BLOCK_LITERAL
	BLOCK_FOLDED
)

func (t ScalarType) String() string {
	switch t {
	case QUOTE_SINGLE:
		return "QUOTE_SINGLE"
	case QUOTE_DOUBLE:
		return "QUOTE_DOUBLE"
	case BLOCK_LITERAL:
		return "BLOCK_LITERAL"
	case BLOCK_FOLDED:
		return "BLOCK_FOLDED"
	default:
		return "PLAIN"
	}
}

// LogLevel is the pluggable warning-sink verbosity of spec.md §6.
type LogLevel string

const (
	LogSilent LogLevel = "silent"
	LogError  LogLevel = "error"
	LogWarn   LogLevel = "warn"
	LogDebug  LogLevel = "debug"
)

// BinaryOptions controls !!binary emission, spec.md §6/§4.4.
type BinaryOptions struct {
	DefaultType ScalarType
	LineWidth   int
}

// BoolOptions controls the literal spellings used when stringifying bools.
type BoolOptions struct {
	TrueStr  string
	FalseStr string
}

// IntOptions controls integer resolution.
type IntOptions struct {
	AsBigInt bool
}

// NullOptions controls the literal spelling used when stringifying null.
type NullOptions struct {
	NullStr string
}

// FoldOptions controls scalar folding during stringification.
type FoldOptions struct {
	LineWidth       int
	MinContentWidth int
}

// DoubleQuotedOptions controls double-quoted scalar emission.
type DoubleQuotedOptions struct {
	JSONEncoding       bool
	MinMultiLineLength int
}

// StrOptions controls plain-scalar defaults and folding/quoting behavior.
type StrOptions struct {
	DefaultType        ScalarType
	DefaultKeyType     ScalarType
	DefaultQuoteSingle bool
	DoubleQuoted       DoubleQuotedOptions
	Fold               FoldOptions
}

// ScalarOptions is the process-wide scalar-formatting configuration of
// spec.md §6, read as the default constructor argument for a Stringifier
// rather than a global consulted mid-traversal (spec.md §9 "Global
// options").
type ScalarOptions struct {
	Binary BinaryOptions
	Bool   BoolOptions
	Int    IntOptions
	Null   NullOptions
	Str    StrOptions
}

// DefaultScalarOptions mirrors the defaults enumerated in spec.md §6.
func DefaultScalarOptions() ScalarOptions {
	return ScalarOptions{
		Binary: BinaryOptions{DefaultType: BLOCK_LITERAL, LineWidth: 76},
		Bool:   BoolOptions{TrueStr: "true", FalseStr: "false"},
		Int:    IntOptions{AsBigInt: false},
		Null:   NullOptions{NullStr: "null"},
		Str: StrOptions{
			DefaultType:        PLAIN,
			DefaultKeyType:     PLAIN,
			DefaultQuoteSingle: false,
			DoubleQuoted:       DoubleQuotedOptions{JSONEncoding: false, MinMultiLineLength: 40},
			Fold:               FoldOptions{LineWidth: 80, MinContentWidth: 20},
		},
	}
}

// Options is the per-call configuration of spec.md §6's enumerated
// options, covering parse, resolve, and stringify alike (each consumer
// reads only the subset relevant to it, an "EncoderOptions embeds common
// knobs" layering).
type Options struct {
	AnchorPrefix   string
	Indent         int
	IndentSeq      bool
	KeepCstNodes   bool
	SetOrigRanges  bool
	KeepNodeTypes  bool
	KeepUndefined  bool
	MapAsMap       bool
	MaxAliasCount  int
	PrettyErrors   bool
	SimpleKeys     bool
	Version        string
	Schema         string
	CustomTags     []CustomTag
	LogLevel       LogLevel
	Scalar         ScalarOptions
}

// CustomTag describes a user-registered tag, wiring into schema.Resolver
// at resolve/stringify time (spec.md §4.2 "Custom tags extend any schema
// by URI or shorthand").
type CustomTag struct {
	Tag       string
	Resolve   func(raw string) (interface{}, error)
	Stringify func(value interface{}) (string, bool)
}

// DefaultOptions mirrors the defaults enumerated in spec.md §6.
func DefaultOptions() Options {
	return Options{
		AnchorPrefix:  "a",
		Indent:        2,
		IndentSeq:     true,
		KeepCstNodes:  false,
		SetOrigRanges: false,
		KeepNodeTypes: true,
		KeepUndefined: false,
		MapAsMap:      false,
		MaxAliasCount: 100,
		PrettyErrors:  true,
		SimpleKeys:    false,
		Version:       "1.2",
		Schema:        "core",
		LogLevel:      LogWarn,
		Scalar:        DefaultScalarOptions(),
	}
}

// resolveOptions returns DefaultOptions() when the caller passed none,
// or the single supplied Options verbatim otherwise. Callers who want to
// override only a few fields are expected to start from DefaultOptions()
// themselves, the same "explicit context through the call stack... as the
// default constructor argument" policy spec.md §9 asks for. MaxAliasCount
// of 0 is a meaningful, deliberate "disallow all aliases" (spec.md §6), so
// it is never silently promoted to the 100 default.
func resolveOptions(opts []Options) Options {
	if len(opts) == 0 {
		return DefaultOptions()
	}
	return opts[0]
}
