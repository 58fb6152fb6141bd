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

import (
	"fmt"
	"strings"

	"github.com/yamlcore/yamlcore/internal/sourcemap"
)

// ErrorName is the diagnostic kind of spec.md §6: "name (YAMLSyntaxError |
// YAMLSemanticError | YAMLReferenceError | YAMLWarning)".
type ErrorName string

const (
	YAMLSyntaxErrorName    ErrorName = "YAMLSyntaxError"
	YAMLSemanticErrorName  ErrorName = "YAMLSemanticError"
	YAMLReferenceErrorName ErrorName = "YAMLReferenceError"
	YAMLWarningName        ErrorName = "YAMLWarning"
)

// LinePos is a single endpoint of a diagnostic's linePos span.
type LinePos struct {
	Line int
	Col  int
}

// YAMLError is the shape every diagnostic spec.md §6 describes implements:
// name, message, nodeType, a byte range, and (when prettyErrors is set) a
// line/column span with a caret-underlined rendering instead of a raw
// source back-reference.
type YAMLError struct {
	Name     ErrorName
	Message  string
	NodeType string
	Range    sourcemap.Range

	// Populated only when PrettyErrors is requested at parse time.
	Pretty    bool
	LinePos   *struct{ Start, End LinePos }
	Source    string // original source text, retained only when !Pretty
}

func (e *YAMLError) Error() string {
	if e.Pretty && e.LinePos != nil {
		return fmt.Sprintf("%s: %s at line %d, column %d", e.Name, e.Message, e.LinePos.Start.Line, e.LinePos.Start.Col)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// PrettyString renders a multi-line caret-underlined message the way spec.md §6
// requires when PrettyErrors is set.
func (e *YAMLError) PrettyString(src *sourcemap.Map) string {
	if e.LinePos == nil {
		return e.Error()
	}
	line := src.Pos(e.Range.Start)
	lineStart := e.Range.Start - (line.Col - 1)
	lineEnd := lineStart
	for lineEnd < src.Len() && src.Slice(sourcemap.Range{Start: lineEnd, End: lineEnd + 1}) != "\n" {
		lineEnd++
	}
	text := src.Slice(sourcemap.Range{Start: lineStart, End: lineEnd})
	width := e.Range.End - e.Range.Start
	if width < 1 {
		width = 1
	}
	caretPad := strings.Repeat(" ", line.Col-1)
	carets := strings.Repeat("^", width)
	return fmt.Sprintf("%s: %s\n%s\n%s%s", e.Name, e.Message, text, caretPad, carets)
}

func newError(name ErrorName, msg, nodeType string, r sourcemap.Range) *YAMLError {
	return &YAMLError{Name: name, Message: msg, NodeType: nodeType, Range: r}
}

// finalizeDiagnostics fills in Pretty/LinePos/Source for every accumulated
// error/warning once the document's source map is known, honoring the
// PrettyErrors option split of spec.md §6.
func finalizeDiagnostics(errs []*YAMLError, src *sourcemap.Map, pretty bool, srcText string) {
	for _, e := range errs {
		e.Pretty = pretty
		if pretty {
			start := src.Pos(e.Range.Start)
			end := src.Pos(e.Range.End)
			e.LinePos = &struct{ Start, End LinePos }{
				Start: LinePos{Line: start.Line, Col: start.Col},
				End:   LinePos{Line: end.Line, Col: end.Col},
			}
			e.Source = ""
		} else {
			e.LinePos = nil
			e.Source = srcText
		}
	}
}
