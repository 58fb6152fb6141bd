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
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yamlcore/yamlcore/internal/schema"
)

// stringifyCtx carries per-call state through the recursive emitter: the
// effective options, the anchor names assigned to multiply-referenced
// nodes, and which of those anchors have already been written (so the
// second and later occurrences emit an alias instead), matching spec.md
// §4.4's "A node referenced more than once is emitted with an anchor at
// its first occurrence and aliases elsewhere."
type stringifyCtx struct {
	opts       Options
	anchorName map[Node]string
	emitted    map[Node]bool
	depth      int
}

// Stringify renders doc as YAML text under doc's own options, the
// contract of spec.md §4.4. A document carrying fatal errors is refused,
// per spec.md §4.4/§7: "Stringification refuses any document whose
// errors array is non-empty."
func Stringify(doc *Document) (string, error) {
	if doc.HasErrors() {
		return "", fmt.Errorf("yaml: refusing to stringify a document with %d error(s)", len(doc.Errors))
	}
	opts := doc.options
	ctx := &stringifyCtx{opts: opts, anchorName: make(map[Node]string), emitted: make(map[Node]bool)}
	assignAnchorNames(doc.Contents, opts.AnchorPrefix, ctx.anchorName)

	var sb strings.Builder
	wroteDirective := false
	if doc.Version != "" {
		fmt.Fprintf(&sb, "%%YAML %s\n", doc.Version)
		wroteDirective = true
	}
	for _, tp := range doc.TagPrefixes {
		fmt.Fprintf(&sb, "%%TAG %s %s\n", tp.Handle, tp.Prefix)
		wroteDirective = true
	}
	if wroteDirective || startsLikeDirective(doc.Contents) {
		sb.WriteString("---\n")
	}

	if doc.Contents == nil {
		sb.WriteString("null\n")
		return sb.String(), nil
	}

	body := emitNode(ctx, doc.Contents, 0, false, false)
	sb.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func startsLikeDirective(n Node) bool {
	s, ok := n.(*Scalar)
	if !ok {
		return false
	}
	str, ok := s.Value.(string)
	return ok && (strings.HasPrefix(str, "---") || strings.HasPrefix(str, "%"))
}

// assignAnchorNames walks the tree once, counting pointer-identity
// reachability through Alias.Source and handing out anchorPrefix+N names
// (spec.md §4.4: "Anchor names follow anchorPrefix + smallest unused
// integer suffix") to every node reached by at least one alias.
func assignAnchorNames(root Node, prefix string, out map[Node]string) {
	refCount := map[Node]int{}
	var countRefs func(n Node)
	countRefs = func(n Node) {
		switch v := n.(type) {
		case *Alias:
			refCount[v.Source]++
		case *YAMLMap:
			for _, p := range v.Items {
				countRefs(p.Key)
				countRefs(p.Value)
			}
		case *YAMLSeq:
			for _, it := range v.Items {
				countRefs(it)
			}
		}
	}
	countRefs(root)

	next := 1
	var assign func(n Node)
	assigned := map[Node]bool{}
	assign = func(n Node) {
		if n == nil || assigned[n] {
			return
		}
		assigned[n] = true
		if refCount[n] > 0 {
			out[n] = fmt.Sprintf("%s%d", prefix, next)
			next++
		}
		switch v := n.(type) {
		case *YAMLMap:
			for _, p := range v.Items {
				assign(p.Key)
				assign(p.Value)
			}
		case *YAMLSeq:
			for _, it := range v.Items {
				assign(it)
			}
		}
	}
	assign(root)
}

func indentStr(n int) string { return strings.Repeat(" ", n) }

// emitNode renders n at the given indent level. asKey/inFlowParent steer
// the block-vs-flow and simple-key decisions of spec.md §4.4.
func emitNode(ctx *stringifyCtx, n Node, level int, asKey bool, inFlowParent bool) string {
	if n == nil {
		return ctx.opts.Scalar.Null.NullStr
	}
	prefix := ""
	if name, ok := ctx.anchorName[n]; ok {
		if ctx.emitted[n] {
			return "*" + name
		}
		prefix = "&" + name + " "
		ctx.emitted[n] = true
	}

	switch v := n.(type) {
	case *Alias:
		if name, ok := ctx.anchorName[v.Source]; ok {
			return "*" + name
		}
		return "*" + v.Name
	case *Scalar:
		return prefix + emitScalar(ctx, v, level, asKey)
	case *YAMLMap:
		return prefix + emitMap(ctx, v, level, inFlowParent)
	case *YAMLSeq:
		return prefix + emitSeq(ctx, v, level, inFlowParent)
	default:
		return ""
	}
}

func useFlow(v Node, level int, opts Options) bool {
	const pathologicalDepth = 60
	switch n := v.(type) {
	case *YAMLMap:
		return n.Flow || level > pathologicalDepth
	case *YAMLSeq:
		return n.Flow || level > pathologicalDepth
	}
	return false
}

func emitMap(ctx *stringifyCtx, m *YAMLMap, level int, inFlowParent bool) string {
	if len(m.Items) == 0 {
		return "{}"
	}
	if useFlow(m, level, ctx.opts) {
		parts := make([]string, len(m.Items))
		for i, p := range m.Items {
			k := emitNode(ctx, p.Key, level+1, true, true)
			v := emitNode(ctx, p.Value, level+1, false, true)
			parts[i] = k + ": " + v
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	}

	var sb strings.Builder
	ind := indentStr(level * ctx.opts.Indent)
	for i, p := range m.Items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		key := p.Key
		keyText := emitSimpleOrComplexKey(ctx, key, level, inFlowParent)
		sb.WriteString(ind)
		if merge, ok := p.Value.(*Merge); ok {
			sb.WriteString(keyText)
			sb.WriteString(": ")
			sb.WriteString(emitNode(ctx, merge.Value, level+1, false, false))
			continue
		}
		valText := emitNode(ctx, p.Value, level+1, false, false)
		if isCollectionNode(p.Value) && !useFlow(p.Value, level+1, ctx.opts) && !isEmptyCollection(p.Value) {
			sb.WriteString(keyText)
			sb.WriteString(":\n")
			// valText is already indented for level+1.
			sb.WriteString(valText)
		} else {
			sb.WriteString(keyText)
			sb.WriteString(": ")
			sb.WriteString(valText)
		}
	}
	return sb.String()
}

func emitSimpleOrComplexKey(ctx *stringifyCtx, key Node, level int, inFlowParent bool) string {
	if key == nil {
		return ctx.opts.Scalar.Null.NullStr
	}
	if sc, ok := key.(*Scalar); ok {
		return emitScalar(ctx, sc, level, true)
	}
	if ctx.opts.SimpleKeys {
		// SimpleKeys forbids non-scalar keys; fall back to flow rendering
		// inline rather than "? key" explicit-key form (spec.md §4.3).
		return emitNode(ctx, key, level, true, true)
	}
	return "? " + emitNode(ctx, key, level+1, true, true)
}

func isCollectionNode(n Node) bool {
	switch n.(type) {
	case *YAMLMap, *YAMLSeq:
		return true
	}
	return false
}

func isEmptyCollection(n Node) bool {
	switch v := n.(type) {
	case *YAMLMap:
		return len(v.Items) == 0
	case *YAMLSeq:
		return len(v.Items) == 0
	}
	return false
}

func indentChildBlock(text string, parentLevel, indent int) string {
	pad := indentStr((parentLevel + 1) * indent)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

func emitSeq(ctx *stringifyCtx, s *YAMLSeq, level int, inFlowParent bool) string {
	if len(s.Items) == 0 {
		return "[]"
	}
	if useFlow(s, level, ctx.opts) {
		parts := make([]string, len(s.Items))
		for i, it := range s.Items {
			parts[i] = emitNode(ctx, it, level+1, false, true)
		}
		return "[ " + strings.Join(parts, ", ") + " ]"
	}

	// IndentSeq indents the "- " marker one level under its parent key
	// (spec.md §4.4); when false the dash sits at the parent key's own
	// column instead, the compact "a:\n- 1\n- 2" style.
	dashIndent := level
	itemLevel := level + 1
	if !ctx.opts.IndentSeq {
		dashIndent = level - 1
		if dashIndent < 0 {
			dashIndent = 0
		}
		itemLevel = level
	}
	var sb strings.Builder
	ind := indentStr(dashIndent * ctx.opts.Indent)
	for i, it := range s.Items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(ind)
		sb.WriteString("- ")
		text := emitNode(ctx, it, itemLevel, false, false)
		if isCollectionNode(it) && !useFlow(it, itemLevel, ctx.opts) && !isEmptyCollection(it) {
			sb.WriteString(strings.TrimLeft(text, " "))
		} else {
			sb.WriteString(text)
		}
	}
	return sb.String()
}

// emitScalar renders a single scalar, choosing style per spec.md §4.4:
// respect the declared style when it round-trips safely; otherwise plain
// when unambiguous, single-quoted when ambiguous-but-escape-free,
// double-quoted when control characters are present, block literal for
// multi-line content under BLOCK_LITERAL default.
func emitScalar(ctx *stringifyCtx, s *Scalar, level int, asKey bool) string {
	opts := ctx.opts.Scalar
	text, isStr := formatScalarText(s.Value, s.Tag, opts)

	if s.Tag == schema.BinaryTag {
		return emitBinary(text, opts, level)
	}

	if !isStr {
		return text
	}

	style := s.Type
	defaultType := opts.Str.DefaultType
	if asKey {
		defaultType = opts.Str.DefaultKeyType
	}
	if style == PLAIN && defaultType != PLAIN {
		style = defaultType
	}

	needsQuote := scalarNeedsQuoting(text, ctx.opts.Schema)
	hasControl := hasControlChars(text)
	multiline := strings.Contains(text, "\n")

	switch {
	case hasControl:
		return quoteDouble(text, opts)
	case multiline && style == BLOCK_LITERAL:
		return blockLiteralOut(text, level, ctx.opts.Indent)
	case multiline && style == BLOCK_FOLDED:
		return blockFoldedOut(text, level, ctx.opts.Indent)
	case multiline:
		return quoteDouble(text, opts)
	case style == QUOTE_DOUBLE:
		return quoteDouble(text, opts)
	case style == QUOTE_SINGLE || (needsQuote && opts.Str.DefaultQuoteSingle):
		return quoteSingle(text)
	case needsQuote:
		return quoteSingle(text)
	default:
		return text
	}
}

// scalarNeedsQuoting reports whether a plain rendering of text would be
// re-resolved to a different implicit type by the active schema, or is
// otherwise syntactically unsafe as a plain scalar.
func scalarNeedsQuoting(text string, schemaName string) bool {
	if text == "" {
		return true
	}
	if strings.ContainsAny(text, "\n") {
		return true
	}
	if strings.HasPrefix(text, " ") || strings.HasSuffix(text, " ") {
		return true
	}
	switch text[0] {
	case '!', '&', '*', '?', '|', '>', '%', '@', '`', '"', '\'', ',', '[', ']', '{', '}', '#':
		return true
	case '-', ':':
		if len(text) == 1 || text[1] == ' ' {
			return true
		}
	}
	if strings.Contains(text, ": ") || strings.HasSuffix(text, ":") || strings.Contains(text, " #") {
		return true
	}
	sch := schema.New(schemaName)
	if r := sch.Implicit(text); r != nil && r.Tag != schema.StrTag {
		return true
	}
	return false
}

func hasControlChars(s string) bool {
	for _, r := range s {
		if r < 0x20 && r != '\n' && r != '\t' {
			return true
		}
		if r == 0x7f {
			return true
		}
	}
	return false
}

func quoteSingle(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteDouble(s string, opts ScalarOptions) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\x%02x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func blockLiteralOut(text string, level, indent int) string {
	pad := indentStr((level + 1) * indent)
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	var sb strings.Builder
	sb.WriteString("|")
	if !strings.HasSuffix(text, "\n") {
		sb.WriteString("-")
	}
	for _, l := range lines {
		sb.WriteByte('\n')
		sb.WriteString(pad)
		sb.WriteString(l)
	}
	return sb.String()
}

func blockFoldedOut(text string, level, indent int) string {
	pad := indentStr((level + 1) * indent)
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	var sb strings.Builder
	sb.WriteString(">")
	if !strings.HasSuffix(text, "\n") {
		sb.WriteString("-")
	}
	for _, l := range lines {
		sb.WriteByte('\n')
		sb.WriteString(pad)
		sb.WriteString(l)
	}
	return sb.String()
}

func emitBinary(base64Text string, opts ScalarOptions, level int) string {
	width := opts.Binary.LineWidth
	if width <= 0 {
		width = 76
	}
	var wrapped []string
	for i := 0; i < len(base64Text); i += width {
		end := i + width
		if end > len(base64Text) {
			end = len(base64Text)
		}
		wrapped = append(wrapped, base64Text[i:end])
	}
	if opts.Binary.DefaultType == BLOCK_LITERAL {
		return blockLiteralOut(strings.Join(wrapped, "\n")+"\n", level, 2)
	}
	return quoteDouble(strings.Join(wrapped, ""), opts)
}

// formatScalarText converts a resolved host value back to its textual
// form, mirroring a value-to-text branch set (encodeString/encodeTime/...)
// generalized across the schema's resolver.Stringify hooks. isStr reports
// whether the result still needs the plain/quote/block style decision in
// emitScalar (false for values with one fixed textual form, like numbers
// and null).
func formatScalarText(value interface{}, tag string, opts ScalarOptions) (text string, isStr bool) {
	switch v := value.(type) {
	case nil:
		return opts.Null.NullStr, false
	case bool:
		if v {
			return opts.Bool.TrueStr, false
		}
		return opts.Bool.FalseStr, false
	case int:
		return strconv.Itoa(v), false
	case int64:
		return strconv.FormatInt(v, 10), false
	case uint64:
		return strconv.FormatUint(v, 10), false
	case float64:
		switch {
		case math.IsNaN(v):
			return ".nan", false
		case math.IsInf(v, 1):
			return ".inf", false
		case math.IsInf(v, -1):
			return "-.inf", false
		default:
			return strconv.FormatFloat(v, 'g', -1, 64), false
		}
	case time.Time:
		return v.Format(time.RFC3339Nano), true
	case string:
		return v, true
	case []byte:
		return base64.StdEncoding.EncodeToString(v), false
	default:
		return fmt.Sprint(v), true
	}
}

