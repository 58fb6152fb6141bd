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

// VisitKey identifies a node's position relative to its parent while
// visiting, the "key" argument of spec.md §4.5: a sequence index, the
// literal KeyMarker/ValueMarker inside a pair, or RootKey at the root.
type VisitKey struct {
	Index    int
	IsKey    bool
	IsValue  bool
	IsRoot   bool
}

// RootKey is the VisitKey passed for the document's top-level node.
var RootKey = VisitKey{IsRoot: true}

// KeyKey and ValueKey are the VisitKeys passed for a Pair's two halves.
var (
	KeyKey   = VisitKey{IsKey: true}
	ValueKey = VisitKey{IsValue: true}
)

// VisitControl is the tagged result a Visitor returns, modelling the
// mixed sentinel|index|node return value of spec.md §4.5 as the explicit
// variant spec.md §9 recommends: "{Continue, Skip, Break, Remove,
// Replace(Node), Jump(index)}".
type VisitControl struct {
	kind    visitKind
	replace Node
	jumpTo  int
}

type visitKind int

const (
	vContinue visitKind = iota
	vSkip
	vBreak
	vRemove
	vReplace
	vJump
)

var (
	Continue = VisitControl{kind: vContinue}
	Skip     = VisitControl{kind: vSkip}
	Break    = VisitControl{kind: vBreak}
	Remove   = VisitControl{kind: vRemove}
)

// Replace builds a control that substitutes n for the node currently
// being visited; the replacement is itself visited afterward.
func Replace(n Node) VisitControl { return VisitControl{kind: vReplace, replace: n} }

// Jump builds a control that redirects sequence iteration to the given
// index. Returned for a mapping's key or value, it only skips that node's
// children; mapping iteration goes on with the next pair.
func Jump(index int) VisitControl { return VisitControl{kind: vJump, jumpTo: index} }

// Visitor is called for every node the walk visits. ancestors lists every
// enclosing node from the document root inward.
type Visitor func(key VisitKey, n Node, ancestors []Node) VisitControl

// Visit performs a depth-first walk of root, the operation of spec.md
// §4.5 and the public "visit(node, visitor)" entry point of §6.
func Visit(root Node, visitor Visitor) {
	if root == nil {
		return
	}
	visitNode(RootKey, root, nil, visitor)
}

// visitNode returns the (possibly replaced) node, whether the caller
// should stop walking entirely (vBreak propagated upward), and a
// requested jump target (-1 if none), the "integer redirects iteration to
// that index" control of spec.md §4.5.
func visitNode(key VisitKey, n Node, ancestors []Node, visitor Visitor) (result Node, stop bool, jump int) {
	jump = -1
	ctl := visitor(key, n, ancestors)
	switch ctl.kind {
	case vBreak:
		return n, true, -1
	case vSkip:
		return n, false, -1
	case vRemove:
		return nil, false, -1
	case vJump:
		return n, false, ctl.jumpTo
	case vReplace:
		return visitNode(key, ctl.replace, ancestors, visitor)
	}

	childAncestors := append(append([]Node{}, ancestors...), n)
	switch v := n.(type) {
	case *YAMLMap:
		for _, pair := range v.Items {
			if pair.Key != nil {
				newKey, s, _ := visitNode(KeyKey, pair.Key, childAncestors, visitor)
				if s {
					return n, true, -1
				}
				pair.Key = newKey
			}
			if pair.Value != nil {
				newVal, s, _ := visitNode(ValueKey, pair.Value, childAncestors, visitor)
				if s {
					return n, true, -1
				}
				pair.Value = newVal
			}
		}
	case *YAMLSeq:
		for i := 0; i < len(v.Items); {
			newChild, s, j := visitNode(VisitKey{Index: i}, v.Items[i], childAncestors, visitor)
			if s {
				return n, true, -1
			}
			switch {
			case j >= 0:
				i = j
			case newChild == nil:
				v.Items = append(v.Items[:i], v.Items[i+1:]...)
			default:
				v.Items[i] = newChild
				i++
			}
		}
	}
	return n, false, -1
}
