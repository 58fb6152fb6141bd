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

package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	yaml "github.com/yamlcore/yamlcore"
)

func TestVisitWalksMapAndSeqDepthFirst(t *testing.T) {
	doc := yaml.Parse("a:\n  - 1\n  - 2\nb: 3\n")
	var seen []string
	yaml.Visit(doc.Contents, func(key yaml.VisitKey, n yaml.Node, ancestors []yaml.Node) yaml.VisitControl {
		if s, ok := n.(*yaml.Scalar); ok {
			if v, ok := s.Value.(int64); ok {
				seen = append(seen, v2s(v))
			}
		}
		return yaml.Continue
	})
	require.Equal(t, []string{"1", "2", "3"}, seen)
}

func v2s(v int64) string {
	switch v {
	case 1:
		return "1"
	case 2:
		return "2"
	case 3:
		return "3"
	}
	return "?"
}

func TestVisitBreakStopsTraversal(t *testing.T) {
	doc := yaml.Parse("a: 1\nb: 2\nc: 3\n")
	count := 0
	yaml.Visit(doc.Contents, func(key yaml.VisitKey, n yaml.Node, ancestors []yaml.Node) yaml.VisitControl {
		if _, ok := n.(*yaml.Scalar); ok {
			count++
			if count == 2 {
				return yaml.Break
			}
		}
		return yaml.Continue
	})
	require.Equal(t, 2, count)
}

func TestVisitRemoveDropsSeqItem(t *testing.T) {
	doc := yaml.Parse("a:\n  - 1\n  - 2\n  - 3\n")
	m := doc.Contents.(*yaml.YAMLMap)
	seq := m.Items[0].Value.(*yaml.YAMLSeq)
	yaml.Visit(seq, func(key yaml.VisitKey, n yaml.Node, ancestors []yaml.Node) yaml.VisitControl {
		if s, ok := n.(*yaml.Scalar); ok && s.Value == int64(2) {
			return yaml.Remove
		}
		return yaml.Continue
	})
	require.Len(t, seq.Items, 2)
	require.Equal(t, int64(1), seq.Items[0].(*yaml.Scalar).Value)
	require.Equal(t, int64(3), seq.Items[1].(*yaml.Scalar).Value)
}

func TestVisitReplaceSubstitutesNode(t *testing.T) {
	doc := yaml.Parse("a: 1\n")
	m := doc.Contents.(*yaml.YAMLMap)
	replacement := &yaml.Scalar{Value: int64(99), Type: yaml.PLAIN}
	yaml.Visit(doc.Contents, func(key yaml.VisitKey, n yaml.Node, ancestors []yaml.Node) yaml.VisitControl {
		if key.IsValue && n != replacement {
			return yaml.Replace(replacement)
		}
		return yaml.Continue
	})
	require.Equal(t, int64(99), m.Items[0].Value.(*yaml.Scalar).Value)
}

func TestVisitJumpSkipsAheadInSequence(t *testing.T) {
	doc := yaml.Parse("a:\n  - 1\n  - 2\n  - 3\n  - 4\n")
	m := doc.Contents.(*yaml.YAMLMap)
	seq := m.Items[0].Value.(*yaml.YAMLSeq)
	var seen []int64
	yaml.Visit(seq, func(key yaml.VisitKey, n yaml.Node, ancestors []yaml.Node) yaml.VisitControl {
		if s, ok := n.(*yaml.Scalar); ok {
			if v, ok := s.Value.(int64); ok {
				seen = append(seen, v)
				if v == 1 {
					return yaml.Jump(3)
				}
			}
		}
		return yaml.Continue
	})
	require.Equal(t, []int64{1, 4}, seen)
}
