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

func TestCreateNodeWrapsPrimitiveScalars(t *testing.T) {
	n, err := yaml.CreateNode("hello")
	require.NoError(t, err)
	s := n.(*yaml.Scalar)
	require.Equal(t, "hello", s.Value)

	n, err = yaml.CreateNode(42)
	require.NoError(t, err)
	s = n.(*yaml.Scalar)
	require.Equal(t, int64(42), s.Value)

	n, err = yaml.CreateNode(nil)
	require.NoError(t, err)
	s = n.(*yaml.Scalar)
	require.Nil(t, s.Value)
}

func TestCreateNodeConvertsMapAndSlice(t *testing.T) {
	n, err := yaml.CreateNode(map[string]int{"x": 1})
	require.NoError(t, err)
	m := n.(*yaml.YAMLMap)
	require.Len(t, m.Items, 1)
	require.Equal(t, "x", m.Items[0].Key.(*yaml.Scalar).Value)
	require.Equal(t, int64(1), m.Items[0].Value.(*yaml.Scalar).Value)

	n, err = yaml.CreateNode([]int{1, 2, 3})
	require.NoError(t, err)
	seq := n.(*yaml.YAMLSeq)
	require.Len(t, seq.Items, 3)
	require.Equal(t, int64(2), seq.Items[1].(*yaml.Scalar).Value)
}

func TestCreateNodeConvertsStructByYAMLTag(t *testing.T) {
	type inner struct {
		Name    string `yaml:"name"`
		Skipped string `yaml:"-"`
		Age     int    `yaml:"age"`
	}
	n, err := yaml.CreateNode(inner{Name: "x", Skipped: "hidden", Age: 7})
	require.NoError(t, err)
	m := n.(*yaml.YAMLMap)
	require.Len(t, m.Items, 2)
	require.Equal(t, "name", m.Items[0].Key.(*yaml.Scalar).Value)
	require.Equal(t, "x", m.Items[0].Value.(*yaml.Scalar).Value)
	require.Equal(t, "age", m.Items[1].Key.(*yaml.Scalar).Value)
}

type keyedHostStub struct{ pairs [][2]string }

func (k keyedHostStub) ForEachPair(fn func(key, value interface{}) bool) {
	for _, p := range k.pairs {
		if !fn(p[0], p[1]) {
			return
		}
	}
}

type indexedHostStub struct{ items []string }

func (h indexedHostStub) ForEachItem(fn func(value interface{}) bool) {
	for _, v := range h.items {
		if !fn(v) {
			return
		}
	}
}

func TestCreateNodeRecognizesKeyedAndIndexedHosts(t *testing.T) {
	n, err := yaml.CreateNode(keyedHostStub{pairs: [][2]string{{"a", "1"}, {"b", "2"}}})
	require.NoError(t, err)
	m := n.(*yaml.YAMLMap)
	require.Len(t, m.Items, 2)
	require.Equal(t, "a", m.Items[0].Key.(*yaml.Scalar).Value)

	n, err = yaml.CreateNode(indexedHostStub{items: []string{"x", "y"}})
	require.NoError(t, err)
	seq := n.(*yaml.YAMLSeq)
	require.Len(t, seq.Items, 2)
	require.Equal(t, "y", seq.Items[1].(*yaml.Scalar).Value)
}

func TestCreateNodeWithExplicitTagOverride(t *testing.T) {
	const strTag = "tag:yaml.org,2002:str"
	n, err := yaml.CreateNode("007", yaml.CreateNodeOptions{Tag: strTag})
	require.NoError(t, err)
	s := n.(*yaml.Scalar)
	require.Equal(t, strTag, s.Tag)
}
