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

func TestParseDocumentResolvesScalarsByCoreSchema(t *testing.T) {
	doc := yaml.ParseDocument("a: 1\nb: true\nc: null\nd: 3.5\n")
	require.Empty(t, doc.Errors)
	m, ok := doc.Contents.(*yaml.YAMLMap)
	require.True(t, ok)
	require.Len(t, m.Items, 4)

	a := m.Items[0].Value.(*yaml.Scalar)
	require.Equal(t, int64(1), a.Value)

	b := m.Items[1].Value.(*yaml.Scalar)
	require.Equal(t, true, b.Value)

	c := m.Items[2].Value.(*yaml.Scalar)
	require.Nil(t, c.Value)

	d := m.Items[3].Value.(*yaml.Scalar)
	require.Equal(t, 3.5, d.Value)
}

func TestParseDocumentOnEmptySourceHasNoContents(t *testing.T) {
	doc := yaml.ParseDocument("")
	require.Nil(t, doc.Contents)
	require.Empty(t, doc.Errors)
}

func TestParseAllDocumentsSplitsStream(t *testing.T) {
	docs := yaml.ParseAllDocuments("---\na: 1\n---\na: 2\n")
	require.Len(t, docs, 2)
	m1 := docs[0].Contents.(*yaml.YAMLMap)
	m2 := docs[1].Contents.(*yaml.YAMLMap)
	require.Equal(t, int64(1), m1.Items[0].Value.(*yaml.Scalar).Value)
	require.Equal(t, int64(2), m2.Items[0].Value.(*yaml.Scalar).Value)
}

func TestParseResolvesAnchorAndAlias(t *testing.T) {
	doc := yaml.Parse("a: &x 1\nb: *x\n")
	require.Empty(t, doc.Errors)
	m := doc.Contents.(*yaml.YAMLMap)
	alias, ok := m.Items[1].Value.(*yaml.Alias)
	require.True(t, ok)
	require.Equal(t, "x", alias.Name)
	require.Same(t, m.Items[0].Value, alias.Source)
}

func TestParseUnknownAliasIsReferenceError(t *testing.T) {
	doc := yaml.Parse("a: *missing\n")
	require.NotEmpty(t, doc.Errors)
	require.Equal(t, yaml.YAMLReferenceErrorName, doc.Errors[0].Name)
}

func TestParseDuplicateKeyIsWarning(t *testing.T) {
	doc := yaml.Parse("a: 1\na: 2\n")
	require.Empty(t, doc.Errors)
	require.NotEmpty(t, doc.Warnings)
}

func TestParseMergeKeyOnlySplicesUnderYAML11(t *testing.T) {
	src := "base: &b\n  x: 1\nchild:\n  <<: *b\n  y: 2\n"

	opts := yaml.DefaultOptions()
	opts.Schema = "yaml-1.1"
	doc := yaml.Parse(src, opts)
	require.Empty(t, doc.Errors)
	m := doc.Contents.(*yaml.YAMLMap)
	child := m.Items[1].Value.(*yaml.YAMLMap)
	_, isMerge := child.Items[0].Value.(*yaml.Merge)
	require.True(t, isMerge)

	coreOpts := yaml.DefaultOptions()
	coreOpts.Schema = "core"
	doc2 := yaml.Parse(src, coreOpts)
	m2 := doc2.Contents.(*yaml.YAMLMap)
	child2 := m2.Items[1].Value.(*yaml.YAMLMap)
	_, isMerge2 := child2.Items[0].Value.(*yaml.Merge)
	require.False(t, isMerge2)
}

func TestHasErrorsRefusesStringify(t *testing.T) {
	doc := yaml.Parse("a: *missing\n")
	require.True(t, doc.HasErrors())
	_, err := yaml.Stringify(doc)
	require.Error(t, err)
}

func TestStringifyRoundTripsSimpleDocument(t *testing.T) {
	doc := yaml.Parse("a: 1\nb:\n  - 1\n  - 2\n")
	out, err := yaml.Stringify(doc)
	require.NoError(t, err)
	require.Contains(t, out, "a: 1")
	require.Contains(t, out, "- 1")
	require.Contains(t, out, "- 2")
}

func TestStringifyReemitsAnchorThenAlias(t *testing.T) {
	doc := yaml.Parse("a: &x 1\nb: *x\n")
	out, err := yaml.Stringify(doc)
	require.NoError(t, err)
	require.Contains(t, out, "&a1 1")
	require.Contains(t, out, "*a1")
}

func TestNewDocumentWrapsCreatedNode(t *testing.T) {
	n, err := yaml.CreateNode(map[string]interface{}{"k": "v"})
	require.NoError(t, err)
	doc := yaml.NewDocument(n)
	out, err := yaml.Stringify(doc)
	require.NoError(t, err)
	require.Contains(t, out, "k: v")
}
