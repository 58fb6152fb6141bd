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

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlcore/yamlcore/internal/schema"
)

func TestLongAndShort(t *testing.T) {
	require.Equal(t, "tag:yaml.org,2002:str", schema.Long("!!str"))
	require.Equal(t, "!!str", schema.Short("tag:yaml.org,2002:str"))
	require.Equal(t, "!local", schema.Long("!local"))
}

func TestFailsafeOnlyResolvesStrMapSeqByLookup(t *testing.T) {
	s := schema.Failsafe()
	require.Nil(t, s.Implicit("true"))
	r, ok := s.Lookup("!!str")
	require.True(t, ok)
	require.Equal(t, schema.StrTag, r.Tag)
}

func TestCoreResolvesBoolIntFloatNullImplicitly(t *testing.T) {
	s := schema.Core()

	r := s.Implicit("true")
	require.NotNil(t, r)
	require.Equal(t, schema.BoolTag, r.Tag)
	v, err := r.Resolve("true")
	require.NoError(t, err)
	require.Equal(t, true, v)

	r = s.Implicit("42")
	require.NotNil(t, r)
	require.Equal(t, schema.IntTag, r.Tag)

	r = s.Implicit("3.14")
	require.NotNil(t, r)
	require.Equal(t, schema.FloatTag, r.Tag)

	r = s.Implicit("")
	require.NotNil(t, r)
	require.Equal(t, schema.NullTag, r.Tag)

	require.Nil(t, s.Implicit("hello world"))
}

func TestJSONSchemaIsStricterThanCore(t *testing.T) {
	s := schema.JSON()
	require.Nil(t, s.Implicit("True")) // JSON only accepts lowercase true/false
	r := s.Implicit("true")
	require.NotNil(t, r)
	require.Equal(t, schema.BoolTag, r.Tag)
}

func TestYAML11AllowsMergeAndPermissiveBools(t *testing.T) {
	s := schema.YAML11()
	require.True(t, s.AllowMerge)

	r := s.Implicit("yes")
	require.NotNil(t, r)
	require.Equal(t, schema.BoolTag, r.Tag)

	r = s.Implicit("017")
	require.NotNil(t, r)
	require.Equal(t, schema.IntTag, r.Tag)
}

func TestCoreDoesNotAllowMerge(t *testing.T) {
	s := schema.Core()
	require.False(t, s.AllowMerge)
}

func TestAddCustomTagTakesPriorityOverImplicit(t *testing.T) {
	s := schema.Core()
	s.AddCustomTag(&schema.Resolver{
		Tag:      "!!my-bool",
		Accepts:  schema.ScalarKind,
		TestFunc: func(raw string) bool { return raw == "maybe" },
		Resolve:  func(raw string) (interface{}, error) { return "maybe-value", nil },
	})
	r := s.Implicit("maybe")
	require.NotNil(t, r)
	require.Equal(t, "tag:yaml.org,2002:my-bool", r.Tag)
}

func TestNewPanicsOnUnknownSchema(t *testing.T) {
	require.Panics(t, func() { schema.New("nonexistent") })
}
