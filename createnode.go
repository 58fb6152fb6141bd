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
	"reflect"
	"time"

	"github.com/yamlcore/yamlcore/internal/schema"
)

// KeyedHost is the duck-typed capability interface spec.md §9's "Design
// Notes: Duck-typed host values" asks createNode to recognize before
// falling back to reflection: a host value that knows how to walk its
// own key/value pairs in a stable order.
type KeyedHost interface {
	ForEachPair(func(key, value interface{}) bool)
}

// IndexedHost is the sequence counterpart of KeyedHost.
type IndexedHost interface {
	ForEachItem(func(value interface{}) bool)
}

// CreateNodeOptions configures CreateNode, the constructor operation of
// spec.md §4/§9: "createNode(value, wrapScalars?, tag?) -> Node".
type CreateNodeOptions struct {
	// WrapScalars is not read: CreateNode wraps every Go scalar in a
	// *Scalar whether or not it is set.
	WrapScalars bool
	// Tag overrides implicit-schema tag assignment for the node being
	// built, e.g. forcing "!!str" on a numeric-looking string.
	Tag string
	// Schema names a built-in schema ("core" when empty); CreateNode
	// panics on an unknown name. Tags are chosen from the Go type of the
	// value, not from the schema's resolvers.
	Schema string
}

// CreateNode converts a plain Go value into an AST Node, the inverse of
// resolution: where resolveNode turns CST text into typed values,
// CreateNode turns host values into the same typed AST so it can be
// spliced into a Document via Visit's Replace control or stringified
// directly (spec.md §4.4/§9).
func CreateNode(value interface{}, opts ...CreateNodeOptions) (Node, error) {
	var o CreateNodeOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	schemaName := o.Schema
	if schemaName == "" {
		schemaName = "core"
	}
	sch := schema.New(schemaName)
	return createNode(value, o, sch)
}

func createNode(value interface{}, o CreateNodeOptions, sch *schema.Schema) (Node, error) {
	if value == nil {
		return &Scalar{base: base{Tag: schema.NullTag}, Value: nil}, nil
	}

	if n, ok := value.(Node); ok {
		return n, nil
	}

	if kh, ok := value.(KeyedHost); ok {
		return createMapFromHost(kh, o, sch)
	}
	if ih, ok := value.(IndexedHost); ok {
		return createSeqFromHost(ih, o, sch)
	}

	switch v := value.(type) {
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, []byte, time.Time:
		return createScalar(v, o, sch)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		return createMapFromReflect(rv, o, sch)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return createScalar(rv.Bytes(), o, sch)
		}
		return createSeqFromReflect(rv, o, sch)
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return &Scalar{base: base{Tag: schema.NullTag}, Value: nil}, nil
		}
		return createNode(rv.Elem().Interface(), o, sch)
	case reflect.Struct:
		return createMapFromStruct(rv, o, sch)
	default:
		return nil, fmt.Errorf("yaml: createNode: unsupported host value type %T", value)
	}
}

func createScalar(value interface{}, o CreateNodeOptions, sch *schema.Schema) (Node, error) {
	tag := o.Tag
	if tag == "" {
		switch value.(type) {
		case string:
			tag = schema.StrTag
		case bool:
			tag = schema.BoolTag
		case []byte:
			tag = schema.BinaryTag
		case time.Time:
			tag = schema.TimestampTag
		case float32, float64:
			tag = schema.FloatTag
		default:
			tag = schema.IntTag
		}
	}
	norm, _ := normalizeNumeric(value)
	return &Scalar{base: base{Tag: tag}, Value: norm, Type: PLAIN}, nil
}

// normalizeNumeric widens every signed integer type to int64, every
// unsigned integer type to uint64, and every float type to float64, so
// formatScalarText only needs to switch on a handful of cases regardless
// of the host's original field types.
func normalizeNumeric(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case float32:
		return float64(v), false
	case float64:
		return v, false
	default:
		return value, false
	}
}

func createMapFromHost(kh KeyedHost, o CreateNodeOptions, sch *schema.Schema) (Node, error) {
	m := &YAMLMap{}
	var firstErr error
	kh.ForEachPair(func(key, value interface{}) bool {
		kn, err := createNode(key, o, sch)
		if err != nil {
			firstErr = err
			return false
		}
		vn, err := createNode(value, o, sch)
		if err != nil {
			firstErr = err
			return false
		}
		m.Items = append(m.Items, &Pair{Key: kn, Value: vn})
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return m, nil
}

func createSeqFromHost(ih IndexedHost, o CreateNodeOptions, sch *schema.Schema) (Node, error) {
	s := &YAMLSeq{}
	var firstErr error
	ih.ForEachItem(func(value interface{}) bool {
		n, err := createNode(value, o, sch)
		if err != nil {
			firstErr = err
			return false
		}
		s.Items = append(s.Items, n)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return s, nil
}

func createMapFromReflect(rv reflect.Value, o CreateNodeOptions, sch *schema.Schema) (Node, error) {
	m := &YAMLMap{}
	keys := rv.MapKeys()
	for _, k := range keys {
		kn, err := createNode(k.Interface(), o, sch)
		if err != nil {
			return nil, err
		}
		vn, err := createNode(rv.MapIndex(k).Interface(), o, sch)
		if err != nil {
			return nil, err
		}
		m.Items = append(m.Items, &Pair{Key: kn, Value: vn})
	}
	return m, nil
}

func createSeqFromReflect(rv reflect.Value, o CreateNodeOptions, sch *schema.Schema) (Node, error) {
	s := &YAMLSeq{}
	for i := 0; i < rv.Len(); i++ {
		n, err := createNode(rv.Index(i).Interface(), o, sch)
		if err != nil {
			return nil, err
		}
		s.Items = append(s.Items, n)
	}
	return s, nil
}

func createMapFromStruct(rv reflect.Value, o CreateNodeOptions, sch *schema.Schema) (Node, error) {
	m := &YAMLMap{}
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := f.Tag.Get("yaml")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		kn, err := createNode(name, o, sch)
		if err != nil {
			return nil, err
		}
		vn, err := createNode(rv.Field(i).Interface(), o, sch)
		if err != nil {
			return nil, err
		}
		m.Items = append(m.Items, &Pair{Key: kn, Value: vn})
	}
	return m, nil
}
