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

// Package common holds the default %TAG handle table every document
// starts with before its own %TAG directives are applied, spec.md §4.1's
// "!" and "!!" handles.
package common

// TagDirective is one handle -> prefix binding.
type TagDirective struct {
	Handle string
	Prefix string
}

// DefaultTagDirectives are the two handles every YAML document resolves
// implicitly: the local "!" handle (expands to itself) and the standard
// "!!" handle (expands to the yaml.org tag namespace).
var DefaultTagDirectives = []TagDirective{
	{Handle: "!", Prefix: "!"},
	{Handle: "!!", Prefix: "tag:yaml.org,2002:"},
}
