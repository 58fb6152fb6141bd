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

package main

import (
	"fmt"
	"os"

	"charm.land/log/v2"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/yamlcore/yamlcore"
)

// newFmtCmd reformats a single YAML document through parse-then-stringify,
// normalizing indentation, quoting, and scalar style.
func newFmtCmd(logger *log.Logger, schemaName *string) *cobra.Command {
	var indent int
	var indentSeq bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat a YAML document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			opts := toOptions(*schemaName, false)
			opts.Indent = indent
			opts.IndentSeq = indentSeq

			doc := yaml.ParseDocument(string(data), opts)
			if doc.HasErrors() {
				for _, e := range doc.Errors {
					logger.Error("parse error", "detail", e.Error())
				}
				return fmt.Errorf("refusing to format a document with errors")
			}

			out, err := yaml.Stringify(doc)
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, out)
			return nil
		},
	}
	var fs *flag.FlagSet = cmd.Flags()
	fs.IntVar(&indent, "indent", 2, "spaces per indentation level")
	fs.BoolVar(&indentSeq, "indent-seq", true, "indent sequence items under their parent key")
	return cmd
}
