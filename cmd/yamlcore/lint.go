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

	"github.com/yamlcore/yamlcore"
)

// newLintCmd reports every syntax/semantic/reference diagnostic a
// document's CST parse and AST resolution raise, without stringifying.
func newLintCmd(logger *log.Logger, schemaName *string, prettyErrors *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [file]",
		Short: "Report parse and resolution diagnostics for a YAML document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			opts := toOptions(*schemaName, *prettyErrors)
			docs := yaml.ParseAllDocuments(string(data), opts)

			total := 0
			for i, doc := range docs {
				for _, e := range doc.Errors {
					total++
					logger.Error("diagnostic", "doc", i, "kind", string(e.Name), "detail", e.Error())
				}
				for _, w := range doc.Warnings {
					logger.Warn("diagnostic", "doc", i, "kind", string(w.Name), "detail", w.Error())
				}
			}
			if total > 0 {
				fmt.Fprintf(os.Stderr, "%d error(s) across %d document(s)\n", total, len(docs))
				os.Exit(1)
			}
			fmt.Printf("%d document(s) OK\n", len(docs))
			return nil
		},
	}
	return cmd
}
