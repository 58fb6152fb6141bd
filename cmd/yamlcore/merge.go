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
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yamlcore/yamlcore"
)

// newMergeCmd concatenates the first document of each input file into one
// block sequence, one item per file holding that document's contents.
// Each file is parsed with its own UUID-derived AnchorPrefix, but the
// stringifier renames anchors over the whole merged sequence (default
// prefix plus a counter), so that prefix does not appear in the output;
// anchors that shared a name in two source files still come out distinct.
func newMergeCmd(logger *log.Logger, schemaName *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [files...]",
		Short: "Merge several YAML documents into one sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			seq := &yaml.YAMLSeq{}
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				opts := toOptions(*schemaName, false)
				opts.AnchorPrefix = anchorPrefixFor(path)
				doc := yaml.ParseDocument(string(data), opts)
				if doc.HasErrors() {
					for _, e := range doc.Errors {
						logger.Error("parse error", "file", path, "detail", e.Error())
					}
					return fmt.Errorf("refusing to merge %s: has errors", path)
				}
				if doc.Contents != nil {
					seq.Items = append(seq.Items, doc.Contents)
				}
			}

			merged := yaml.NewDocument(seq, toOptions(*schemaName, false))
			out, err := yaml.Stringify(merged)
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, out)
			return nil
		},
	}
	return cmd
}

func anchorPrefixFor(path string) string {
	id := uuid.New()
	return "a" + id.String()[:8] + "_"
}
