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

// Command yamlcore parses, lints, and reformats YAML documents through the
// yamlcore pipeline: CST parse, AST resolution under a chosen schema, and
// stringification back to text.
package main

import (
	"fmt"
	"io"
	"os"

	"charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/yamlcore/yamlcore"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		schemaName   string
		logLevelStr  string
		prettyErrors bool
	)

	logger := log.Default()

	root := &cobra.Command{
		Use:           "yamlcore",
		Short:         "Parse, lint, and reformat YAML through the yamlcore pipeline",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			lvl, err := parseLogLevel(logLevelStr)
			if err != nil {
				return err
			}
			logger.SetLevel(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&schemaName, "schema", "core", "schema to resolve against (failsafe, json, core, yaml-1.1)")
	root.PersistentFlags().StringVar(&logLevelStr, "log-level", "warn", "log level (silent, error, warn, debug)")
	root.PersistentFlags().BoolVar(&prettyErrors, "pretty-errors", true, "render caret-underlined diagnostics")

	root.AddCommand(newLintCmd(logger, &schemaName, &prettyErrors))
	root.AddCommand(newFmtCmd(logger, &schemaName))
	root.AddCommand(newMergeCmd(logger, &schemaName))
	return root
}

func parseLogLevel(s string) (log.Level, error) {
	switch s {
	case "silent":
		return log.FatalLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func toOptions(schemaName string, pretty bool) yaml.Options {
	o := yaml.DefaultOptions()
	o.Schema = schemaName
	o.PrettyErrors = pretty
	return o
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}
