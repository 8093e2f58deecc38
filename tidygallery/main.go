// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Tidygallery renders charts from CSV data.
//
// The render subcommand reads a CSV file and a YAML chart spec and
// writes one SVG chart. The demo subcommand writes a gallery of
// charts over a built-in sample dataset.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aclements/go-gg/table"
	"github.com/tidyplots/go-tidyplots/tidyplot"
)

var log = logrus.New()

func main() {
	root := &cobra.Command{
		Use:           "tidygallery",
		Short:         "render charts from CSV data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			log.SetLevel(logrus.DebugLevel)
		}
	}
	root.AddCommand(renderCmd(), demoCmd())
	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func renderCmd() *cobra.Command {
	var (
		input, specPath, output string
		width, height           int
		viewer                  string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render one chart from a CSV file and a YAML chart spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := readCSV(input)
			if err != nil {
				return err
			}
			spec, err := readSpec(specPath)
			if err != nil {
				return err
			}
			tp, err := buildChart(tab, spec)
			if err != nil {
				return err
			}
			opts := &tidyplot.SaveOptions{Width: width, Height: height}
			if err := tp.Save(output, opts); err != nil {
				return err
			}
			log.WithField("path", output).Info("wrote chart")
			if viewer != "" {
				view(viewer, output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV input file")
	cmd.Flags().StringVar(&specPath, "spec", "", "YAML chart spec")
	cmd.Flags().StringVarP(&output, "output", "o", "chart.svg", "SVG output file")
	cmd.Flags().IntVar(&width, "width", 800, "chart width in pixels")
	cmd.Flags().IntVar(&height, "height", 600, "chart height in pixels")
	cmd.Flags().StringVar(&viewer, "view", "", "command to open the chart with (shell quoting allowed)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("spec")
	return cmd
}

// readCSV reads a CSV file with a header row into a table, coercing
// numeric-looking columns.
func readCSV(path string) (table.Grouping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: need a header row and at least one data row", path)
	}
	return table.TableFromStrings(rows[0], rows[1:], true), nil
}

// view opens path with a user command, split with shell quoting
// rules so the command can carry its own flags.
func view(command, path string) {
	words, err := shellquote.Split(command)
	if err != nil {
		log.WithError(err).Warn("bad --view command")
		return
	}
	words = append(words, path)
	if err := exec.Command(words[0], words[1:]...).Start(); err != nil {
		log.WithError(err).Warn("viewer failed to start")
	}
}
