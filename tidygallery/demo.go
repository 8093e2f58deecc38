// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aclements/go-gg/table"
	"github.com/tidyplots/go-tidyplots/tidyplot"
)

func demoCmd() *cobra.Command {
	var (
		outDir        string
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "write a gallery of example charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outDir, 0777); err != nil {
				return err
			}
			tab := demoData()
			opts := &tidyplot.SaveOptions{Width: width, Height: height}
			for name, build := range demoCharts {
				path := filepath.Join(outDir, name+".svg")
				if err := build(tab).Save(path, opts); err != nil {
					return err
				}
				log.WithField("path", path).Info("wrote chart")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "output directory")
	cmd.Flags().IntVar(&width, "width", 800, "chart width in pixels")
	cmd.Flags().IntVar(&height, "height", 600, "chart height in pixels")
	return cmd
}

// demoData builds a deterministic sample dataset: a dose/response
// curve measured for two treatments across three subject groups.
func demoData() table.Grouping {
	rng := rand.New(rand.NewSource(42))
	var (
		treatments, groups []string
		doses, responses   []float64
	)
	for _, treatment := range []string{"control", "drug"} {
		gain := 1.0
		if treatment == "drug" {
			gain = 1.8
		}
		for _, group := range []string{"A", "B", "C"} {
			for i := 0; i < 20; i++ {
				dose := float64(i) * 0.5
				resp := gain*(10/(1+math.Exp(2-dose))) + rng.NormFloat64()
				treatments = append(treatments, treatment)
				groups = append(groups, group)
				doses = append(doses, dose)
				responses = append(responses, resp)
			}
		}
	}
	return new(table.Builder).
		Add("treatment", treatments).
		Add("group", groups).
		Add("dose", doses).
		Add("response", responses).
		Done()
}

var demoCharts = map[string]func(table.Grouping) *tidyplot.Plot{
	"boxplot": func(t table.Grouping) *tidyplot.Plot {
		return tidyplot.New(t, "group", "response", "").
			AddBoxplot(0.4, 0.5).
			AddDataPointsBeeswarm(2, 0.4).
			AdjustLabels("Response by group", "", "")
	},
	"violin": func(t table.Grouping) *tidyplot.Plot {
		return tidyplot.New(t, "treatment", "response", "").
			AddViolin(0.4, []float64{0.25, 0.5, 0.75}).
			AddDataPointsJitter(0.15, 2, 0.4).
			AddTestPValue("t", "%.4f").
			AdjustLabels("Treatment effect", "", "")
	},
	"bars": func(t table.Grouping) *tidyplot.Plot {
		return tidyplot.New(t, "group", "response", "treatment").
			AddMeanBar(0.8, 0.6).
			AddSEMErrorBar(0.2).
			AdjustColors("npg").
			AdjustLegendPosition("bottom").
			AdjustLabels("Mean response", "", "")
	},
	"smooth": func(t table.Grouping) *tidyplot.Plot {
		return tidyplot.New(t, "dose", "response", "treatment").
			AddScatter(2, 0.4).
			AddSmooth("loess", true).
			AdjustLabels("Dose response", "dose (mg)", "response")
	},
	"correlation": func(t table.Grouping) *tidyplot.Plot {
		return tidyplot.New(t, "dose", "response", "").
			AddScatter(2, 0.5).
			AddSmooth("lm", false).
			AddCorrelationText("pearson", "%.3f")
	},
	"density": func(t table.Grouping) *tidyplot.Plot {
		return tidyplot.New(t, "response", "", "treatment").
			AddDensity(0.4).
			AdjustColors("set2")
	},
	"count": func(t table.Grouping) *tidyplot.Plot {
		return tidyplot.New(t, "group", "", "treatment").
			AddCount("count", "stack", 0.9).
			AdjustColors("dark2")
	},
	"hex": func(t table.Grouping) *tidyplot.Plot {
		return tidyplot.New(t, "dose", "response", "").
			AddHex(15).
			AdjustLabels("Observation density", "dose (mg)", "response")
	},
}
