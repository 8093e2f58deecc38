// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aclements/go-gg/table"
	"github.com/tidyplots/go-tidyplots/tidyplot"
)

// chartSpec is the YAML description of one chart: the aesthetic
// mapping, optional cosmetics, and an ordered list of steps.
type chartSpec struct {
	X     string `yaml:"x"`
	Y     string `yaml:"y"`
	Color string `yaml:"color"`

	Title   string `yaml:"title"`
	XLabel  string `yaml:"xlabel"`
	YLabel  string `yaml:"ylabel"`
	Palette string `yaml:"palette"`
	Legend  string `yaml:"legend"`

	Steps []stepSpec `yaml:"steps"`
}

// stepSpec is one chained call. Type selects the operation; the
// remaining fields parameterize it and unused ones are ignored.
type stepSpec struct {
	Type string `yaml:"type"`

	Alpha     float64   `yaml:"alpha"`
	Size      float64   `yaml:"size"`
	Width     float64   `yaml:"width"`
	Bins      int       `yaml:"bins"`
	Method    string    `yaml:"method"`
	SE        bool      `yaml:"se"`
	Stat      string    `yaml:"stat"`
	Position  string    `yaml:"position"`
	Direction string    `yaml:"direction"`
	Sides     string    `yaml:"sides"`
	Length    float64   `yaml:"length"`
	CI        float64   `yaml:"ci"`
	Ymin      string    `yaml:"ymin"`
	Ymax      string    `yaml:"ymax"`
	Quantiles []float64 `yaml:"quantiles"`
	Format    string    `yaml:"format"`
	Label     string    `yaml:"label"`
	X         float64   `yaml:"x"`
	Y         float64   `yaml:"y"`
	ColorName string    `yaml:"colorname"`
	Low       string    `yaml:"low"`
	Mid       string    `yaml:"mid"`
	High      string    `yaml:"high"`
	Angle     float64   `yaml:"angle"`
}

func readSpec(path string) (*chartSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec chartSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(spec.Steps) == 0 {
		return nil, fmt.Errorf("%s: chart spec has no steps", path)
	}
	return &spec, nil
}

// buildChart translates a chart spec into a call chain.
func buildChart(tab table.Grouping, spec *chartSpec) (*tidyplot.Plot, error) {
	tp := tidyplot.New(tab, spec.X, spec.Y, spec.Color)
	for _, s := range spec.Steps {
		log.WithField("type", s.Type).Debug("adding step")
		switch s.Type {
		case "scatter":
			tp.AddScatter(s.Size, s.Alpha)
		case "line":
			tp.AddLine(s.Alpha)
		case "smooth":
			tp.AddSmooth(s.Method, s.SE)
		case "boxplot":
			tp.AddBoxplot(s.Alpha, 0)
		case "violin":
			tp.AddViolin(s.Alpha, s.Quantiles)
		case "density":
			tp.AddDensity(s.Alpha)
		case "density2d":
			tp.AddDensity2D()
		case "hex":
			tp.AddHex(s.Bins)
		case "meanbar":
			tp.AddMeanBar(s.Alpha, s.Width)
		case "sem":
			tp.AddSEMErrorBar(s.Width)
		case "sd":
			tp.AddSDErrorBar(s.Width)
		case "ci":
			tp.AddCIErrorBar(s.Width, s.CI)
		case "errorbar":
			tp.AddErrorBar(s.Ymin, s.Ymax, s.Width)
		case "jitter":
			tp.AddDataPointsJitter(s.Width, s.Size, s.Alpha)
		case "beeswarm":
			tp.AddDataPointsBeeswarm(s.Size, s.Alpha)
		case "hline":
			tp.AddHLine(s.Y, s.ColorName, s.Alpha)
		case "vline":
			tp.AddVLine(s.X, s.ColorName, s.Alpha)
		case "ribbon":
			tp.AddRibbon(s.Ymin, s.Ymax, s.Alpha)
		case "rug":
			tp.AddRug(s.Sides, s.Length, s.Alpha)
		case "step":
			tp.AddStep(s.Direction)
		case "count":
			tp.AddCount(s.Stat, s.Position, s.Alpha)
		case "quantiles":
			tp.AddQuantiles(s.Quantiles)
		case "text":
			tp.AddText(s.Label, s.X, s.Y)
		case "pvalue":
			tp.AddTestPValue(s.Method, s.Format)
		case "correlation":
			tp.AddCorrelationText(s.Method, s.Format)
		case "xlog10":
			tp.ScaleXLog10()
		case "ylog10":
			tp.ScaleYLog10()
		case "xsqrt":
			tp.ScaleXSqrt()
		case "ysqrt":
			tp.ScaleYSqrt()
		case "xreverse":
			tp.ScaleXReverse()
		case "yreverse":
			tp.ScaleYReverse()
		case "gradient":
			if s.Mid != "" {
				tp.ScaleColorGradient2(s.Low, s.Mid, s.High)
			} else {
				tp.ScaleColorGradient(s.Low, s.High)
			}
		case "angle":
			tp.AdjustAxisTextAngle(s.Angle)
		default:
			return nil, fmt.Errorf("unknown step type %q", s.Type)
		}
	}
	if spec.Title != "" || spec.XLabel != "" || spec.YLabel != "" {
		tp.AdjustLabels(spec.Title, spec.XLabel, spec.YLabel)
	}
	if spec.Palette != "" {
		tp.AdjustColors(spec.Palette)
	}
	if spec.Legend != "" {
		tp.AdjustLegendPosition(spec.Legend)
	}
	return tp, tp.Err()
}
