// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/dgryski/go-onlinestats"
)

// splitByX splits the y column by distinct x value. For a categorical
// x axis the returned positions are level indices; for a numeric one
// they are the distinct x values. Both are in ascending order.
func (p *Plot) splitByX() (pos []float64, samples [][]float64, err error) {
	ys, err := p.floatColumn(p.y)
	if err != nil {
		return nil, nil, err
	}

	var xpos []float64
	if _, ok := p.data.Column(p.x).([]string); ok {
		labels := p.stringColumn(p.x)
		_, index := sortedLevels(labels)
		xpos = make([]float64, len(labels))
		for i, l := range labels {
			xpos[i] = float64(index[l])
		}
	} else {
		xpos, err = p.floatColumn(p.x)
		if err != nil {
			return nil, nil, err
		}
	}

	seen := map[float64]int{}
	for i, x := range xpos {
		j, ok := seen[x]
		if !ok {
			j = len(pos)
			seen[x] = j
			pos = append(pos, x)
			samples = append(samples, nil)
		}
		samples[j] = append(samples[j], ys[i])
	}

	order := make([]int, len(pos))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return pos[order[i]] < pos[order[j]] })
	spos := make([]float64, len(pos))
	ssamples := make([][]float64, len(pos))
	for i, j := range order {
		spos[i], ssamples[i] = pos[j], samples[j]
	}
	return spos, ssamples, nil
}

// AddTestPValue compares the two x groups and annotates the plot with
// the test's p-value, centered between the groups above the data.
// test is "t" (two-sample pooled-variance t-test) or "wilcoxon"
// (Mann-Whitney U test). format is the fmt verb for the p-value
// (default "%.3f").
//
// If the x column does not have exactly two distinct values the
// comparison is meaningless; a warning is logged and nothing is
// appended.
func (p *Plot) AddTestPValue(test, format string) *Plot {
	if test != "t" && test != "wilcoxon" {
		return p.invalidf("unknown test %q", test)
	}
	if !p.needY("test p-value") {
		return p
	}
	if format == "" {
		format = "%.3f"
	}

	pos, samples, err := p.splitByX()
	if err != nil {
		return p.fail(err)
	}
	if len(samples) != 2 {
		Warning.Printf("test p-value needs exactly 2 groups; have %d", len(samples))
		return p
	}

	var pval float64
	switch test {
	case "t":
		r, err := stats.TwoSampleTTest(
			stats.Sample{Xs: samples[0]}, stats.Sample{Xs: samples[1]},
			stats.LocationDiffers)
		if err != nil {
			return p.fail(err)
		}
		pval = r.P
	case "wilcoxon":
		r, err := stats.MannWhitneyUTest(samples[0], samples[1], stats.LocationDiffers)
		if err != nil {
			return p.fail(err)
		}
		pval = r.P
	}

	ymax := math.Inf(-1)
	for _, s := range samples {
		for _, y := range s {
			if y > ymax {
				ymax = y
			}
		}
	}
	label := fmt.Sprintf("p = "+format, pval)
	return p.addAnnotation(label, (pos[0]+pos[1])/2, 1.1*ymax)
}

// AddCorrelationText annotates the plot with the correlation between
// x and y and its p-value, placed at the mean x above the data.
// method is "pearson" or "spearman". format is the fmt verb for both
// values (default "%.3f").
func (p *Plot) AddCorrelationText(method, format string) *Plot {
	if method != "pearson" && method != "spearman" {
		return p.invalidf("unknown correlation method %q", method)
	}
	if !p.needY("correlation text") {
		return p
	}
	if format == "" {
		format = "%.3f"
	}

	xs, err := p.floatColumn(p.x)
	if err != nil {
		return p.fail(err)
	}
	ys, err := p.floatColumn(p.y)
	if err != nil {
		return p.fail(err)
	}
	if len(xs) < 3 {
		return p.fail(fmt.Errorf("correlation needs at least 3 points; have %d", len(xs)))
	}

	var r, pval float64
	switch method {
	case "pearson":
		r = onlinestats.Pearson(xs, ys)
		pval = pearsonP(r, len(xs))
	case "spearman":
		r, pval = onlinestats.Spearman(xs, ys)
	}

	xbar := stats.Sample{Xs: xs}.Mean()
	_, ymax := stats.Bounds(ys)
	label := fmt.Sprintf("r = "+format+", p = "+format, r, pval)
	return p.addAnnotation(label, xbar, 1.1*ymax)
}

// pearsonP is the two-sided p-value of a Pearson correlation under
// the t distribution with n-2 degrees of freedom.
func pearsonP(r float64, n int) float64 {
	if 1-r*r <= 0 {
		return 0
	}
	t := math.Abs(r) * math.Sqrt(float64(n-2)/(1-r*r))
	dist := stats.TDist{V: float64(n - 2)}
	return 2 * (1 - dist.CDF(t))
}
