// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"image/color"
	"math"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// orDefault substitutes d for a non-positive parameter value.
func orDefault(v, d float64) float64 {
	if v <= 0 {
		return d
	}
	return v
}

// AddScatter appends a point layer. size is the point radius in
// pixel-ish units (default 3) and alpha the point opacity
// (default 0.5).
func (p *Plot) AddScatter(size, alpha float64) *Plot {
	if !p.needY("scatter") {
		return p
	}
	size, alpha = orDefault(size, 3), orDefault(alpha, 0.5)
	return p.addLayer("scatter", func(rc *renderContext) error {
		rc.withData(rc.tab, func() {
			rc.gp.Add(gg.LayerPoints{
				X: posCol, Y: p.y, Color: rc.strokeCol(),
				Opacity: rc.constOpacity(alpha),
				Size:    rc.constSize(size),
			})
		})
		return nil
	})
}

// AddLine appends a line layer connecting points in x order, one line
// per group level.
func (p *Plot) AddLine(alpha float64) *Plot {
	if !p.needY("line") {
		return p
	}
	alpha = orDefault(alpha, 1)
	return p.addLayer("line", func(rc *renderContext) error {
		rc.withData(rc.tab, func() {
			stroke := rc.strokeCol()
			if stroke == "" && alpha < 1 {
				stroke = rc.gp.Const(withAlpha(color.Black, alpha))
			}
			rc.gp.Add(gg.LayerLines{X: posCol, Y: p.y, Color: stroke})
		})
		return nil
	})
}

// AddSmooth appends a smoothed conditional mean, one curve per group
// level. method is "loess" or "lm". With se, a 95% standard error
// band is shaded under the curve.
func (p *Plot) AddSmooth(method string, se bool) *Plot {
	if method != "loess" && method != "lm" {
		return p.invalidf("unknown smoothing method %q", method)
	}
	if !p.needY("smooth") {
		return p
	}
	return p.addLayer("smooth "+method, func(rc *renderContext) error {
		return rc.drawSmooth(method, se)
	})
}

func (rc *renderContext) drawSmooth(method string, se bool) error {
	var g table.Grouping = rc.tab
	if rc.p.color != "" {
		g = table.GroupBy(g, rc.p.color)
	}
	if se {
		rc.drawSEBands(g, method)
	}
	var res table.Grouping
	if method == "loess" {
		res = ggstat.LOESS{X: posCol, Y: rc.p.y, N: 80}.F(g)
	} else {
		res = ggstat.LeastSquares{X: posCol, Y: rc.p.y, N: 80}.F(g)
	}
	rc.withData(res, func() {
		rc.gp.Add(gg.LayerLines{X: posCol, Y: rc.p.y, Color: rc.strokeCol()})
	})
	return nil
}

// drawSEBands shades the pointwise 95% band around each group's fit
// using the residual standard error.
func (rc *renderContext) drawSEBands(g table.Grouping, method string) {
	upCol, loCol := rc.col("band upper"), rc.col("band lower")
	var bands table.GroupingBuilder
	n := 0
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		var xs, ys []float64
		slice.Convert(&xs, t.MustColumn(posCol))
		slice.Convert(&ys, t.MustColumn(rc.p.y))
		if len(xs) < 3 {
			continue
		}
		var f func(float64) float64
		if method == "loess" {
			f = fit.LOESS(xs, ys, 2, 0.5)
		} else {
			f = fit.PolynomialRegression(xs, ys, nil, 1).F
		}

		nf := float64(len(xs))
		xbar := stats.Sample{Xs: xs}.Mean()
		sxx, rss := 0.0, 0.0
		for i, x := range xs {
			dx := x - xbar
			sxx += dx * dx
			dy := ys[i] - f(x)
			rss += dy * dy
		}
		if sxx == 0 {
			continue
		}
		s := rss / (nf - 2)

		lo, hi := stats.Bounds(xs)
		grid := vec.Linspace(lo, hi, 80)
		up := make([]float64, len(grid))
		dn := make([]float64, len(grid))
		for i, x := range grid {
			fy := f(x)
			dx := x - xbar
			sef := 1.96 * math.Sqrt(s*(1/nf+dx*dx/sxx))
			up[i], dn[i] = fy+sef, fy-sef
		}
		tb := new(table.Builder).Add(posCol, grid).Add(upCol, up).Add(loCol, dn)
		bands.Add(table.RootGroupID.Extend(n), tb.Done())
		n++
	}
	if n == 0 {
		return
	}
	rc.withData(bands.Done(), func() {
		rc.gp.Add(gg.LayerArea{
			X: posCol, Upper: upCol, Lower: loCol,
			Fill: rc.gp.Const(withAlpha(color.Gray{0xc0}, 0.4)),
		})
	})
}

// AddBoxplot appends per-group box-and-whisker summaries: a filled
// box from the first to the third quartile, a median rule, whiskers
// to the last points within 1.5 IQR of the box, and the points
// beyond them.
func (p *Plot) AddBoxplot(alpha, outlierAlpha float64) *Plot {
	if !p.needY("boxplot") {
		return p
	}
	alpha, outlierAlpha = orDefault(alpha, 0.4), orDefault(outlierAlpha, 0.5)
	return p.addLayer("boxplot", func(rc *renderContext) error {
		return rc.drawBoxplots(alpha, outlierAlpha)
	})
}

// AddViolin appends per-group mirrored density outlines. quantiles
// optionally marks horizontal rules at the given y quantiles inside
// each violin.
func (p *Plot) AddViolin(alpha float64, quantiles []float64) *Plot {
	if !validQuantiles(quantiles) {
		return p.invalidf("quantiles must be in [0, 1]: %v", quantiles)
	}
	if !p.needY("violin") {
		return p
	}
	alpha = orDefault(alpha, 0.4)
	return p.addLayer("violin", func(rc *renderContext) error {
		return rc.drawViolins(alpha, quantiles)
	})
}

// AddDensity appends a kernel density estimate of x, one filled curve
// per group level.
func (p *Plot) AddDensity(alpha float64) *Plot {
	if p.err != nil {
		return p
	}
	alpha = orDefault(alpha, 0.4)
	return p.addLayer("density", func(rc *renderContext) error {
		var g table.Grouping = rc.tab
		if p.color != "" {
			g = table.GroupBy(g, p.color)
		}
		res := ggstat.Density{X: posCol}.F(g)
		rc.withData(res, func() {
			fill := rc.fillCol()
			if fill == "" {
				fill = rc.gp.Const(withAlpha(defaultFill, alpha))
			}
			rc.gp.Add(gg.LayerPaths{
				X: posCol, Y: "probability density",
				Color: rc.strokeCol(), Fill: fill,
			})
		})
		return nil
	})
}

// AddDensity2D appends a 2-D kernel density estimate of (x, y) drawn
// as a tile grid.
func (p *Plot) AddDensity2D() *Plot {
	if !p.needY("density 2d") {
		return p
	}
	return p.addLayer("density 2d", func(rc *renderContext) error {
		return rc.drawDensityTiles()
	})
}

// AddHex appends a 2-D binned count of (x, y) drawn as tiles on a
// bins x bins grid (default 20).
func (p *Plot) AddHex(bins int) *Plot {
	if !p.needY("hex") {
		return p
	}
	if bins <= 0 {
		bins = 20
	}
	return p.addLayer("hex", func(rc *renderContext) error {
		return rc.drawBinnedTiles(bins)
	})
}

// AddMeanBar appends per-group bars from zero to the group mean.
// width is the bar width as a fraction of the group slot
// (default 0.6).
func (p *Plot) AddMeanBar(alpha, width float64) *Plot {
	if !p.needY("mean bar") {
		return p
	}
	alpha, width = orDefault(alpha, 1), orDefault(width, 0.6)
	return p.addLayer("mean bar", func(rc *renderContext) error {
		return rc.drawMeanBars(alpha, width)
	})
}

// AddSEMErrorBar appends mean ± standard-error-of-the-mean bars.
// width is the cap width as a fraction of the group slot
// (default 0.2).
func (p *Plot) AddSEMErrorBar(width float64) *Plot {
	return p.summaryErrorBar("sem error bar", errorBarSEM, width, 0)
}

// AddSDErrorBar appends mean ± standard deviation bars.
func (p *Plot) AddSDErrorBar(width float64) *Plot {
	return p.summaryErrorBar("sd error bar", errorBarSD, width, 0)
}

// AddCIErrorBar appends mean ± confidence interval bars. ci is the
// confidence level (default 0.95).
func (p *Plot) AddCIErrorBar(width, ci float64) *Plot {
	if ci == 0 {
		ci = 0.95
	}
	if ci <= 0 || ci >= 1 {
		return p.invalidf("confidence level %v out of range (0, 1)", ci)
	}
	return p.summaryErrorBar("ci error bar", errorBarCI, width, ci)
}

func (p *Plot) summaryErrorBar(name string, kind errorBarKind, width, ci float64) *Plot {
	if !p.needY(name) {
		return p
	}
	width = orDefault(width, 0.2)
	return p.addLayer(name, func(rc *renderContext) error {
		return rc.drawSummaryErrorBars(kind, width, ci)
	})
}

// AddErrorBar appends per-row error bars with explicit bound columns.
func (p *Plot) AddErrorBar(yminCol, ymaxCol string, width float64) *Plot {
	if !p.checkColumns(yminCol, ymaxCol) {
		return p
	}
	width = orDefault(width, 0.2)
	return p.addLayer("error bar", func(rc *renderContext) error {
		return rc.drawColumnErrorBars(yminCol, ymaxCol, width)
	})
}

// AddDataPointsJitter appends the raw points with uniform horizontal
// jitter. width is the jitter spread as a fraction of the group slot
// (default 0.2).
func (p *Plot) AddDataPointsJitter(width, size, alpha float64) *Plot {
	if !p.needY("jittered points") {
		return p
	}
	width = orDefault(width, 0.2)
	size, alpha = orDefault(size, 3), orDefault(alpha, 0.5)
	return p.addLayer("jittered points", func(rc *renderContext) error {
		return rc.drawJitterPoints(width, size, alpha)
	})
}

// AddDataPointsBeeswarm appends the raw points with deterministic
// symmetric offsets, packing points of similar value side by side.
func (p *Plot) AddDataPointsBeeswarm(size, alpha float64) *Plot {
	if !p.needY("beeswarm points") {
		return p
	}
	size, alpha = orDefault(size, 3), orDefault(alpha, 0.5)
	return p.addLayer("beeswarm points", func(rc *renderContext) error {
		return rc.drawBeeswarmPoints(size, alpha)
	})
}

// AddHLine appends a horizontal reference line at y. colorName is a
// CSS color name or #rrggbb hex (default black).
func (p *Plot) AddHLine(y float64, colorName string, alpha float64) *Plot {
	return p.refLine("hline", false, y, colorName, alpha)
}

// AddVLine appends a vertical reference line at x. When the x axis is
// categorical, x is in level-index space.
func (p *Plot) AddVLine(x float64, colorName string, alpha float64) *Plot {
	return p.refLine("vline", true, x, colorName, alpha)
}

func (p *Plot) refLine(name string, vertical bool, v float64, colorName string, alpha float64) *Plot {
	if p.err != nil {
		return p
	}
	if colorName == "" {
		colorName = "black"
	}
	c, err := parseColor(colorName)
	if err != nil {
		return p.fail(err)
	}
	alpha = orDefault(alpha, 1)
	return p.addLayer(name, func(rc *renderContext) error {
		if vertical {
			ylo, yhi, err := rc.yBounds()
			if err != nil {
				return err
			}
			rc.drawRule([]float64{v, v}, []float64{ylo, yhi}, c, alpha)
			return nil
		}
		xlo, xhi := rc.xBounds()
		rc.drawRule([]float64{xlo, xhi}, []float64{v, v}, c, alpha)
		return nil
	})
}

// AddRibbon appends a shaded band between two bound columns.
func (p *Plot) AddRibbon(yminCol, ymaxCol string, alpha float64) *Plot {
	if !p.checkColumns(yminCol, ymaxCol) {
		return p
	}
	alpha = orDefault(alpha, 0.4)
	return p.addLayer("ribbon", func(rc *renderContext) error {
		rc.withData(rc.tab, func() {
			fill := rc.fillCol()
			if fill == "" {
				fill = rc.gp.Const(withAlpha(color.Gray{0xa0}, alpha))
			}
			rc.gp.Add(gg.LayerArea{
				X: posCol, Upper: ymaxCol, Lower: yminCol, Fill: fill,
			})
		})
		return nil
	})
}

// AddRug appends marginal ticks for each data point. sides names the
// plot edges to mark, a string of 'b', 't', 'l', 'r' (default "b").
// length is the tick length as a fraction of the data range
// (default 0.03).
func (p *Plot) AddRug(sides string, length, alpha float64) *Plot {
	if sides == "" {
		sides = "b"
	}
	if strings.Trim(sides, "btlr") != "" {
		return p.invalidf("unknown rug sides %q", sides)
	}
	if p.err != nil {
		return p
	}
	length, alpha = orDefault(length, 0.03), orDefault(alpha, 1)
	return p.addLayer("rug", func(rc *renderContext) error {
		return rc.drawRug(sides, length, alpha)
	})
}

// AddStep appends a step line layer. direction is "hv" (horizontal
// then vertical) or "vh".
func (p *Plot) AddStep(direction string) *Plot {
	var mode gg.StepMode
	switch direction {
	case "hv":
		mode = gg.StepHV
	case "vh":
		mode = gg.StepVH
	default:
		return p.invalidf("unknown step direction %q", direction)
	}
	if !p.needY("step") {
		return p
	}
	return p.addLayer("step "+direction, func(rc *renderContext) error {
		rc.withData(rc.tab, func() {
			rc.gp.Add(gg.LayerSteps{
				LayerPaths: gg.LayerPaths{X: posCol, Y: p.y, Color: rc.strokeCol()},
				Step:       mode,
			})
		})
		return nil
	})
}

// AddCount appends bars counting the rows at each x position. stat is
// "count" or "proportion"; position is "stack" or "dodge".
func (p *Plot) AddCount(stat, position string, alpha float64) *Plot {
	if stat == "" {
		stat = "count"
	}
	if position == "" {
		position = "stack"
	}
	if stat != "count" && stat != "proportion" {
		return p.invalidf("unknown count stat %q", stat)
	}
	if position != "stack" && position != "dodge" {
		return p.invalidf("unknown bar position %q", position)
	}
	if p.err != nil {
		return p
	}
	alpha = orDefault(alpha, 1)
	return p.addLayer("count "+stat+" "+position, func(rc *renderContext) error {
		return rc.drawCountBars(stat, position, alpha)
	})
}

// AddQuantiles appends horizontal rules at the given quantiles of y
// (default the quartiles).
func (p *Plot) AddQuantiles(quantiles []float64) *Plot {
	if quantiles == nil {
		quantiles = []float64{0.25, 0.5, 0.75}
	}
	if !validQuantiles(quantiles) {
		return p.invalidf("quantiles must be in [0, 1]: %v", quantiles)
	}
	if !p.needY("quantiles") {
		return p
	}
	return p.addLayer("quantiles", func(rc *renderContext) error {
		return rc.drawQuantileRules(quantiles)
	})
}

// AddText places label at the data coordinates (x, y). When the x
// axis is categorical, x is in level-index space.
func (p *Plot) AddText(label string, x, y float64) *Plot {
	return p.addAnnotation(label, x, y)
}

func validQuantiles(qs []float64) bool {
	for _, q := range qs {
		if q < 0 || q > 1 {
			return false
		}
	}
	return true
}
