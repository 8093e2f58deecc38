// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// go-gg draws points, paths, areas, and tiles. Everything else here
// (boxes, violins, bars, error bars, counts, 2-D bins) is synthesized
// from those primitives: each shape becomes its own small table in a
// grouping so the path mark draws it independently.

// defaultFill is used by synthesized filled geometry when no grouping
// column is mapped.
var defaultFill = color.RGBA{0x4c, 0x72, 0xb0, 0xff}

// sampleGroup is one (x position, group level) cell of the data.
type sampleGroup struct {
	x     float64
	level string
	li, n int // level index and level count, for dodging
	ys    []float64
}

// dodge returns the center and half-width of the slot share a group
// occupies: groups at the same x position split a slot of the given
// fractional width side by side.
func (g sampleGroup) dodge(width, slot float64) (cx, hw float64) {
	total := width * slot
	if g.n <= 1 {
		return g.x, total / 2
	}
	sub := total / float64(g.n)
	cx = g.x + (float64(g.li)-float64(g.n-1)/2)*sub
	return cx, sub * 0.45
}

// collect splits the rows into sampleGroups by x position and group
// level. With withY false the y column is not read and each group's
// ys records only the row count.
func (rc *renderContext) collect(withY bool) ([]sampleGroup, error) {
	var ys []float64
	var err error
	if withY {
		ys, err = rc.p.floatColumn(rc.p.y)
		if err != nil {
			return nil, err
		}
	}

	var colors []string
	var levels []string
	index := map[string]int{}
	if rc.p.color != "" {
		colors = rc.p.stringColumn(rc.p.color)
		levels, index = sortedLevels(colors)
	}
	nLevels := len(levels)
	if nLevels == 0 {
		nLevels = 1
	}

	type key struct {
		x  float64
		li int
	}
	byKey := map[key]*sampleGroup{}
	var out []*sampleGroup
	for i, x := range rc.x.pos {
		li, level := 0, ""
		if colors != nil {
			level = colors[i]
			li = index[level]
		}
		k := key{x, li}
		g := byKey[k]
		if g == nil {
			g = &sampleGroup{x: x, level: level, li: li, n: nLevels}
			byKey[k] = g
			out = append(out, g)
		}
		y := 0.0
		if withY {
			y = ys[i]
		}
		g.ys = append(g.ys, y)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].x != out[j].x {
			return out[i].x < out[j].x
		}
		return out[i].li < out[j].li
	})
	gs := make([]sampleGroup, len(out))
	for i, g := range out {
		gs[i] = *g
	}
	return gs, nil
}

// shapeSet accumulates synthesized shapes, one table per shape. When
// a grouping column is mapped, each shape carries it as a constant
// column so color scales apply.
type shapeSet struct {
	p    *Plot
	yCol string
	gb   table.GroupingBuilder
	n    int
}

func (rc *renderContext) newShapeSet() *shapeSet {
	return &shapeSet{p: rc.p, yCol: rc.p.yName()}
}

func (s *shapeSet) add(level string, xs, ys []float64) {
	b := new(table.Builder).Add(posCol, xs).Add(s.yCol, ys)
	if s.p.color != "" {
		b.AddConst(s.p.color, level)
	}
	s.gb.Add(table.RootGroupID.Extend(s.n), b.Done())
	s.n++
}

func (s *shapeSet) empty() bool { return s.n == 0 }

// addFills draws the accumulated shapes as filled polygons.
func (s *shapeSet) addFills(rc *renderContext, alpha float64) {
	if s.empty() {
		return
	}
	rc.withData(s.gb.Done(), func() {
		fill := s.p.color
		if fill == "" {
			fill = rc.gp.Const(withAlpha(defaultFill, alpha))
		}
		rc.gp.Add(gg.LayerPaths{X: posCol, Y: s.yCol, Fill: fill})
	})
}

// addStrokes draws the accumulated shapes as stroked paths.
func (s *shapeSet) addStrokes(rc *renderContext) {
	if s.empty() {
		return
	}
	rc.withData(s.gb.Done(), func() {
		rc.gp.Add(gg.LayerPaths{X: posCol, Y: s.yCol, Color: s.p.color})
	})
}

// fiveNum is the boxplot summary of one group.
type fiveNum struct {
	q1, med, q3      float64
	whiskLo, whiskHi float64
	outliers         []float64
}

func summarize(ys []float64) fiveNum {
	smp := stats.Sample{Xs: append([]float64(nil), ys...)}
	smp.Sort()
	f := fiveNum{
		q1:  smp.Quantile(0.25),
		med: smp.Quantile(0.5),
		q3:  smp.Quantile(0.75),
	}
	iqr := f.q3 - f.q1
	loFence, hiFence := f.q1-1.5*iqr, f.q3+1.5*iqr
	f.whiskLo, f.whiskHi = f.q3, f.q1
	for _, y := range smp.Xs {
		if y < loFence || y > hiFence {
			f.outliers = append(f.outliers, y)
			continue
		}
		if y < f.whiskLo {
			f.whiskLo = y
		}
		if y > f.whiskHi {
			f.whiskHi = y
		}
	}
	return f
}

func (rc *renderContext) drawBoxplots(alpha, outlierAlpha float64) error {
	groups, err := rc.collect(true)
	if err != nil {
		return err
	}
	fills, strokes := rc.newShapeSet(), rc.newShapeSet()
	var oxs, oys []float64
	var olvls []string
	for _, g := range groups {
		f := summarize(g.ys)
		cx, hw := g.dodge(0.6, rc.x.slot)
		fills.add(g.level,
			[]float64{cx - hw, cx + hw, cx + hw, cx - hw},
			[]float64{f.q1, f.q1, f.q3, f.q3})
		strokes.add(g.level, []float64{cx - hw, cx + hw}, []float64{f.med, f.med})
		strokes.add(g.level, []float64{cx, cx}, []float64{f.q3, f.whiskHi})
		strokes.add(g.level, []float64{cx, cx}, []float64{f.q1, f.whiskLo})
		for _, y := range f.outliers {
			oxs = append(oxs, cx)
			oys = append(oys, y)
			olvls = append(olvls, g.level)
		}
	}
	fills.addFills(rc, alpha)
	strokes.addStrokes(rc)
	if len(oxs) > 0 {
		rc.drawPointTable(oxs, oys, olvls, 1.5, outlierAlpha)
	}
	return nil
}

func (rc *renderContext) drawViolins(alpha float64, quantiles []float64) error {
	groups, err := rc.collect(true)
	if err != nil {
		return err
	}
	fills, strokes := rc.newShapeSet(), rc.newShapeSet()
	for _, g := range groups {
		if len(g.ys) < 2 {
			continue
		}
		smp := stats.Sample{Xs: append([]float64(nil), g.ys...)}
		smp.Sort()
		kde := stats.KDE{Sample: smp}
		lo, hi := smp.Bounds()
		if lo == hi {
			continue
		}
		cx, hw := g.dodge(0.8, rc.x.slot)
		grid := vec.Linspace(lo, hi, 48)
		pdf := vec.Map(kde.PDF, grid)
		_, maxPDF := stats.Bounds(pdf)
		if maxPDF <= 0 {
			continue
		}
		// Mirrored outline: up the right side, down the left.
		xs := make([]float64, 0, 2*len(grid))
		ys := make([]float64, 0, 2*len(grid))
		for i, y := range grid {
			xs = append(xs, cx+hw*pdf[i]/maxPDF)
			ys = append(ys, y)
		}
		for i := len(grid) - 1; i >= 0; i-- {
			xs = append(xs, cx-hw*pdf[i]/maxPDF)
			ys = append(ys, grid[i])
		}
		fills.add(g.level, xs, ys)
		for _, q := range quantiles {
			yq := smp.Quantile(q)
			wq := hw * kde.PDF(yq) / maxPDF
			strokes.add(g.level, []float64{cx - wq, cx + wq}, []float64{yq, yq})
		}
	}
	fills.addFills(rc, alpha)
	strokes.addStrokes(rc)
	return nil
}

func (rc *renderContext) drawMeanBars(alpha, width float64) error {
	groups, err := rc.collect(true)
	if err != nil {
		return err
	}
	fills := rc.newShapeSet()
	for _, g := range groups {
		mean := stats.Sample{Xs: g.ys}.Mean()
		cx, hw := g.dodge(width, rc.x.slot)
		fills.add(g.level,
			[]float64{cx - hw, cx + hw, cx + hw, cx - hw},
			[]float64{0, 0, mean, mean})
	}
	fills.addFills(rc, alpha)
	return nil
}

// errorBarKind selects the dispersion statistic of a summary error
// bar layer.
type errorBarKind int

const (
	errorBarSEM errorBarKind = iota
	errorBarSD
	errorBarCI
)

func (rc *renderContext) drawSummaryErrorBars(kind errorBarKind, width, ci float64) error {
	groups, err := rc.collect(true)
	if err != nil {
		return err
	}
	strokes := rc.newShapeSet()
	for _, g := range groups {
		if len(g.ys) < 2 {
			// The dispersion of one point is undefined.
			continue
		}
		smp := stats.Sample{Xs: g.ys}
		mean, sd := smp.Mean(), smp.StdDev()
		n := float64(len(g.ys))
		var delta float64
		switch kind {
		case errorBarSEM:
			delta = sd / math.Sqrt(n)
		case errorBarSD:
			delta = sd
		case errorBarCI:
			z := stats.NormalDist{Mu: 0, Sigma: 1}.InvCDF(0.5 + ci/2)
			delta = z * sd / math.Sqrt(n)
		}
		cx, _ := g.dodge(0.6, rc.x.slot)
		capHW := width * rc.x.slot / 2 / float64(g.n)
		strokes.add(g.level, iBeamXs(cx, capHW), iBeamYs(mean-delta, mean+delta))
	}
	strokes.addStrokes(rc)
	return nil
}

func (rc *renderContext) drawColumnErrorBars(yminCol, ymaxCol string, width float64) error {
	los, err := rc.p.floatColumn(yminCol)
	if err != nil {
		return err
	}
	his, err := rc.p.floatColumn(ymaxCol)
	if err != nil {
		return err
	}
	var lvls []string
	if rc.p.color != "" {
		lvls = rc.p.stringColumn(rc.p.color)
	}
	strokes := rc.newShapeSet()
	capHW := width * rc.x.slot / 2
	for i, x := range rc.x.pos {
		level := ""
		if lvls != nil {
			level = lvls[i]
		}
		strokes.add(level, iBeamXs(x, capHW), iBeamYs(los[i], his[i]))
	}
	strokes.addStrokes(rc)
	return nil
}

// iBeamXs and iBeamYs trace the classic error bar as a single path:
// top cap, vertical rule, bottom cap, with the cap-to-rule moves
// retracing segments already drawn.
func iBeamXs(cx, hw float64) []float64 {
	return []float64{cx - hw, cx + hw, cx, cx, cx - hw, cx + hw}
}

func iBeamYs(lo, hi float64) []float64 {
	return []float64{hi, hi, hi, lo, lo, lo}
}

func (rc *renderContext) drawCountBars(stat, position string, alpha float64) error {
	groups, err := rc.collect(false)
	if err != nil {
		return err
	}
	totals := map[float64]float64{}
	for _, g := range groups {
		totals[g.x] += float64(len(g.ys))
	}
	fills := rc.newShapeSet()
	base := map[float64]float64{}
	for _, g := range groups {
		v := float64(len(g.ys))
		if stat == "proportion" {
			v /= totals[g.x]
		}
		var cx, hw, y0 float64
		if position == "dodge" {
			cx, hw = g.dodge(0.7, rc.x.slot)
		} else {
			cx, hw = g.x, 0.7*rc.x.slot/2
			y0 = base[g.x]
			base[g.x] += v
		}
		fills.add(g.level,
			[]float64{cx - hw, cx + hw, cx + hw, cx - hw},
			[]float64{y0, y0, y0 + v, y0 + v})
	}
	fills.addFills(rc, alpha)
	return nil
}

// drawBinnedTiles bins (x, y) on a bins x bins grid and draws the
// non-empty cells as tiles filled by count.
func (rc *renderContext) drawBinnedTiles(bins int) error {
	ys, err := rc.p.floatColumn(rc.p.y)
	if err != nil {
		return err
	}
	xmin, xmax := stats.Bounds(rc.x.pos)
	ymin, ymax := stats.Bounds(ys)
	if xmin == xmax || ymin == ymax {
		Warning.Print("degenerate data range; skipping binned layer")
		return nil
	}
	dx, dy := (xmax-xmin)/float64(bins), (ymax-ymin)/float64(bins)
	counts := map[[2]int]float64{}
	for i, x := range rc.x.pos {
		bx := int((x - xmin) / dx)
		if bx == bins {
			bx--
		}
		by := int((ys[i] - ymin) / dy)
		if by == bins {
			by--
		}
		counts[[2]int{bx, by}]++
	}
	var txs, tys, tfs []float64
	for b, c := range counts {
		txs = append(txs, xmin+(float64(b[0])+0.5)*dx)
		tys = append(tys, ymin+(float64(b[1])+0.5)*dy)
		tfs = append(tfs, c)
	}
	rc.drawTiles(txs, tys, tfs, "count")
	return nil
}

// drawDensityTiles evaluates a product-kernel Gaussian KDE of (x, y)
// on a grid and draws the cells above 1% of the peak as tiles.
func (rc *renderContext) drawDensityTiles() error {
	ys, err := rc.p.floatColumn(rc.p.y)
	if err != nil {
		return err
	}
	xs := rc.x.pos
	if len(xs) < 2 {
		Warning.Print("too few points for a 2-D density; skipping layer")
		return nil
	}
	xsmp := stats.Sample{Xs: append([]float64(nil), xs...)}
	ysmp := stats.Sample{Xs: append([]float64(nil), ys...)}
	xsmp.Sort()
	ysmp.Sort()
	bwx, bwy := stats.BandwidthScott(xsmp), stats.BandwidthScott(ysmp)
	if bwx <= 0 || bwy <= 0 {
		Warning.Print("degenerate data range; skipping 2-D density layer")
		return nil
	}
	xmin, xmax := xsmp.Bounds()
	ymin, ymax := ysmp.Bounds()

	const n = 40
	gx := vec.Linspace(xmin-2*bwx, xmax+2*bwx, n)
	gy := vec.Linspace(ymin-2*bwy, ymax+2*bwy, n)
	dens := make([]float64, n*n)
	norm := 1 / (2 * math.Pi * bwx * bwy * float64(len(xs)))
	maxD := 0.0
	for i, cx := range gx {
		for j, cy := range gy {
			d := 0.0
			for k := range xs {
				u := (cx - xs[k]) / bwx
				v := (cy - ys[k]) / bwy
				d += math.Exp(-(u*u + v*v) / 2)
			}
			d *= norm
			dens[i*n+j] = d
			if d > maxD {
				maxD = d
			}
		}
	}
	var txs, tys, tds []float64
	for i, cx := range gx {
		for j, cy := range gy {
			if d := dens[i*n+j]; d > maxD/100 {
				txs = append(txs, cx)
				tys = append(tys, cy)
				tds = append(tds, d)
			}
		}
	}
	rc.drawTiles(txs, tys, tds, "density")
	return nil
}

func (rc *renderContext) drawTiles(xs, ys, fill []float64, fillName string) {
	if len(xs) == 0 {
		return
	}
	fc := rc.col(fillName)
	tb := new(table.Builder).
		Add(posCol, xs).
		Add(rc.p.yName(), ys).
		Add(fc, fill)
	rc.withData(tb.Done(), func() {
		rc.gp.Add(gg.LayerTiles{X: posCol, Y: rc.p.yName(), Fill: fc})
	})
}

// drawPointTable draws loose points with per-point group levels.
func (rc *renderContext) drawPointTable(xs, ys []float64, lvls []string, size, alpha float64) {
	b := new(table.Builder).Add(posCol, xs).Add(rc.p.yName(), ys)
	stroke := ""
	if rc.p.color != "" && lvls != nil {
		b.Add(rc.p.color, lvls)
		stroke = rc.p.color
	}
	rc.withData(b.Done(), func() {
		rc.gp.Add(gg.LayerPoints{
			X: posCol, Y: rc.p.yName(), Color: stroke,
			Opacity: rc.constOpacity(alpha),
			Size:    rc.constSize(size),
		})
	})
}

func (rc *renderContext) drawJitterPoints(width, size, alpha float64) error {
	ys, err := rc.p.floatColumn(rc.p.y)
	if err != nil {
		return err
	}
	xs := make([]float64, len(rc.x.pos))
	half := width * rc.x.slot / 2
	for i, x := range rc.x.pos {
		xs[i] = x + (rc.rng.Float64()*2-1)*half
	}
	rc.drawPointTable(xs, ys, rc.levelColumn(), size, alpha)
	return nil
}

func (rc *renderContext) drawBeeswarmPoints(size, alpha float64) error {
	groups, err := rc.collect(true)
	if err != nil {
		return err
	}
	var xs, ys []float64
	var lvls []string
	step := rc.x.slot * 0.04
	for _, g := range groups {
		cx, _ := g.dodge(0.8, rc.x.slot)
		lo, hi := stats.Bounds(g.ys)
		binH := (hi - lo) / 25
		sorted := append([]float64(nil), g.ys...)
		sort.Float64s(sorted)
		bin, inBin := math.Inf(-1), 0
		for _, y := range sorted {
			if binH > 0 && y >= bin+binH {
				bin = lo + math.Floor((y-lo)/binH)*binH
				inBin = 0
			}
			// 0, +d, -d, +2d, -2d, ...
			off := step * float64((inBin+1)/2)
			if inBin%2 == 0 {
				off = -off
			}
			inBin++
			xs = append(xs, cx+off)
			ys = append(ys, y)
			lvls = append(lvls, g.level)
		}
	}
	rc.drawPointTable(xs, ys, lvls, size, alpha)
	return nil
}

// levelColumn returns the per-row group levels, or nil when no
// grouping column is mapped.
func (rc *renderContext) levelColumn() []string {
	if rc.p.color == "" {
		return nil
	}
	return rc.p.stringColumn(rc.p.color)
}

func (rc *renderContext) xBounds() (lo, hi float64) {
	lo, hi = stats.Bounds(rc.x.pos)
	return lo - rc.x.slot/2, hi + rc.x.slot/2
}

func (rc *renderContext) yBounds() (lo, hi float64, err error) {
	if rc.p.y == "" {
		return 0, 1, nil
	}
	ys, err := rc.p.floatColumn(rc.p.y)
	if err != nil {
		return 0, 0, err
	}
	lo, hi = stats.Bounds(ys)
	return lo, hi, nil
}

// drawRule draws one reference line as a 2-point path.
func (rc *renderContext) drawRule(xs, ys []float64, c color.Color, alpha float64) {
	yn := rc.p.yName()
	tb := new(table.Builder).Add(posCol, xs).Add(yn, ys)
	rc.withData(tb.Done(), func() {
		rc.gp.Add(gg.LayerPaths{
			X: posCol, Y: yn,
			Color: rc.gp.Const(withAlpha(c, alpha)),
		})
	})
}

func (rc *renderContext) drawQuantileRules(quantiles []float64) error {
	ys, err := rc.p.floatColumn(rc.p.y)
	if err != nil {
		return err
	}
	smp := stats.Sample{Xs: append([]float64(nil), ys...)}
	smp.Sort()
	xlo, xhi := rc.xBounds()
	for _, q := range quantiles {
		yq := smp.Quantile(q)
		rc.drawRule([]float64{xlo, xhi}, []float64{yq, yq}, color.Gray{0x40}, 1)
	}
	return nil
}

func (rc *renderContext) drawRug(sides string, length, alpha float64) error {
	xlo, xhi := rc.xBounds()
	ylo, yhi, err := rc.yBounds()
	if err != nil {
		return err
	}
	var ys []float64
	if rc.p.y != "" {
		ys, _ = rc.p.floatColumn(rc.p.y)
	}
	strokes := rc.newShapeSet()
	lvls := rc.levelColumn()
	tickY := length * (yhi - ylo)
	tickX := length * (xhi - xlo)
	for i, x := range rc.x.pos {
		level := ""
		if lvls != nil {
			level = lvls[i]
		}
		for _, side := range sides {
			switch side {
			case 'b':
				strokes.add(level, []float64{x, x}, []float64{ylo, ylo + tickY})
			case 't':
				strokes.add(level, []float64{x, x}, []float64{yhi - tickY, yhi})
			case 'l', 'r':
				if ys == nil {
					continue
				}
				if side == 'l' {
					strokes.add(level, []float64{xlo, xlo + tickX}, []float64{ys[i], ys[i]})
				} else {
					strokes.add(level, []float64{xhi - tickX, xhi}, []float64{ys[i], ys[i]})
				}
			}
		}
	}
	strokes.addStrokes(rc)
	return nil
}
