// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
)

// posCol is the synthesized column holding the x position of each
// row. For a numeric x column it mirrors the data; for a categorical
// one it holds the level index.
const posCol = "[tidyplot x pos]"

// SaveOptions is the renderer passthrough for Save: its fields are
// forwarded to the underlying SVG renderer unchanged.
type SaveOptions struct {
	// Width and Height are the rendered size in pixels. Zero
	// values default to 800x600.
	Width, Height int
}

// renderContext carries the state accumulated while applying the
// directive sequence to a fresh go-gg plot.
type renderContext struct {
	p    *Plot
	gp   *gg.Plot
	tab  *table.Table // working table: input columns plus posCol
	x    xAxis
	rng  *rand.Rand
	seq  int // nonce for synthesized column names

	// Set by Scale directives; last writer wins.
	xScaler, yScaler gg.Scaler
	colorScaler      gg.Scaler

	// Set by Theme directives.
	title          string
	xLabel, yLabel string
	hasTitle       bool
	legendPosition string
	axisTextAngle  float64
}

type xAxis struct {
	categorical bool
	levels      []string       // categorical only, sorted
	index       map[string]int // level -> position
	pos         []float64      // per-row x position
	slot        float64        // spacing available around each position
}

// yName returns the column name used for synthesized y-valued
// geometry so that scales and axis labels stay consistent.
func (p *Plot) yName() string {
	if p.y != "" {
		return p.y
	}
	return "count"
}

// Render applies the directive sequence, in order, to a new go-gg
// plot. Scale and theme directives are configuration: among
// themselves the last one for a given setting wins, and they take
// effect before any layer is drawn. Layers and annotations draw in
// append order.
func (p *Plot) Render() (*gg.Plot, error) {
	if p.err != nil {
		return nil, p.err
	}
	rc, err := p.newRenderContext()
	if err != nil {
		return nil, err
	}
	for _, d := range p.directives {
		switch d := d.(type) {
		case *Scale:
			d.apply(rc)
		case *Theme:
			d.apply(rc)
		}
	}
	rc.applyScales()
	rc.applyLabels()
	for _, d := range p.directives {
		switch d := d.(type) {
		case *Layer:
			if err := d.draw(rc); err != nil {
				return nil, err
			}
		case *Annotation:
			rc.annotate(d.Label, d.X, d.Y)
		}
	}
	return rc.gp, nil
}

// Save renders the plot and writes it to path. The output format is
// inferred from the extension; the underlying renderer produces SVG,
// so only ".svg" is accepted. opts may be nil for the default size.
//
// Save does not consume the Plot: saving the same chain to two paths
// writes two identical files.
func (p *Plot) Save(path string, opts *SaveOptions) error {
	if p.err != nil {
		return p.err
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".svg" {
		return fmt.Errorf("unsupported output format %q (want .svg): %w", ext, ErrInvalidArgument)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w, h := 800, 600
	if opts != nil {
		if opts.Width > 0 {
			w = opts.Width
		}
		if opts.Height > 0 {
			h = opts.Height
		}
	}
	return p.WriteSVG(f, w, h)
}

// WriteSVG renders the plot as SVG to w at the given pixel size.
func (p *Plot) WriteSVG(w io.Writer, width, height int) error {
	gp, err := p.Render()
	if err != nil {
		return err
	}
	return gp.WriteSVG(w, width, height)
}

func (p *Plot) newRenderContext() (*renderContext, error) {
	rc := &renderContext{
		p: p,
		// Fixed seed: rendering the same directive sequence
		// twice must produce identical output, jitter included.
		rng: rand.New(rand.NewSource(1)),
	}

	if _, ok := p.data.Column(p.x).([]string); ok {
		labels := p.stringColumn(p.x)
		rc.x.categorical = true
		rc.x.levels, rc.x.index = sortedLevels(labels)
		rc.x.pos = make([]float64, len(labels))
		for i, l := range labels {
			rc.x.pos[i] = float64(rc.x.index[l])
		}
		rc.x.slot = 1
	} else {
		xs, err := p.floatColumn(p.x)
		if err != nil {
			return nil, err
		}
		rc.x.pos = xs
		rc.x.slot = minSpacing(xs)
	}

	rc.tab = table.NewBuilder(p.data).Add(posCol, rc.x.pos).Done()
	rc.gp = gg.NewPlot(rc.tab)
	return rc, nil
}

func (rc *renderContext) applyScales() {
	if rc.xScaler == nil && rc.x.categorical {
		rc.xScaler = levelScaler(rc.x.levels)
	}
	if rc.xScaler != nil {
		rc.gp.SetScale("x", rc.xScaler)
	}
	if rc.yScaler != nil {
		rc.gp.SetScale("y", rc.yScaler)
	}
	if rc.colorScaler != nil && rc.p.color != "" {
		// Synthesized geometry binds the grouping column to
		// fill as well as stroke, so color scales cover both.
		rc.gp.SetScale("stroke", rc.colorScaler)
		rc.gp.SetScale("fill", rc.colorScaler.CloneScaler())
	}
}

// applyLabels sets axis labels and title. The x label is always set
// explicitly so the synthesized position column name never leaks into
// the plot.
func (rc *renderContext) applyLabels() {
	if rc.hasTitle {
		rc.gp.Add(gg.Title(rc.title))
	}
	xl := rc.p.x
	if rc.xLabel != "" {
		xl = rc.xLabel
	}
	rc.gp.Add(gg.AxisLabel("x", xl))
	yl := rc.p.yName()
	if rc.yLabel != "" {
		yl = rc.yLabel
	}
	rc.gp.Add(gg.AxisLabel("y", yl))
}

// strokeCol returns the column bound to the stroke channel of line
// and point layers, or "".
func (rc *renderContext) strokeCol() string {
	if rc.p.y == "" {
		return ""
	}
	return rc.p.color
}

// fillCol returns the column bound to the fill channel of area
// layers, or "".
func (rc *renderContext) fillCol() string {
	if rc.p.y != "" {
		return ""
	}
	return rc.p.color
}

// withData runs f with the plot's data swapped to g, restoring the
// working table afterwards. Scales persist across the swap, so all
// layers train the same axes.
func (rc *renderContext) withData(g table.Grouping, f func()) {
	rc.gp.Save()
	rc.gp.SetData(g)
	f()
	rc.gp.Restore()
}

// col returns a unique synthesized column name.
func (rc *renderContext) col(kind string) string {
	rc.seq++
	return fmt.Sprintf("[tidyplot %s %d]", kind, rc.seq)
}

// constOpacity returns a constant column mapping to the given opacity
// through the default opacity ranger.
func (rc *renderContext) constOpacity(alpha float64) string {
	return rc.gp.Const(gg.Unscaled(unrange(alpha, 0.1, 1)))
}

// constSize returns a constant column mapping to a point radius of
// roughly pts pixels on the default 600px panel through the default
// size ranger.
func (rc *renderContext) constSize(pts float64) string {
	return rc.gp.Const(gg.Unscaled(unrange(pts/600, 0.01, 0.1)))
}

// unrange inverts a linear ranger [lo, hi] so that an Unscaled value
// maps back to v.
func unrange(v, lo, hi float64) float64 {
	u := (v - lo) / (hi - lo)
	return math.Max(0, math.Min(1, u))
}

// annotate places label at the data coordinates (x, y).
func (rc *renderContext) annotate(label string, x, y float64) {
	yn := rc.p.yName()
	tb := new(table.Builder).
		Add(posCol, []float64{x}).
		Add(yn, []float64{y}).
		Add("[tidyplot label]", []string{label})
	rc.withData(tb.Done(), func() {
		rc.gp.Add(gg.LayerTags{X: posCol, Y: yn, Label: "[tidyplot label]"})
	})
}

// levelScaler returns the x scaler for a categorical axis: linear
// over level indices, padded half a slot on each side, with tick
// labels mapped back to level names.
func levelScaler(levels []string) gg.Scaler {
	s := gg.NewLinearScaler()
	s.Include(-0.5)
	s.Include(float64(len(levels)-1) + 0.5)
	s.SetFormatter(func(x float64) string {
		i := int(math.Round(x))
		if math.Abs(x-float64(i)) > 1e-6 || i < 0 || i >= len(levels) {
			return ""
		}
		return levels[i]
	})
	return s
}

func sortedLevels(labels []string) ([]string, map[string]int) {
	index := make(map[string]int)
	var levels []string
	for _, l := range labels {
		if _, ok := index[l]; !ok {
			index[l] = 0
			levels = append(levels, l)
		}
	}
	sort.Strings(levels)
	for i, l := range levels {
		index[l] = i
	}
	return levels, index
}

// minSpacing returns the smallest gap between distinct values,
// defaulting to 1. It bounds the width of synthesized bars and boxes
// on a numeric axis.
func minSpacing(xs []float64) float64 {
	u := append([]float64(nil), xs...)
	sort.Float64s(u)
	gap := math.NaN()
	for i := 1; i < len(u); i++ {
		d := u[i] - u[i-1]
		if d > 0 && (math.IsNaN(gap) || d < gap) {
			gap = d
		}
	}
	if math.IsNaN(gap) {
		return 1
	}
	return gap
}
