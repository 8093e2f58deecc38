// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"fmt"
	"math"
	"reflect"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/table"
)

// transformScale is a continuous scale in transformed space: domain
// values pass through fwd before training and mapping, and tick
// labels are reported in data space through inv.
type transformScale struct {
	s        gg.ContinuousScaler
	fwd, inv func(float64) float64
	fmtr     func(float64) string
}

var _ gg.Scaler = (*transformScale)(nil)

func newTransformScale(fwd, inv func(float64) float64) *transformScale {
	t := &transformScale{s: gg.NewLinearScaler(), fwd: fwd, inv: inv}
	t.s.SetFormatter(func(x float64) string {
		v := t.inv(x)
		if t.fmtr != nil {
			return t.fmtr(v)
		}
		return fmt.Sprintf("%.6g", v)
	})
	return t
}

func (t *transformScale) ExpandDomain(v table.Slice) {
	var xs []float64
	slice.Convert(&xs, v)
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if y := t.fwd(x); !math.IsNaN(y) && !math.IsInf(y, 0) {
			out = append(out, y)
		}
	}
	t.s.ExpandDomain(out)
}

func (t *transformScale) Ranger(r gg.Ranger) gg.Ranger {
	return t.s.Ranger(r)
}

func (t *transformScale) RangeType() reflect.Type {
	return t.s.RangeType()
}

func (t *transformScale) Map(x interface{}) interface{} {
	if _, ok := x.(gg.Unscaled); ok {
		return t.s.Map(x)
	}
	v := reflect.ValueOf(x).Convert(reflect.TypeOf(float64(0))).Float()
	return t.s.Map(t.fwd(v))
}

func (t *transformScale) Ticks(max int, pred func(major, minor table.Slice, labels []string) bool) (major, minor table.Slice, labels []string) {
	return t.s.Ticks(max, pred)
}

// SetFormatter accepts a func(float64) string applied to values in
// data space (after the inverse transform).
func (t *transformScale) SetFormatter(f interface{}) {
	if f == nil {
		t.fmtr = nil
		return
	}
	t.fmtr = f.(func(float64) string)
}

func (t *transformScale) CloneScaler() gg.Scaler {
	t2 := &transformScale{
		s:    t.s.CloneScaler().(gg.ContinuousScaler),
		fwd:  t.fwd,
		inv:  t.inv,
		fmtr: t.fmtr,
	}
	return t2
}

var (
	log10Fwd = math.Log10
	log10Inv = func(x float64) float64 { return math.Pow(10, x) }
	sqrtFwd  = math.Sqrt
	sqrtInv  = func(x float64) float64 { return x * x }
	negate   = func(x float64) float64 { return -x }
)

func (p *Plot) scaleX(name string, fwd, inv func(float64) float64) *Plot {
	return p.addScale(name, func(rc *renderContext) {
		rc.xScaler = newTransformScale(fwd, inv)
	})
}

func (p *Plot) scaleY(name string, fwd, inv func(float64) float64) *Plot {
	return p.addScale(name, func(rc *renderContext) {
		rc.yScaler = newTransformScale(fwd, inv)
	})
}

// ScaleXLog10 draws the x axis on a log10 scale. Non-positive values
// do not train the axis.
func (p *Plot) ScaleXLog10() *Plot { return p.scaleX("scale x log10", log10Fwd, log10Inv) }

// ScaleYLog10 draws the y axis on a log10 scale.
func (p *Plot) ScaleYLog10() *Plot { return p.scaleY("scale y log10", log10Fwd, log10Inv) }

// ScaleXSqrt draws the x axis on a square-root scale.
func (p *Plot) ScaleXSqrt() *Plot { return p.scaleX("scale x sqrt", sqrtFwd, sqrtInv) }

// ScaleYSqrt draws the y axis on a square-root scale.
func (p *Plot) ScaleYSqrt() *Plot { return p.scaleY("scale y sqrt", sqrtFwd, sqrtInv) }

// ScaleXReverse reverses the x axis.
func (p *Plot) ScaleXReverse() *Plot { return p.scaleX("scale x reverse", negate, negate) }

// ScaleYReverse reverses the y axis.
func (p *Plot) ScaleYReverse() *Plot { return p.scaleY("scale y reverse", negate, negate) }

// ScaleColorGradient colors the grouping channel with a two-color
// gradient from low to high. Colors are CSS names or #rrggbb hex.
func (p *Plot) ScaleColorGradient(low, high string) *Plot {
	return p.colorGradient("scale color gradient", low, "", high)
}

// ScaleColorGradient2 colors the grouping channel with a diverging
// three-color gradient.
func (p *Plot) ScaleColorGradient2(low, mid, high string) *Plot {
	return p.colorGradient("scale color gradient2", low, mid, high)
}

func (p *Plot) colorGradient(name, low, mid, high string) *Plot {
	if p.err != nil {
		return p
	}
	g := palette.RGBGradient{}
	for _, s := range []string{low, mid, high} {
		if s == "" {
			continue
		}
		c, err := parseColor(s)
		if err != nil {
			return p.fail(err)
		}
		g.Colors = append(g.Colors, c)
	}
	return p.addScale(name, func(rc *renderContext) {
		s := gg.NewLinearScaler()
		s.Ranger(gradientRanger{g})
		rc.colorScaler = s
	})
}
