// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tidyplot provides a fluent, method-chaining interface for
// building statistical charts on top of go-gg.
//
// A Plot is constructed from a table.Grouping and an aesthetic mapping
// (an x column, an optional y column, and an optional grouping
// column). Each Add* method appends one geometric or statistical layer
// and each Adjust*/Scale* method appends one cosmetic directive; all
// of them return the Plot so calls can be chained:
//
//	tp := tidyplot.New(tab, "dose", "response", "treatment")
//	err := tp.AddViolin(0.4, nil).
//		AddDataPointsJitter(0.2, 3, 0.5).
//		AddTestPValue("t", "%.3f").
//		AdjustLabels("Response by dose", "", "").
//		Save("response.svg", nil)
//
// Directives accumulate in an ordered list and are only applied to a
// go-gg plot when Render, Save, or WriteSVG is called. Methods record
// the first error encountered and turn subsequent calls into no-ops;
// the terminal methods (and Err) report it. A Plot is intended for a
// single call chain on a single goroutine; it performs no internal
// locking. The input table is never modified.
package tidyplot

import (
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Warning is a logger for reporting conditions that don't prevent the
// production of a plot, but may lead to unexpected results.
var Warning = log.New(os.Stderr, "[tidyplot] ", log.Lshortfile)

// ErrInvalidArgument is wrapped by all errors resulting from
// unrecognized enumerated parameter values (test kinds, correlation
// methods, legend positions, palette names, and the like).
var ErrInvalidArgument = errors.New("invalid argument")

// Plot accumulates a plot expression over a data table.
//
// The zero Plot is not usable; construct one with New.
type Plot struct {
	data *table.Table

	// Aesthetic mapping, fixed at construction.
	x, y, color string

	directives []Directive
	err        error
}

// New returns a Plot over data with the given aesthetic mapping. The
// x column is required; y and color may be "" to leave those channels
// unmapped. If data is grouped, the groups are flattened; layer
// grouping is controlled by the color column instead.
//
// When y is mapped, the color column binds the stroke channel of each
// layer. When y is unmapped (count and density plots), it binds the
// fill channel.
//
// New validates that the mapped columns exist; a missing column is
// recorded as the Plot's error.
func New(data table.Grouping, x, y, color string) *Plot {
	p := &Plot{data: table.Flatten(data), x: x, y: y, color: color}
	if x == "" {
		return p.fail(fmt.Errorf("x column name is required: %w", ErrInvalidArgument))
	}
	for _, col := range []string{x, y, color} {
		if col != "" && p.data.Column(col) == nil {
			return p.fail(fmt.Errorf("unknown column %q", col))
		}
	}
	return p
}

// Show returns a copy of the in-progress directive sequence. The
// returned slice is not affected by further chained calls.
func (p *Plot) Show() []Directive {
	return append([]Directive(nil), p.directives...)
}

// Err returns the first error recorded by the call chain, or nil.
func (p *Plot) Err() error {
	return p.err
}

// fail records err as the Plot's sticky error. Once a Plot has failed,
// every later chained call is a no-op and appends nothing.
func (p *Plot) fail(err error) *Plot {
	if p.err == nil {
		p.err = err
	}
	return p
}

func (p *Plot) invalidf(format string, args ...interface{}) *Plot {
	return p.fail(fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...))
}

// checkColumns validates layer-specific column references (error bar
// and ribbon bounds) against the data table.
func (p *Plot) checkColumns(cols ...string) bool {
	if p.err != nil {
		return false
	}
	for _, col := range cols {
		if p.data.Column(col) == nil {
			p.fail(fmt.Errorf("unknown column %q", col))
			return false
		}
	}
	return true
}

// needY fails the chain if the layer being appended requires a y
// mapping that was not provided at construction.
func (p *Plot) needY(layer string) bool {
	if p.err != nil {
		return false
	}
	if p.y == "" {
		p.fail(fmt.Errorf("%s requires a y mapping", layer))
		return false
	}
	return true
}

func (p *Plot) addLayer(name string, draw func(*renderContext) error) *Plot {
	if p.err != nil {
		return p
	}
	p.directives = append(p.directives, &Layer{name: name, draw: draw})
	return p
}

func (p *Plot) addScale(name string, apply func(*renderContext)) *Plot {
	if p.err != nil {
		return p
	}
	p.directives = append(p.directives, &Scale{name: name, apply: apply})
	return p
}

func (p *Plot) addTheme(name string, apply func(*renderContext)) *Plot {
	if p.err != nil {
		return p
	}
	p.directives = append(p.directives, &Theme{name: name, apply: apply})
	return p
}

func (p *Plot) addAnnotation(label string, x, y float64) *Plot {
	if p.err != nil {
		return p
	}
	p.directives = append(p.directives, &Annotation{Label: label, X: x, Y: y})
	return p
}

// floatColumn extracts col as []float64. Non-numeric columns are a
// delegated error: the statistics and geometry synthesis need
// cardinal values.
func (p *Plot) floatColumn(col string) ([]float64, error) {
	v := p.data.Column(col)
	if v == nil {
		return nil, fmt.Errorf("unknown column %q", col)
	}
	if !isCardinalSlice(v) {
		return nil, fmt.Errorf("column %q is not numeric (%T)", col, v)
	}
	var xs []float64
	slice.Convert(&xs, v)
	return xs, nil
}

// stringColumn extracts col as group labels, formatting non-string
// values with %v.
func (p *Plot) stringColumn(col string) []string {
	v := p.data.Column(col)
	if ss, ok := v.([]string); ok {
		return ss
	}
	rv := reflect.ValueOf(v)
	ss := make([]string, rv.Len())
	for i := range ss {
		ss[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return ss
}

func isCardinalSlice(v table.Slice) bool {
	switch reflect.TypeOf(v).Elem().Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uintptr, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
