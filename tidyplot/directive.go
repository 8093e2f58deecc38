// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import "fmt"

// DirectiveKind tags the variants of a Directive.
type DirectiveKind int

const (
	// KindLayer is a geometric or statistical layer.
	KindLayer DirectiveKind = iota

	// KindScale is an axis transform or color scale.
	KindScale

	// KindTheme is a cosmetic adjustment (labels, legend
	// placement, axis text).
	KindTheme

	// KindAnnotation is text placed at data coordinates.
	KindAnnotation
)

func (k DirectiveKind) String() string {
	switch k {
	case KindLayer:
		return "layer"
	case KindScale:
		return "scale"
	case KindTheme:
		return "theme"
	case KindAnnotation:
		return "annotation"
	}
	return fmt.Sprintf("DirectiveKind(%d)", int(k))
}

// A Directive is one element of the accumulated plot expression. The
// render step applies directives in append order: scale and theme
// directives configure the plot (later ones override earlier ones),
// then layers and annotations draw in sequence.
type Directive interface {
	Kind() DirectiveKind
	String() string
}

// Layer draws one geometry or statistical transform.
type Layer struct {
	name string
	draw func(*renderContext) error
}

func (l *Layer) Kind() DirectiveKind { return KindLayer }
func (l *Layer) String() string      { return l.name }

// Scale configures an axis transform or color scale.
type Scale struct {
	name  string
	apply func(*renderContext)
}

func (s *Scale) Kind() DirectiveKind { return KindScale }
func (s *Scale) String() string      { return s.name }

// Theme adjusts plot cosmetics.
type Theme struct {
	name  string
	apply func(*renderContext)
}

func (t *Theme) Kind() DirectiveKind { return KindTheme }
func (t *Theme) String() string      { return t.name }

// Annotation places Label at the data coordinates (X, Y). When the x
// axis is categorical, X is in level-index space (the first level is
// at 0).
type Annotation struct {
	Label string
	X, Y  float64
}

func (a *Annotation) Kind() DirectiveKind { return KindAnnotation }
func (a *Annotation) String() string      { return fmt.Sprintf("text %q", a.Label) }
