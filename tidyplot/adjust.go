// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"sort"
	"strings"

	"github.com/aclements/go-gg/gg"
)

// AdjustColors selects the discrete palette used for group levels.
// Known palettes: "default", "npg", "set1", "set2", "dark2",
// "grayscale".
func (p *Plot) AdjustColors(palette string) *Plot {
	pal, ok := discretePalettes[strings.ToLower(palette)]
	if !ok {
		known := make([]string, 0, len(discretePalettes))
		for name := range discretePalettes {
			known = append(known, name)
		}
		sort.Strings(known)
		return p.invalidf("unknown palette %q (have %s)", palette, strings.Join(known, ", "))
	}
	return p.addScale("adjust colors "+palette, func(rc *renderContext) {
		s := gg.NewOrdinalScale()
		s.Ranger(gg.NewColorRanger(pal))
		rc.colorScaler = s
	})
}

// AdjustLabels sets the plot title and axis labels. Empty arguments
// keep the defaults (the mapped column names, no title).
func (p *Plot) AdjustLabels(title, xLabel, yLabel string) *Plot {
	return p.addTheme("adjust labels", func(rc *renderContext) {
		if title != "" {
			rc.title, rc.hasTitle = title, true
		}
		if xLabel != "" {
			rc.xLabel = xLabel
		}
		if yLabel != "" {
			rc.yLabel = yLabel
		}
	})
}

// AdjustAxisTextAngle sets the rotation angle of x axis tick labels
// in degrees. The renderer cannot rotate tick text yet, so the angle
// is carried in the expression but not drawn.
func (p *Plot) AdjustAxisTextAngle(angle float64) *Plot {
	return p.addTheme("adjust axis text angle", func(rc *renderContext) {
		rc.axisTextAngle = angle
	})
}

// legendPositions are the positions AdjustLegendPosition accepts.
var legendPositions = map[string]bool{
	"right":  true,
	"left":   true,
	"top":    true,
	"bottom": true,
	"none":   true,
}

// AdjustLegendPosition places the legend at "right", "left", "top",
// "bottom", or hides it with "none". The renderer does not draw
// legends yet, so the position is carried in the expression but not
// drawn.
func (p *Plot) AdjustLegendPosition(pos string) *Plot {
	if !legendPositions[pos] {
		return p.invalidf("unknown legend position %q", pos)
	}
	return p.addTheme("adjust legend position "+pos, func(rc *renderContext) {
		rc.legendPosition = pos
	})
}
