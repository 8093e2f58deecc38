// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"fmt"
	"image/color"
	"reflect"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/palette"
)

// namedColors maps the CSS color names accepted by the color and
// gradient arguments.
var namedColors = map[string]color.RGBA{
	"black":     {0x00, 0x00, 0x00, 0xff},
	"white":     {0xff, 0xff, 0xff, 0xff},
	"red":       {0xff, 0x00, 0x00, 0xff},
	"green":     {0x00, 0x80, 0x00, 0xff},
	"blue":      {0x00, 0x00, 0xff, 0xff},
	"gray":      {0x80, 0x80, 0x80, 0xff},
	"grey":      {0x80, 0x80, 0x80, 0xff},
	"yellow":    {0xff, 0xff, 0x00, 0xff},
	"orange":    {0xff, 0xa5, 0x00, 0xff},
	"purple":    {0x80, 0x00, 0x80, 0xff},
	"brown":     {0xa5, 0x2a, 0x2a, 0xff},
	"pink":      {0xff, 0xc0, 0xcb, 0xff},
	"cyan":      {0x00, 0xff, 0xff, 0xff},
	"magenta":   {0xff, 0x00, 0xff, 0xff},
	"navy":      {0x00, 0x00, 0x80, 0xff},
	"teal":      {0x00, 0x80, 0x80, 0xff},
	"olive":     {0x80, 0x80, 0x00, 0xff},
	"maroon":    {0x80, 0x00, 0x00, 0xff},
	"lime":      {0x00, 0xff, 0x00, 0xff},
	"silver":    {0xc0, 0xc0, 0xc0, 0xff},
	"gold":      {0xff, 0xd7, 0x00, 0xff},
	"indigo":    {0x4b, 0x00, 0x82, 0xff},
	"violet":    {0xee, 0x82, 0xee, 0xff},
	"coral":     {0xff, 0x7f, 0x50, 0xff},
	"salmon":    {0xfa, 0x80, 0x72, 0xff},
	"tomato":    {0xff, 0x63, 0x47, 0xff},
	"turquoise": {0x40, 0xe0, 0xd0, 0xff},
	"steelblue": {0x46, 0x82, 0xb4, 0xff},
	"skyblue":   {0x87, 0xce, 0xeb, 0xff},
	"crimson":   {0xdc, 0x14, 0x3c, 0xff},
	"firebrick": {0xb2, 0x22, 0x22, 0xff},
	"darkred":   {0x8b, 0x00, 0x00, 0xff},
	"darkblue":  {0x00, 0x00, 0x8b, 0xff},
	"darkgreen": {0x00, 0x64, 0x00, 0xff},
	"lightblue": {0xad, 0xd8, 0xe6, 0xff},
	"lightgray": {0xd3, 0xd3, 0xd3, 0xff},
	"seagreen":  {0x2e, 0x8b, 0x57, 0xff},
	"royalblue": {0x41, 0x69, 0xe1, 0xff},
}

// parseColor accepts a CSS color name or "#rrggbb"/"#rgb" hex.
func parseColor(s string) (color.RGBA, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			v, err := strconv.ParseUint(hex, 16, 32)
			if err == nil {
				return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
			}
		}
	}
	return color.RGBA{}, fmt.Errorf("unrecognized color %q: %w", s, ErrInvalidArgument)
}

// mustHex is for the in-package palette tables only.
func mustHex(s string) color.RGBA {
	c, err := parseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// discretePalettes holds the palettes accepted by AdjustColors. The
// values follow the corresponding journal and ColorBrewer palettes.
var discretePalettes = map[string][]color.Color{
	"default": {
		color.RGBA{0x4c, 0x72, 0xb0, 0xff},
		color.RGBA{0x55, 0xa8, 0x68, 0xff},
		color.RGBA{0xc4, 0x4e, 0x52, 0xff},
		color.RGBA{0x81, 0x72, 0xb2, 0xff},
		color.RGBA{0xcc, 0xb9, 0x74, 0xff},
		color.RGBA{0x64, 0xb5, 0xcd, 0xff},
	},
	"npg": {
		mustHex("#e64b35"), mustHex("#4dbbd5"), mustHex("#00a087"),
		mustHex("#3c5488"), mustHex("#f39b7f"), mustHex("#8491b4"),
		mustHex("#91d1c2"), mustHex("#dc0000"), mustHex("#7e6148"),
		mustHex("#b09c85"),
	},
	"set1": {
		mustHex("#e41a1c"), mustHex("#377eb8"), mustHex("#4daf4a"),
		mustHex("#984ea3"), mustHex("#ff7f00"), mustHex("#ffff33"),
		mustHex("#a65628"), mustHex("#f781bf"), mustHex("#999999"),
	},
	"set2": {
		mustHex("#66c2a5"), mustHex("#fc8d62"), mustHex("#8da0cb"),
		mustHex("#e78ac3"), mustHex("#a6d854"), mustHex("#ffd92f"),
		mustHex("#e5c494"), mustHex("#b3b3b3"),
	},
	"dark2": {
		mustHex("#1b9e77"), mustHex("#d95f02"), mustHex("#7570b3"),
		mustHex("#e7298a"), mustHex("#66a61e"), mustHex("#e6ab02"),
		mustHex("#a6761d"), mustHex("#666666"),
	},
	"grayscale": {
		color.RGBA{0x22, 0x22, 0x22, 0xff},
		color.RGBA{0x55, 0x55, 0x55, 0xff},
		color.RGBA{0x88, 0x88, 0x88, 0xff},
		color.RGBA{0xbb, 0xbb, 0xbb, 0xff},
	},
}

// gradientRanger maps the [0, 1] intermediate space of a continuous
// scale through an RGB gradient.
type gradientRanger struct {
	g palette.RGBGradient
}

var rangerColorType = reflect.TypeOf((*color.Color)(nil)).Elem()

func (r gradientRanger) RangeType() reflect.Type {
	return rangerColorType
}

func (r gradientRanger) Map(x float64) interface{} {
	return r.g.Map(x)
}

func (r gradientRanger) Unmap(y interface{}) (float64, bool) {
	// Gradients are not invertible in general.
	return 0, false
}

// withAlpha scales a color's alpha, premultiplying per color.RGBA
// convention.
func withAlpha(c color.Color, alpha float64) color.Color {
	if alpha >= 1 {
		return c
	}
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(float64(a) * alpha),
	}
}
