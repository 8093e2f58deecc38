// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustColors(t *testing.T) {
	for _, name := range []string{"default", "npg", "set1", "set2", "dark2", "grayscale"} {
		tp := New(sampleTable(), "group", "resp", "cond").AdjustColors(name)
		require.NoError(t, tp.Err(), name)

		var rc renderContext
		tp.Show()[0].(*Scale).apply(&rc)
		assert.NotNil(t, rc.colorScaler, name)
	}

	tp := New(sampleTable(), "group", "resp", "cond").AdjustColors("viridis")
	require.ErrorIs(t, tp.Err(), ErrInvalidArgument)
	assert.Contains(t, tp.Err().Error(), "npg")
}

func TestAdjustLabels(t *testing.T) {
	tp := New(sampleTable(), "dose", "resp", "").
		AdjustLabels("Dose response", "dose (mg)", "")
	require.NoError(t, tp.Err())

	rc := renderContext{xLabel: "dose", yLabel: "resp"}
	tp.Show()[0].(*Theme).apply(&rc)
	assert.True(t, rc.hasTitle)
	assert.Equal(t, "Dose response", rc.title)
	assert.Equal(t, "dose (mg)", rc.xLabel)
	// An empty argument keeps the default.
	assert.Equal(t, "resp", rc.yLabel)
}

func TestAdjustAxisTextAngle(t *testing.T) {
	tp := New(sampleTable(), "group", "resp", "").AdjustAxisTextAngle(45)
	var rc renderContext
	tp.Show()[0].(*Theme).apply(&rc)
	assert.Equal(t, 45.0, rc.axisTextAngle)
}

func TestAdjustLegendPosition(t *testing.T) {
	for _, pos := range []string{"right", "left", "top", "bottom", "none"} {
		tp := New(sampleTable(), "group", "resp", "cond").AdjustLegendPosition(pos)
		require.NoError(t, tp.Err(), pos)

		var rc renderContext
		tp.Show()[0].(*Theme).apply(&rc)
		assert.Equal(t, pos, rc.legendPosition)
	}
}

func TestLastThemeWins(t *testing.T) {
	tp := New(sampleTable(), "group", "resp", "").
		AdjustLabels("first", "", "").
		AdjustLabels("second", "", "")

	var rc renderContext
	for _, d := range tp.Show() {
		d.(*Theme).apply(&rc)
	}
	assert.Equal(t, "second", rc.title)
}
