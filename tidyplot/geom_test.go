// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	f := summarize([]float64{1, 2, 3, 4, 5})
	assert.Equal(t, 3.0, f.med)
	assert.Equal(t, 1.0, f.whiskLo)
	assert.Equal(t, 5.0, f.whiskHi)
	assert.True(t, f.q1 >= 1 && f.q1 <= 3)
	assert.True(t, f.q3 >= 3 && f.q3 <= 5)
	assert.Empty(t, f.outliers)
}

func TestSummarizeOutliers(t *testing.T) {
	f := summarize([]float64{1, 2, 3, 4, 5, 100})
	require.Len(t, f.outliers, 1)
	assert.Equal(t, 100.0, f.outliers[0])
	// The whisker stops at the last point inside the fence.
	assert.Equal(t, 5.0, f.whiskHi)
}

func TestDodge(t *testing.T) {
	// A lone group keeps its slot centered.
	g := sampleGroup{x: 2, li: 0, n: 1}
	cx, hw := g.dodge(0.6, 1)
	assert.Equal(t, 2.0, cx)
	assert.InDelta(t, 0.3, hw, 1e-9)

	// Two levels split the slot symmetrically.
	lo := sampleGroup{x: 2, li: 0, n: 2}
	hi := sampleGroup{x: 2, li: 1, n: 2}
	cxLo, hwLo := lo.dodge(0.6, 1)
	cxHi, hwHi := hi.dodge(0.6, 1)
	assert.InDelta(t, 2-cxLo, cxHi-2, 1e-9)
	assert.Less(t, cxLo, cxHi)
	assert.Equal(t, hwLo, hwHi)
	assert.Less(t, hwLo, hw)
}

func TestCollect(t *testing.T) {
	tp := New(sampleTable(), "group", "resp", "cond")
	rc, err := tp.newRenderContext()
	require.NoError(t, err)

	groups, err := rc.collect(true)
	require.NoError(t, err)
	// group a/b x cond x/y, all four cells populated.
	require.Len(t, groups, 4)
	total := 0
	for _, g := range groups {
		assert.Equal(t, 2, g.n)
		total += len(g.ys)
	}
	assert.Equal(t, 6, total)
	// Ordered by x position, then level.
	assert.Equal(t, 0.0, groups[0].x)
	assert.Equal(t, "x", groups[0].level)
	assert.Equal(t, 1.0, groups[3].x)
	assert.Equal(t, "y", groups[3].level)
}

func TestCollectWithoutColor(t *testing.T) {
	tp := New(sampleTable(), "group", "resp", "")
	rc, err := tp.newRenderContext()
	require.NoError(t, err)

	groups, err := rc.collect(true)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].n)
	assert.Len(t, groups[0].ys, 3)
	assert.Len(t, groups[1].ys, 3)
}

func TestIBeam(t *testing.T) {
	xs := iBeamXs(2, 0.5)
	ys := iBeamYs(1, 3)
	require.Len(t, xs, 6)
	require.Len(t, ys, 6)
	// Caps span the full width at the bounds; the rule is at the
	// center.
	assert.Equal(t, []float64{1.5, 2.5, 2, 2, 1.5, 2.5}, xs)
	assert.Equal(t, []float64{3, 3, 3, 1, 1, 1}, ys)
}
