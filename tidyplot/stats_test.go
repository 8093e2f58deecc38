// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitByX(t *testing.T) {
	tp := New(sampleTable(), "group", "resp", "")
	pos, samples, err := tp.splitByX()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, pos)
	require.Len(t, samples, 2)
	assert.Equal(t, []float64{1.2, 2.9, 4.8}, samples[0])
	assert.Equal(t, []float64{2.1, 4.2, 6.1}, samples[1])
}

func TestAddTestPValue(t *testing.T) {
	tp := New(sampleTable(), "group", "resp", "").AddTestPValue("t", "")
	require.NoError(t, tp.Err())

	ds := tp.Show()
	require.Len(t, ds, 1)
	a, ok := ds[0].(*Annotation)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(a.Label, "p = "), "label %q", a.Label)
	// Centered between the two groups, above the tallest point.
	assert.Equal(t, 0.5, a.X)
	assert.InDelta(t, 1.1*6.1, a.Y, 1e-9)
}

func TestAddTestPValueWilcoxon(t *testing.T) {
	tp := New(sampleTable(), "group", "resp", "").AddTestPValue("wilcoxon", "%.4f")
	require.NoError(t, tp.Err())
	require.Len(t, tp.Show(), 1)
}

func TestAddTestPValueNeedsTwoGroups(t *testing.T) {
	// Six distinct doses: the comparison is skipped with a warning,
	// not an error.
	tp := New(sampleTable(), "dose", "resp", "").AddTestPValue("t", "")
	require.NoError(t, tp.Err())
	require.Empty(t, tp.Show())
}

func TestAddTestPValueUnknownTest(t *testing.T) {
	tp := New(sampleTable(), "group", "resp", "").AddTestPValue("anova", "")
	require.ErrorIs(t, tp.Err(), ErrInvalidArgument)
}

func TestAddCorrelationText(t *testing.T) {
	// A perfectly linear relation pins r at 1 and p at 0.
	xs := make([]float64, 10)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	tab := new(table.Builder).Add("x", xs).Add("y", xs).Done()

	tp := New(tab, "x", "y", "").AddCorrelationText("pearson", "")
	require.NoError(t, tp.Err())

	ds := tp.Show()
	require.Len(t, ds, 1)
	a, ok := ds[0].(*Annotation)
	require.True(t, ok)
	assert.Equal(t, "r = 1.000, p = 0.000", a.Label)
	assert.InDelta(t, 5.5, a.X, 1e-9)
	assert.InDelta(t, 11, a.Y, 1e-9)
}

func TestAddCorrelationTextSpearman(t *testing.T) {
	tp := New(sampleTable(), "dose", "resp", "").AddCorrelationText("spearman", "%.2f")
	require.NoError(t, tp.Err())
	require.Len(t, tp.Show(), 1)
}

func TestAddCorrelationTextErrors(t *testing.T) {
	tp := New(sampleTable(), "dose", "resp", "").AddCorrelationText("kendall", "")
	require.ErrorIs(t, tp.Err(), ErrInvalidArgument)

	// Categorical x has no meaningful correlation.
	tp = New(sampleTable(), "group", "resp", "").AddCorrelationText("pearson", "")
	require.Error(t, tp.Err())

	tab := new(table.Builder).
		Add("x", []float64{1, 2}).
		Add("y", []float64{2, 4}).
		Done()
	tp = New(tab, "x", "y", "").AddCorrelationText("pearson", "")
	require.Error(t, tp.Err())
}

func TestPearsonP(t *testing.T) {
	// Zero correlation cannot reject the null.
	assert.InDelta(t, 1, pearsonP(0, 10), 1e-9)
	// Perfect correlation is degenerate.
	assert.Equal(t, 0.0, pearsonP(1, 10))
	assert.Equal(t, 0.0, pearsonP(-1, 10))
	// Stronger correlation gives a smaller p-value.
	assert.Greater(t, pearsonP(0.3, 10), pearsonP(0.9, 10))
}
