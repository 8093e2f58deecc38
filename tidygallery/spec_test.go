// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-gg/table"
)

func specTable() table.Grouping {
	return new(table.Builder).
		Add("group", []string{"a", "b", "a", "b"}).
		Add("value", []float64{1, 2, 3, 4}).
		Done()
}

func TestReadSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
x: group
y: value
title: Values
steps:
  - type: boxplot
    alpha: 0.4
  - type: jitter
    width: 0.2
    size: 2
    alpha: 0.5
`), 0666))

	spec, err := readSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "group", spec.X)
	assert.Equal(t, "value", spec.Y)
	assert.Equal(t, "Values", spec.Title)
	require.Len(t, spec.Steps, 2)
	assert.Equal(t, "boxplot", spec.Steps[0].Type)
	assert.Equal(t, 0.2, spec.Steps[1].Width)
}

func TestReadSpecRejectsEmptySteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x: group\ny: value\n"), 0666))
	_, err := readSpec(path)
	require.Error(t, err)
}

func TestBuildChart(t *testing.T) {
	spec := &chartSpec{
		X: "group", Y: "value",
		Title:  "Values",
		Legend: "none",
		Steps: []stepSpec{
			{Type: "boxplot", Alpha: 0.4},
			{Type: "jitter", Width: 0.2, Size: 2, Alpha: 0.5},
			{Type: "hline", Y: 2.5, ColorName: "gray", Alpha: 0.5},
		},
	}
	tp, err := buildChart(specTable(), spec)
	require.NoError(t, err)
	// boxplot, jitter, hline, plus the trailing labels and legend
	// adjustments.
	assert.Len(t, tp.Show(), 5)
}

func TestBuildChartUnknownStep(t *testing.T) {
	spec := &chartSpec{
		X:     "group",
		Y:     "value",
		Steps: []stepSpec{{Type: "sparkline"}},
	}
	_, err := buildChart(specTable(), spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step type")
}

func TestBuildChartPropagatesChainErrors(t *testing.T) {
	spec := &chartSpec{
		X:     "group",
		Y:     "value",
		Steps: []stepSpec{{Type: "smooth", Method: "cubic"}},
	}
	_, err := buildChart(specTable(), spec)
	require.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("group,value\na,1.5\nb,2.5\n"), 0666))

	tab, err := readCSV(path)
	require.NoError(t, err)
	flat := table.Flatten(tab)
	assert.Equal(t, []string{"a", "b"}, flat.Column("group"))
	assert.Equal(t, []float64{1.5, 2.5}, flat.Column("value"))
}

func TestReadCSVRejectsHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("group,value\n"), 0666))
	_, err := readCSV(path)
	require.Error(t, err)
}
