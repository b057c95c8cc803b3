package fvavg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tealeg/xlsx"
)

func TestWriteAndReadFormattedRecording_RoundTrips(t *testing.T) {
	rec := RawRecording{
		Time: []float64{0, 0.01, 0.02},
		Vol:  []float64{0, -0.01, -0.02},
		Flow: []float64{-1, -1, -1},
	}
	path := filepath.Join(t.TempDir(), "rec.xlsx")

	require.NoError(t, WriteFormattedRecording(rec, path))

	got, err := ReadFormattedRecording(path)
	require.NoError(t, err)

	require.Len(t, got.Time, len(rec.Time))
	for i := range rec.Time {
		assert.InDelta(t, rec.Time[i], got.Time[i], 1e-9)
		assert.InDelta(t, rec.Vol[i], got.Vol[i], 1e-9)
		assert.InDelta(t, rec.Flow[i], got.Flow[i], 1e-9)
	}
}

func TestConvertUnedited_MarkerDrivenColumns(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)

	addRow := func(v string) {
		row := sheet.AddRow()
		row.AddCell().SetValue(v)
	}

	addRow("ltr/s")
	addRow("header")
	addRow("1.0")
	addRow("2.0")
	addRow("3.0")
	addRow("")
	addRow("ltr")
	addRow("header")
	addRow("0.1")
	addRow("0.2")
	addRow("")

	path := filepath.Join(t.TempDir(), "unedited.xlsx")
	require.NoError(t, f.Save(path))

	rec, err := ConvertUnedited(path, 0.01)
	require.NoError(t, err)

	require.Len(t, rec.Flow, 3)
	require.Len(t, rec.Vol, 3)
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, rec.Flow)
	assert.Equal(t, 0.1, rec.Vol[0])
	assert.Equal(t, 0.2, rec.Vol[1])
	assert.True(t, rec.Vol[2] != rec.Vol[2]) // NaN padding for the shorter run
	assert.InDelta(t, 0.01, rec.Time[0], 1e-9)
	assert.InDelta(t, 0.03, rec.Time[2], 1e-9)
}
