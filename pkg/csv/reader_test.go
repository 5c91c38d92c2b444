package csv_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/liucxer/least-squares/pkg/csv"
	"github.com/stretchr/testify/require"
)

var energyData = `date,gas,electricity,degreeDays
2017-01-01,10.5,120,4.2
2017-01-02,,118,3.9
2017-01-03,11.25,121,
2017-01-04,9,"119",5.1
2017-01-05, 12 ,125, 6 ` + "\r" + `
2017-01-06,13,126,7
`

func TestReadColumns(t *testing.T) {
	xs, ys, err := csv.ReadColumns(strings.NewReader(energyData), csv.ReadOptions{
		XIndex:     3,
		YIndex:     1,
		SkipHeader: true,
	})
	require.NoError(t, err)
	require.Equal(t, []float64{4.2, 5.1, 6, 7}, xs)
	require.Equal(t, []float64{10.5, 9, 12, 13}, ys)
}

func TestReadColumns_MaxRows(t *testing.T) {
	// the cap counts skipped rows too
	xs, ys, err := csv.ReadColumns(strings.NewReader(energyData), csv.ReadOptions{
		XIndex:     3,
		YIndex:     1,
		SkipHeader: true,
		MaxRows:    4,
	})
	require.NoError(t, err)
	require.Equal(t, []float64{4.2, 5.1}, xs)
	require.Equal(t, []float64{10.5, 9}, ys)
}

func TestReadColumns_NoHeader(t *testing.T) {
	data := "1;2\n3;4\n"
	xs, ys, err := csv.ReadColumns(strings.NewReader(data), csv.ReadOptions{
		XIndex:    0,
		YIndex:    1,
		Delimiter: ';',
	})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3}, xs)
	require.Equal(t, []float64{2, 4}, ys)
}

func TestReadColumns_Errors(t *testing.T) {
	_, _, err := csv.ReadColumns(strings.NewReader("x,y\n1,abc\n"), csv.ReadOptions{XIndex: 0, YIndex: 1, SkipHeader: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")

	_, _, err = csv.ReadColumns(strings.NewReader("1,2\n"), csv.ReadOptions{XIndex: -1, YIndex: 1})
	require.Error(t, err)
}

func TestReadColumns_ShortRows(t *testing.T) {
	xs, ys, err := csv.ReadColumns(strings.NewReader("d,e,x\n1,2,3\n2,4\n3,6,9\n"), csv.ReadOptions{
		XIndex:     2,
		YIndex:     1,
		SkipHeader: true,
	})
	require.NoError(t, err)
	require.Equal(t, []float64{3, 9}, xs)
	require.Equal(t, []float64{2, 6}, ys)

	xs, ys, err = csv.ReadColumns(strings.NewReader("x,y\n1\n2,4\n"), csv.ReadOptions{XIndex: 0, YIndex: 1, SkipHeader: true})
	require.NoError(t, err)
	require.Equal(t, []float64{2}, xs)
	require.Equal(t, []float64{4}, ys)

	// a short row still counts toward the cap
	xs, ys, err = csv.ReadColumns(strings.NewReader("d,e,x\n1,2,3\n2,4\n3,6,9\n"), csv.ReadOptions{
		XIndex:     2,
		YIndex:     1,
		SkipHeader: true,
		MaxRows:    2,
	})
	require.NoError(t, err)
	require.Equal(t, []float64{3}, xs)
	require.Equal(t, []float64{2}, ys)
}

func TestReadColumns_Empty(t *testing.T) {
	xs, ys, err := csv.ReadColumns(strings.NewReader("x,y\n"), csv.ReadOptions{XIndex: 0, YIndex: 1, SkipHeader: true})
	require.NoError(t, err)
	require.Empty(t, xs)
	require.Empty(t, ys)
}

func TestReadColumnsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(energyData), 0644))

	xs, ys, err := csv.ReadColumnsFile(path, csv.ReadOptions{XIndex: 3, YIndex: 2, SkipHeader: true})
	require.NoError(t, err)
	require.Equal(t, []float64{4.2, 3.9, 5.1, 6, 7}, xs)
	require.Equal(t, []float64{120, 118, 119, 125, 126}, ys)

	_, _, err = csv.ReadColumnsFile(filepath.Join(t.TempDir(), "missing.csv"), csv.ReadOptions{})
	require.Error(t, err)
}
