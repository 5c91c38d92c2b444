package report_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/liucxer/least-squares/pkg/line"
	"github.com/liucxer/least-squares/pkg/report"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	res, err := report.Build([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10})
	require.NoError(t, err)
	spew.Dump(res)

	require.Equal(t, int64(5), res.DataCount)
	require.Equal(t, 2.0, res.Slope)
	require.Equal(t, 0.0, res.Intercept)
	require.InDelta(t, 1.0, res.RSquared, 1e-12)
	require.Equal(t, 6.0, res.MeanY)
	require.Equal(t, "y = 2.00x + 0.00", res.Formula)
	require.Len(t, res.Rows, 5)
	require.Equal(t, report.Row{X: 3, Y: 6, RX: 3, RY: 6}, res.Rows[2])

	var buf bytes.Buffer
	require.NoError(t, res.WriteCSV(&buf))
	require.Equal(t, "x,y,rX,rY,yDiff,cumSumYDiff\n"+
		"1,2,1,2,0,0\n"+
		"2,4,2,4,0,0\n"+
		"3,6,3,6,0,0\n"+
		"4,8,4,8,0,0\n"+
		"5,10,5,10,0,0\n", buf.String())

	buf.Reset()
	require.NoError(t, res.WriteParametersCSV(&buf))
	require.Equal(t, "dataCount,slope,intercept,rSquared,meanY\n5,2,0,1,6\n", buf.String())

	buf.Reset()
	res.WriteSummary(&buf, 2)
	summary := buf.String()
	require.Contains(t, summary, "slope")
	require.Contains(t, summary, "2.00")
	require.Contains(t, summary, "1.00")
	require.Contains(t, summary, "y = 2.00x + 0.00")
}

func TestBuild_Errors(t *testing.T) {
	_, err := report.Build([]float64{1, 2}, []float64{1})
	var mismatch *line.SeriesCountMismatchError
	require.True(t, errors.As(err, &mismatch))

	_, err = report.Build(nil, nil)
	require.True(t, errors.Is(err, line.ErrSeriesHasZeroElements))
}

func TestFromLeastSquares(t *testing.T) {
	ls := line.NewLeastSquares()
	_, err := report.FromLeastSquares(ls, nil, nil)
	require.True(t, errors.Is(err, line.ErrNotComputedYet))

	require.NoError(t, ls.Train([]float64{1, 2}, []float64{3, 5}))
	require.NoError(t, ls.Train([]float64{3}, []float64{8}))

	_, err = report.FromLeastSquares(ls, []float64{1, 2}, []float64{3, 5})
	require.Error(t, err)

	res, err := report.FromLeastSquares(ls, []float64{1, 2, 3}, []float64{3, 5, 8})
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)

	var sum float64
	for _, row := range res.Rows {
		sum += row.YDiff
	}
	require.InDelta(t, 0, sum, 1e-9)
	require.InDelta(t, sum, res.Rows[2].CumSumYDiff, 1e-9)
}

func TestWriteSummary_NonFinite(t *testing.T) {
	res, err := report.Build([]float64{3}, []float64{5})
	require.NoError(t, err)

	var buf bytes.Buffer
	res.WriteSummary(&buf, 2)
	require.Contains(t, buf.String(), "NaN")
	require.Contains(t, buf.String(), "5.00")
}
