package report

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/liucxer/least-squares/pkg/csv"
	"github.com/liucxer/least-squares/pkg/line"
)

// Row is one observation next to the regression line point of the same index.
type Row struct {
	X           float64 `csv:"x" json:"x"`
	Y           float64 `csv:"y" json:"y"`
	RX          float64 `csv:"rX" json:"rX"`
	RY          float64 `csv:"rY" json:"rY"`
	YDiff       float64 `csv:"yDiff" json:"yDiff"`
	CumSumYDiff float64 `csv:"cumSumYDiff" json:"cumSumYDiff"`
}

// Parameters is the fit of a Report without its per-observation rows.
type Parameters struct {
	DataCount int64   `csv:"dataCount"`
	Slope     float64 `csv:"slope"`
	Intercept float64 `csv:"intercept"`
	RSquared  float64 `csv:"rSquared"`
	MeanY     float64 `csv:"meanY"`
}

type Report struct {
	DataCount int64   `json:"dataCount"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"rSquared"`
	MeanY     float64 `json:"meanY"`
	Formula   string  `json:"formula"`
	Rows      []Row   `json:"rows"`
}

// Build fits xs against ys and collects every diagnostic of the fit.
func Build(xs []float64, ys []float64) (*Report, error) {
	ls := line.NewLeastSquares()
	err := ls.Train(xs, ys)
	if err != nil {
		logrus.Errorf("ls.Train err:%v", err)
		return nil, errors.Wrap(err, "train")
	}
	return FromLeastSquares(ls, xs, ys)
}

// FromLeastSquares reads the diagnostics of an already trained ls. xs and ys
// must be the series ls was trained with, in order.
func FromLeastSquares(ls *line.LeastSquares, xs []float64, ys []float64) (*Report, error) {
	var (
		res Report
		err error
	)

	if int64(len(xs)) != ls.DataCount() || len(xs) != len(ys) {
		return nil, errors.Errorf("series of %d:%d observations, trained with %d", len(xs), len(ys), ls.DataCount())
	}

	res.DataCount = ls.DataCount()
	if res.Slope, err = ls.Slope(); err != nil {
		return nil, err
	}
	if res.Intercept, err = ls.Intercept(); err != nil {
		return nil, err
	}
	if res.RSquared, err = ls.RSquared(); err != nil {
		return nil, err
	}
	if res.MeanY, err = ls.MeanY(); err != nil {
		return nil, err
	}
	if res.Formula, err = ls.Formula(); err != nil {
		return nil, err
	}

	differences, err := ls.DifferencesFromRegressionLine()
	if err != nil {
		return nil, err
	}
	cumulativeSum, err := ls.CumulativeSumOfDifferencesFromRegressionLine()
	if err != nil {
		return nil, err
	}
	points, err := ls.RegressionLinePoints()
	if err != nil {
		return nil, err
	}

	res.Rows = make([]Row, len(xs))
	for i := range xs {
		res.Rows[i] = Row{
			X:           xs[i],
			Y:           ys[i],
			RX:          points[i].X,
			RY:          points[i].Y,
			YDiff:       differences[i],
			CumSumYDiff: cumulativeSum[i],
		}
	}

	logrus.Debugf("report built. dataCount:%d, formula:%s, rSquared:%f", res.DataCount, res.Formula, res.RSquared)
	return &res, nil
}

// WriteCSV writes one line per observation with a header line.
func (r *Report) WriteCSV(w io.Writer) error {
	str, err := csv.ObjectListToCsv(r.Rows)
	if err != nil {
		logrus.Errorf("csv.ObjectListToCsv err:%v", err)
		return err
	}
	_, err = io.WriteString(w, str)
	return errors.Wrap(err, "write csv")
}

func (r *Report) Parameters() Parameters {
	return Parameters{
		DataCount: r.DataCount,
		Slope:     r.Slope,
		Intercept: r.Intercept,
		RSquared:  r.RSquared,
		MeanY:     r.MeanY,
	}
}

// WriteParametersCSV writes the fit parameters as a header line and a single
// value line.
func (r *Report) WriteParametersCSV(w io.Writer) error {
	nameStr, valueStr, err := csv.ObjectToCsv(r.Parameters())
	if err != nil {
		logrus.Errorf("csv.ObjectToCsv err:%v", err)
		return err
	}
	_, err = io.WriteString(w, nameStr+"\n"+valueStr+"\n")
	return errors.Wrap(err, "write parameters")
}

// WriteSummary writes the fit parameters as a table, rounded to precision
// decimal places.
func (r *Report) WriteSummary(w io.Writer, precision int32) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Parameter", "Value"})
	table.Append([]string{"observations", strconv.FormatInt(r.DataCount, 10)})
	table.Append([]string{"slope", line.FormatFloat(r.Slope, precision)})
	table.Append([]string{"intercept", line.FormatFloat(r.Intercept, precision)})
	table.Append([]string{"rSquared", line.FormatFloat(r.RSquared, precision)})
	table.Append([]string{"meanY", line.FormatFloat(r.MeanY, precision)})
	table.Append([]string{"formula", r.Formula})
	table.Render()
}
