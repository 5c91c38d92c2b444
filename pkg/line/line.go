package line

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Point is a sampled (x, predicted y) pair on the regression line.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineMetaData holds the slope and intercept of the current fit.
// A nil value means the parameter has not been computed.
type LineMetaData struct {
	Slope     *float64 `json:"slope"`
	Intercept *float64 `json:"intercept"`
	DataCount int64    `json:"dataCount"`
}

// LeastSquares fits y = slope*x + intercept over accumulated (x, y) samples.
//
// Repeated calls to Train keep adding data and recompute the regression over
// everything seen since construction or the last Reset. Derived series are
// computed on first access and cached until the next Train or Reset.
//
// A LeastSquares is not safe for concurrent use.
type LeastSquares struct {
	xCoords []float64
	yCoords []float64

	slope     *float64
	intercept *float64
	rSquared  *float64

	differences           []float64
	differencesComputed   bool
	cumulativeSum         []float64
	cumulativeSumComputed bool
	linePoints            []Point
	linePointsComputed    bool
}

// NewLeastSquares returns an untrained engine.
func NewLeastSquares() *LeastSquares {
	return &LeastSquares{}
}

// Train appends the coordinates to the accumulated series and recomputes the
// regression. The engine is left untouched when validation fails.
func (ls *LeastSquares) Train(xCoords []float64, yCoords []float64) error {
	xs := mergeCoords(ls.xCoords, xCoords)
	ys := mergeCoords(ls.yCoords, yCoords)

	if len(xs) != len(ys) {
		return &SeriesCountMismatchError{XCount: len(xs), YCount: len(ys)}
	}
	if len(xs) == 0 {
		return ErrSeriesHasZeroElements
	}

	ls.resetCalculatedValues()
	ls.xCoords = xs
	ls.yCoords = ys
	ls.compute()
	return nil
}

// Reset clears all data so the next Train starts afresh.
func (ls *LeastSquares) Reset() {
	ls.resetCalculatedValues()
	ls.xCoords = nil
	ls.yCoords = nil
}

func (ls *LeastSquares) resetCalculatedValues() {
	ls.slope = nil
	ls.intercept = nil
	ls.rSquared = nil

	ls.differences = nil
	ls.differencesComputed = false
	ls.cumulativeSum = nil
	ls.cumulativeSumComputed = false
	ls.linePoints = nil
	ls.linePointsComputed = false
}

func (ls *LeastSquares) compute() {
	res := fit(ls.xCoords, ls.yCoords)
	ls.slope = &res.slope
	ls.intercept = &res.intercept
	ls.rSquared = &res.rSquared
}

// DataCount returns the number of accumulated observations.
func (ls *LeastSquares) DataCount() int64 {
	return int64(len(ls.xCoords))
}

// Slope is the increase in y for an increase of 1 on the x axis.
func (ls *LeastSquares) Slope() (float64, error) {
	return valueOrNotComputed(ls.slope)
}

// Intercept is the value at which the regression line crosses the y axis.
func (ls *LeastSquares) Intercept() (float64, error) {
	return valueOrNotComputed(ls.intercept)
}

// RSquared is the coefficient of determination of the fit. It is not clamped:
// degenerate series give NaN.
func (ls *LeastSquares) RSquared() (float64, error) {
	return valueOrNotComputed(ls.rSquared)
}

// SlopeAndIntercept never fails; parameters not computed yet are nil.
func (ls *LeastSquares) SlopeAndIntercept() LineMetaData {
	return LineMetaData{
		Slope:     copyValue(ls.slope),
		Intercept: copyValue(ls.intercept),
		DataCount: ls.DataCount(),
	}
}

// PredictY returns intercept + slope*x.
func (ls *LeastSquares) PredictY(x float64) (float64, error) {
	if ls.slope == nil || ls.intercept == nil {
		return 0, ErrNotComputedYet
	}
	return *ls.intercept + *ls.slope*x, nil
}

// PredictX returns (y - intercept) / slope. A horizontal line gives ±Inf, or
// NaN when y equals the intercept.
func (ls *LeastSquares) PredictX(y float64) (float64, error) {
	if ls.slope == nil || ls.intercept == nil {
		return 0, ErrNotComputedYet
	}
	return (y - *ls.intercept) / *ls.slope, nil
}

// MeanY returns the arithmetic mean of the accumulated y values.
func (ls *LeastSquares) MeanY() (float64, error) {
	if len(ls.yCoords) == 0 {
		return 0, ErrSeriesHasZeroElements
	}
	return stat.Mean(ls.yCoords, nil), nil
}

// DifferencesFromRegressionLine returns y[i] - PredictY(x[i]) in observation order.
func (ls *LeastSquares) DifferencesFromRegressionLine() ([]float64, error) {
	if !ls.differencesComputed {
		if ls.slope == nil || ls.intercept == nil {
			return nil, ErrNotComputedYet
		}

		differences := make([]float64, len(ls.xCoords))
		for i := range ls.xCoords {
			predicted, err := ls.PredictY(ls.xCoords[i])
			if err != nil {
				return nil, err
			}
			differences[i] = ls.yCoords[i] - predicted
		}
		ls.differences = differences
		ls.differencesComputed = true
	}
	return copySeries(ls.differences), nil
}

// CumulativeSumOfDifferencesFromRegressionLine returns the running total of
// DifferencesFromRegressionLine. A drift away from zero shows systematic bias.
func (ls *LeastSquares) CumulativeSumOfDifferencesFromRegressionLine() ([]float64, error) {
	if !ls.cumulativeSumComputed {
		differences, err := ls.DifferencesFromRegressionLine()
		if err != nil {
			return nil, err
		}

		cumulativeSum := make([]float64, len(differences))
		for i, diff := range differences {
			if i == 0 {
				cumulativeSum[i] = diff
				continue
			}
			cumulativeSum[i] = diff + cumulativeSum[i-1]
		}
		ls.cumulativeSum = cumulativeSum
		ls.cumulativeSumComputed = true
	}
	return copySeries(ls.cumulativeSum), nil
}

// RegressionLinePoints samples one point per observation on the regression
// line, with x equally spaced from min(x) to max(x) inclusive.
//
// With a single observation the step is 0/0 and the point is NaN.
func (ls *LeastSquares) RegressionLinePoints() ([]Point, error) {
	if !ls.linePointsComputed {
		if ls.slope == nil || ls.intercept == nil {
			return nil, ErrNotComputedYet
		}

		count := len(ls.xCoords)
		minX, maxX := minMax(ls.xCoords)
		step := (maxX - minX) / float64(count-1)

		points := make([]Point, count)
		for i := 0; i < count; i++ {
			x := minX + float64(i)*step
			y, err := ls.PredictY(x)
			if err != nil {
				return nil, err
			}
			points[i] = Point{X: x, Y: y}
		}
		ls.linePoints = points
		ls.linePointsComputed = true
	}

	points := make([]Point, len(ls.linePoints))
	copy(points, ls.linePoints)
	return points, nil
}

// Formula renders the fit as "y = 3.27x + 16.10".
func (ls *LeastSquares) Formula() (string, error) {
	slope, err := ls.Slope()
	if err != nil {
		return "", err
	}
	intercept, err := ls.Intercept()
	if err != nil {
		return "", err
	}

	sign := "+"
	if intercept < 0 {
		sign = "-"
		intercept = -intercept
	}
	return "y = " + FormatFloat(slope, 2) + "x " + sign + " " + FormatFloat(intercept, 2), nil
}

// FormatFloat rounds v to places decimal places. Non-finite values, which
// decimal cannot represent, are written as NaN, +Inf or -Inf.
func FormatFloat(v float64, places int32) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func valueOrNotComputed(v *float64) (float64, error) {
	if v == nil {
		return 0, ErrNotComputedYet
	}
	return *v, nil
}

func copyValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	res := *v
	return &res
}

func copySeries(series []float64) []float64 {
	res := make([]float64, len(series))
	copy(res, series)
	return res
}

func mergeCoords(existing []float64, coords []float64) []float64 {
	res := make([]float64, 0, len(existing)+len(coords))
	res = append(res, existing...)
	return append(res, coords...)
}

func minMax(values []float64) (float64, float64) {
	minValue, maxValue := values[0], values[0]
	for _, v := range values[1:] {
		if v < minValue {
			minValue = v
		}
		if v > maxValue {
			maxValue = v
		}
	}
	return minValue, maxValue
}
