package line

import (
	"math"
)

type sums struct {
	n  float64
	x  float64
	y  float64
	xy float64
	xx float64
	yy float64
}

func sumSeries(x []float64, y []float64) sums {
	s := sums{n: float64(len(x))}
	for i := 0; i < len(x); i++ {
		s.x += x[i]
		s.y += y[i]
		s.xy += x[i] * y[i]
		s.xx += x[i] * x[i]
		s.yy += y[i] * y[i]
	}
	return s
}

type fitResult struct {
	slope     float64
	intercept float64
	rSquared  float64
}

// fit is the only place doing raw regression arithmetic. Degenerate input
// (constant x, constant y, single observation) yields NaN or Inf here and is
// passed through unchanged.
func fit(x []float64, y []float64) fitResult {
	s := sumSeries(x, y)

	covariance := s.n*s.xy - s.x*s.y
	varianceX := s.n*s.xx - s.x*s.x
	varianceY := s.n*s.yy - s.y*s.y

	slope := covariance / varianceX
	intercept := (s.y - slope*s.x) / s.n

	r := covariance / math.Sqrt(varianceX*varianceY)

	return fitResult{
		slope:     slope,
		intercept: intercept,
		rSquared:  r * r,
	}
}
