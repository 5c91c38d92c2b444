package csv

import (
	stdcsv "encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ReadOptions selects the two numeric columns read from a delimited file.
type ReadOptions struct {
	// XIndex and YIndex are zero-based column positions.
	XIndex int
	YIndex int
	// Delimiter defaults to ','.
	Delimiter rune
	// SkipHeader drops the first row.
	SkipHeader bool
	// MaxRows caps the number of data rows consumed, skipped rows included.
	// Zero means no limit.
	MaxRows int
}

// ReadColumnsFile opens path and reads it with ReadColumns.
func ReadColumnsFile(path string, opt ReadOptions) ([]float64, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		logrus.Errorf("os.Open err:%v", err)
		return nil, nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	return ReadColumns(f, opt)
}

// ReadColumns returns the x and y columns of r as paired series. Rows with an
// empty or missing cell in either column are skipped.
func ReadColumns(r io.Reader, opt ReadOptions) ([]float64, []float64, error) {
	var (
		xs []float64
		ys []float64
	)

	if opt.XIndex < 0 || opt.YIndex < 0 {
		return nil, nil, errors.Errorf("negative column index x:%d y:%d", opt.XIndex, opt.YIndex)
	}

	reader := stdcsv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true
	if opt.Delimiter != 0 {
		reader.Comma = opt.Delimiter
	}

	lineNum := 0
	consumed := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logrus.Errorf("reader.Read err:%v", err)
			return nil, nil, errors.Wrap(err, "read csv")
		}
		lineNum++

		if lineNum == 1 && opt.SkipHeader {
			continue
		}
		if opt.MaxRows > 0 && consumed >= opt.MaxRows {
			break
		}
		consumed++

		xStr := cell(record, opt.XIndex)
		yStr := cell(record, opt.YIndex)
		if xStr == "" || yStr == "" {
			logrus.Debugf("skip line %d, empty value", lineNum)
			continue
		}

		x, err := strconv.ParseFloat(xStr, 64)
		if err != nil {
			logrus.Errorf("strconv.ParseFloat, err:%v", err)
			return nil, nil, errors.Wrapf(err, "line %d column %d", lineNum, opt.XIndex)
		}
		y, err := strconv.ParseFloat(yStr, 64)
		if err != nil {
			logrus.Errorf("strconv.ParseFloat, err:%v", err)
			return nil, nil, errors.Wrapf(err, "line %d column %d", lineNum, opt.YIndex)
		}

		xs = append(xs, x)
		ys = append(ys, y)
	}

	return xs, ys, nil
}

// cell returns the trimmed value at index, or "" when the row is too short.
func cell(record []string, index int) string {
	if index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}
