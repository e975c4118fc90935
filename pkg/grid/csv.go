// Package grid provides the 2D grid primitives used to slice elevation
// surfaces: CSV loading, index extents, flattening and range masking.
package grid

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyGrid is returned when an input contains no rows
	ErrEmptyGrid = errors.New("grid: no data rows")

	// ErrRaggedRow is returned when a row's length differs from the first row
	ErrRaggedRow = errors.New("grid: row length differs from first row")
)

// LoadCSV reads a rectangular grid of numbers from a delimited text file
func LoadCSV(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid file: %w", err)
	}
	defer f.Close()

	m, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ReadCSV parses comma separated rows into a rows x cols matrix.
// Every field is coerced to float64; blank lines are skipped.
func ReadCSV(r io.Reader) (*mat.Dense, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		data []float64
		cols int
		rows int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", rows+1, err)
		}

		if rows == 0 {
			cols = len(record)
		} else if len(record) != cols {
			return nil, fmt.Errorf("row %d has %d values, expected %d: %w", rows+1, len(record), cols, ErrRaggedRow)
		}

		for c, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: invalid number %q", rows+1, c+1, field)
			}
			data = append(data, v)
		}
		rows++
	}

	if rows == 0 || cols == 0 {
		return nil, ErrEmptyGrid
	}
	return mat.NewDense(rows, cols, data), nil
}
