package review

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Column names expected in the dataset header, matched case-insensitively.
// The Amazon review exports name them asin, reviewText and unixReviewTime;
// any additional columns are ignored.
const (
	columnASIN = "asin"
	columnText = "reviewtext"
	columnTime = "unixreviewtime"
)

var (
	ErrEmptyDataset  = errors.New("reviews CSV is empty")
	ErrMissingColumn = errors.New("reviews CSV missing required column")
	ErrMalformedCSV  = errors.New("reviews CSV is malformed")
)

// LoadCSV reads the review dataset from a file on disk.
func LoadCSV(path string) ([]Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reviews CSV: %w", err)
	}
	defer f.Close()

	return ReadAll(f)
}

// ReadAll parses the review dataset from r. The first row must be a header
// containing the asin, reviewText and unixReviewTime columns. Rows without
// an ASIN or with an unparsable timestamp are skipped; a structurally
// broken file is an error.
func ReadAll(r io.Reader) ([]Review, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}

	asinCol, textCol, timeCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case columnASIN:
			asinCol = i
		case columnText:
			textCol = i
		case columnTime:
			timeCol = i
		}
	}
	if asinCol < 0 {
		return nil, fmt.Errorf("%w: asin", ErrMissingColumn)
	}
	if textCol < 0 {
		return nil, fmt.Errorf("%w: reviewText", ErrMissingColumn)
	}
	if timeCol < 0 {
		return nil, fmt.Errorf("%w: unixReviewTime", ErrMissingColumn)
	}

	var reviews []Review
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}

		asin := strings.TrimSpace(record[asinCol])
		if asin == "" {
			continue
		}

		ts, err := strconv.ParseInt(strings.TrimSpace(record[timeCol]), 10, 64)
		if err != nil {
			continue
		}

		reviews = append(reviews, Review{
			ASIN:       asin,
			Text:       record[textCol],
			ReviewedAt: time.Unix(ts, 0).UTC(),
		})
	}

	return reviews, nil
}
