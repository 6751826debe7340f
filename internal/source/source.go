// Package source loads the product catalog and the highlight candidate
// groups from CSV files.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dbellini/catalog-enricher/internal/types"
)

var requiredProductColumns = []string{"id", "title", "description"}

var validate = validator.New()

// LoadWorkItems reads the product CSV and returns the items in file order.
// The header must contain id, title and description columns; extra columns
// are ignored. Duplicate ids are rejected: the store keys records by id, so
// a source that repeats one is malformed.
func LoadWorkItems(path string) ([]types.WorkItem, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &ValidationError{Path: path, Message: "file is empty"}
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredProductColumns {
		if _, ok := col[name]; !ok {
			return nil, &ValidationError{Path: path, Message: fmt.Sprintf("missing required column %q", name)}
		}
	}

	maxIdx := 0
	for _, name := range requiredProductColumns {
		if col[name] > maxIdx {
			maxIdx = col[name]
		}
	}

	items := make([]types.WorkItem, 0, len(rows))
	seen := make(map[int]struct{}, len(rows))
	for n, row := range rows {
		if len(row) <= maxIdx {
			return nil, &ValidationError{Path: path, Message: fmt.Sprintf("row %d: too few fields", n+2)}
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[col["id"]]))
		if err != nil {
			return nil, &ValidationError{Path: path, Message: fmt.Sprintf("row %d: non-integer id %q", n+2, row[col["id"]])}
		}
		if _, dup := seen[id]; dup {
			return nil, &ValidationError{Path: path, Message: fmt.Sprintf("row %d: duplicate id %d", n+2, id)}
		}
		seen[id] = struct{}{}

		item := types.WorkItem{
			ID:          id,
			Title:       strings.TrimSpace(row[col["title"]]),
			Description: strings.TrimSpace(row[col["description"]]),
		}
		if err := validate.Struct(item); err != nil {
			return nil, &ValidationError{Path: path, Message: fmt.Sprintf("row %d (id %d): %v", n+2, id, err)}
		}
		items = append(items, item)
	}
	return items, nil
}

// LoadHighlights reads the highlight CSV. The header row gives the group
// labels; each column's non-blank cells become that group's ordered
// candidates. Short rows are tolerated, blank cells are dropped.
func LoadHighlights(path string) (types.HighlightSet, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &ValidationError{Path: path, Message: "file is empty"}
	}

	hs := make(types.HighlightSet, len(header))
	for i, label := range header {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		var values []string
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[i]); v != "" {
				values = append(values, v)
			}
		}
		hs[label] = values
	}
	return hs, nil
}

// readCSV returns the header row and the data rows of a CSV file.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &NotFoundError{Path: path}
		}
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are validated per-file

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, &ValidationError{Path: path, Message: "file is empty"}
	}
	if err != nil {
		return nil, nil, &ValidationError{Path: path, Message: err.Error()}
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, &ValidationError{Path: path, Message: err.Error()}
	}
	return header, rows, nil
}
