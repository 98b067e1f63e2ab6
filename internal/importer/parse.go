package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// parseCSV reads a header row plus data rows. Rows whose cells are all
// empty are dropped.
func parseCSV(data []byte) ([]string, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("csv file has no header row")
	}

	columns := records[0]
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if allEmpty(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return columns, rows, nil
}

// parseJSON reads an array of flat objects. The column set is the
// sorted union of all keys; missing keys become empty cells.
func parseJSON(data []byte) ([]string, [][]string, error) {
	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, nil, fmt.Errorf("parsing json array: %w", err)
	}

	keySet := make(map[string]struct{})
	for _, obj := range objects {
		for k := range obj {
			keySet[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(keySet))
	for k := range keySet {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	rows := make([][]string, 0, len(objects))
	for _, obj := range objects {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = cellValue(obj[col])
		}
		if allEmpty(row) {
			continue
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}

func cellValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
