package repository

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/dax233/brainhole/internal/db"
	"github.com/dax233/brainhole/internal/domain"
)

// identifierPattern matches safe SQL identifiers for column names that
// come from configuration rather than code.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// checkTable rejects table names outside the migration allowlist before
// they are interpolated into SQL. Table names come from configuration,
// not user input, but the allowlist also keeps the bookkeeping tables
// out of reach of random fetch and search.
func checkTable(table string) error {
	if !db.IsLexiconTable(table) {
		return fmt.Errorf("table %q is not a lexicon table", table)
	}
	return nil
}

// checkColumn rejects column names that are not plain identifiers.
func checkColumn(column string) error {
	if !identifierPattern.MatchString(column) {
		return fmt.Errorf("invalid column name %q", column)
	}
	return nil
}

// scanRecord reads the current row of rows into a Record keyed by column
// name. []byte values are converted to string so formatters see text.
func scanRecord(rows *sql.Rows, columns []string) (domain.Record, error) {
	values := make([]any, len(columns))
	for i := range values {
		values[i] = new(any)
	}
	if err := rows.Scan(values...); err != nil {
		return nil, fmt.Errorf("scanning row: %w", err)
	}

	rec := make(domain.Record, len(columns))
	for i, col := range columns {
		v := *(values[i].(*any))
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		rec[col] = v
	}
	return rec, nil
}
