package dataset

import (
	"database/sql"
	"strings"
)

// ScanRows drains a query result into a Table. Column kinds are mapped from
// the driver's database type names; values are normalized to the table's
// scalar set (int64, float64, bool, string, nil).
func ScanRows(rows *sql.Rows) (*Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	kinds := make([]Kind, len(cols))
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			kinds[i] = kindFromDatabaseType(ct.DatabaseTypeName())
		}
	}

	table := New(cols, kinds)

	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make([]any, len(cols))
		for i, v := range values {
			row[i] = normalizeValue(v)
		}
		if err := table.AppendRawRow(row); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return table, nil
}

// kindFromDatabaseType maps a driver type name to a column kind.
func kindFromDatabaseType(name string) Kind {
	switch strings.ToUpper(name) {
	case "TINYINT", "SMALLINT", "INTEGER", "INT", "BIGINT", "HUGEINT",
		"UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT":
		return KindInt
	case "FLOAT", "REAL", "DOUBLE", "DECIMAL", "NUMERIC":
		return KindFloat
	case "BOOLEAN", "BOOL":
		return KindBool
	default:
		return KindString
	}
}

// normalizeValue collapses driver-specific scalar types onto the table's
// value set.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return int64(val)
	case float32:
		return float64(val)
	default:
		return val
	}
}
