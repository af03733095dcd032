// Package client also provides result mapping: turning *sql.Rows into
// either plain maps (for the generator's untyped select shapes) or caller
// structs (for callers that do have a destination type).
package client

import (
	"database/sql"
	"reflect"
	"strings"
)

// RowsToMaps drains rows into one map[string]interface{} per row, keyed by
// column name. This is the mapping path query/sqlgen's output needs most of
// the time: a generated SELECT's column list is whatever the query asked
// for, not a fixed struct shape.
func RowsToMaps(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ScanRows scans SQL rows into a slice of structs, matching columns to
// fields by `db` tag or name (case-insensitively). Use this when the
// caller has a generated record type to fill in, rather than RowsToMaps'
// loose map shape.
func ScanRows[T any](rows *sql.Rows) ([]T, error) {
	var results []T
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		var result T
		val := reflect.ValueOf(&result).Elem()
		typ := val.Type()

		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))

		for i, colName := range columns {
			field := findFieldByName(typ, colName)
			if field.Name != "" && val.FieldByIndex(field.Index).CanAddr() {
				valuePtrs[i] = val.FieldByIndex(field.Index).Addr().Interface()
			} else {
				var nullStr sql.NullString
				valuePtrs[i] = &nullStr
			}
			values[i] = valuePtrs[i]
		}

		if err := rows.Scan(values...); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ScanRow scans a single SQL row into a struct, using the struct's own `db`
// tags (or field names) to determine the expected column list.
func ScanRow[T any](row *sql.Row) (*T, error) {
	var result T
	val := reflect.ValueOf(&result).Elem()
	typ := val.Type()

	columns := structColumns(typ)
	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))

	for i, colName := range columns {
		field := findFieldByName(typ, colName)
		if field.Name != "" && val.FieldByIndex(field.Index).CanAddr() {
			valuePtrs[i] = val.FieldByIndex(field.Index).Addr().Interface()
		} else {
			var nullStr sql.NullString
			valuePtrs[i] = &nullStr
		}
		values[i] = valuePtrs[i]
	}

	if err := row.Scan(values...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func findFieldByName(typ reflect.Type, colName string) reflect.StructField {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Name == colName {
			return field
		}
		if dbTag := field.Tag.Get("db"); dbTag != "" {
			if tagParts := strings.Split(dbTag, ","); len(tagParts) > 0 && tagParts[0] == colName {
				return field
			}
		}
		if strings.EqualFold(field.Name, colName) {
			return field
		}
	}
	return reflect.StructField{}
}

func structColumns(typ reflect.Type) []string {
	var columns []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if dbTag := field.Tag.Get("db"); dbTag != "" {
			if tagParts := strings.Split(dbTag, ","); len(tagParts) > 0 && tagParts[0] != "" {
				columns = append(columns, tagParts[0])
				continue
			}
		}
		columns = append(columns, field.Name)
	}
	return columns
}
