package helpers

import "database/sql"

// GetContentNullString converts a string value to sql.NullString.
// Empty strings map to SQL NULL.
func GetContentNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// GetNullInt64 converts an int64 pointer to sql.NullInt64.
func GetNullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}
