package models

// FieldValue is one table cell's parsed number. Valid is false when the source
// cell text could not be parsed; such cells keep their column position so the
// indices of the remaining columns stay stable.
type FieldValue struct {
	Num   float64
	Valid bool
}

// CountryRecord holds one country's extracted statistics. Values preserves the
// source table's column order for positional access; Fields maps header names
// to the same numbers. A cell that failed parsing has an invalid Values slot
// and no Fields entry.
type CountryRecord struct {
	Fields map[string]float64
	Values []FieldValue
}

// ValueAt returns the parsed number at column index i in extraction order.
// The second result is false when the column is absent or its cell was
// unparsable.
func (r CountryRecord) ValueAt(i int) (float64, bool) {
	if i < 0 || i >= len(r.Values) {
		return 0, false
	}
	v := r.Values[i]
	return v.Num, v.Valid
}

// CountryStats maps a whitespace-normalized country name to its extracted
// record.
type CountryStats map[string]CountryRecord
