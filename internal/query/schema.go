package query

// Schema is the per-entity allow-list the parser validates untrusted query
// parameters against. External (JSON) field names map to database columns;
// anything not listed is rejected at parse time instead of being passed
// through to the storage layer.
type Schema struct {
	// Columns maps external field names to column names. A field listed here
	// may be filtered, sorted and selected.
	Columns map[string]string

	// Relations maps external include names to ORM association names.
	Relations map[string]string

	// SearchFields are the external fields a free-text search spans by
	// default. Callers may narrow the set with the searchFields parameter,
	// but only to fields listed in Columns.
	SearchFields []string
}

func (s Schema) column(field string) (string, bool) {
	col, ok := s.Columns[field]
	return col, ok
}
