// internal/app/system/export/row.go
package export

// Field is one named cell.
type Field struct {
	Key   string
	Value any
}

// Row is a flat record with ordered keys. Order matters: the header of a
// sheet is the key order of its first row.
type Row []Field

// NewRow builds a Row from alternating key/value pairs. A trailing key
// without a value is dropped.
func NewRow(pairs ...any) Row {
	r := make(Row, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		k, _ := pairs[i].(string)
		r = append(r, Field{Key: k, Value: pairs[i+1]})
	}
	return r
}

// Keys returns the row's keys in order.
func (r Row) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value stored under key.
func (r Row) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}
