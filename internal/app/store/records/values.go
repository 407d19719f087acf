// internal/app/store/records/values.go
package recordstore

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Record is one JSON object as the collection API sees it.
type Record map[string]any

// Decode parses a JSON object, keeping integers as int64.
func Decode(b []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, invalid("record must be a JSON object")
	}
	return Record(fromJSON(raw).(map[string]any)), nil
}

func fromJSON(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = fromJSON(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = fromJSON(e)
		}
		return t
	}
	return v
}

// isRefKey reports whether a field holds a record id: "id" itself or any
// camelCase "...Id" foreign key.
func isRefKey(k string) bool {
	return k == "id" || (len(k) > 2 && strings.HasSuffix(k, "Id"))
}

// normalizeRefs stores integer-looking ids as int64 so that 5 and "5"
// land as the same value and unique indexes see them as equal.
func normalizeRefs(r Record) {
	for k, v := range r {
		if !isRefKey(k) {
			continue
		}
		if n, ok := refInt(v); ok {
			r[k] = n
		}
	}
}

func refInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case int:
		return int64(t), true
	case float64:
		return models.ParseID(jsonNumber(t)).Int64()
	case string:
		return models.ParseID(t).Int64()
	}
	return 0, false
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

// matchID builds an equality filter that accepts an id in either its
// numeric or string spelling.
func matchID(raw string) any {
	id := models.ParseID(raw)
	if n, ok := id.Int64(); ok {
		return bson.M{"$in": bson.A{n, id.String()}}
	}
	return id.String()
}

// matchValue is matchID generalized to query-string values: numbers match
// numerically, "true"/"false" match booleans, anything matches its string.
func matchValue(raw string) bson.A {
	alts := bson.A{raw}
	if n, ok := models.ParseID(raw).Int64(); ok {
		alts = append(alts, n)
	}
	switch raw {
	case "true":
		alts = append(alts, true)
	case "false":
		alts = append(alts, false)
	}
	return alts
}

// toJSON converts a decoded Mongo document into plain JSON values, dropping
// _id and password.
func toJSON(doc bson.M) Record {
	out := make(Record, len(doc))
	for k, v := range doc {
		if k == "_id" || k == "password" {
			continue
		}
		out[k] = plain(v)
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plain(e)
		}
		return m
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case bson.A:
		a := make([]any, len(t))
		for i, e := range t {
			a[i] = plain(e)
		}
		return a
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339Nano)
	case primitive.ObjectID:
		return t.Hex()
	case int32:
		return int64(t)
	}
	return v
}
