// Package document turns stored MongoDB records into client-facing JSON maps.
package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDField is the key MongoDB stores the document identifier under.
const IDField = "_id"

// TimestampFields lists the keys rendered as RFC 3339 text when serialized.
var TimestampFields = []string{"created_at", "updated_at"}

type timer interface {
	Time() time.Time
}

// Serialize returns a copy of doc where an ObjectID "_id" is replaced by a
// string "id" and known timestamp fields are rendered as text. The input map
// is not modified.
func Serialize(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}

	if oid, ok := out[IDField].(primitive.ObjectID); ok {
		delete(out, IDField)
		out["id"] = oid.Hex()
	}

	for _, key := range TimestampFields {
		v, ok := out[key]
		if !ok {
			continue
		}
		if text, ok := formatTime(v); ok {
			out[key] = text
		}
	}

	return out
}

// SerializeAll serializes every document. The result is never nil.
func SerializeAll[M ~map[string]any](docs []M) []map[string]any {
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, Serialize(d))
	}
	return out
}

func formatTime(v any) (string, bool) {
	var t time.Time
	switch tv := v.(type) {
	case time.Time:
		t = tv
	case *time.Time:
		if tv == nil {
			return "", false
		}
		t = *tv
	case primitive.Timestamp:
		t = time.Unix(int64(tv.T), 0)
	case timer:
		t = tv.Time()
	default:
		return "", false
	}
	return t.UTC().Format(time.RFC3339Nano), true
}
