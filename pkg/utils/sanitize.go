package utils

import "go.mongodb.org/mongo-driver/bson"

// Sanitize deep-strips nil values from a write payload: nil map entries are
// removed and nil slice elements are dropped, recursively. Element order in
// slices is preserved. Everything else passes through unchanged.
//
// The stores run every payload through Sanitize before writing so the backing
// collections never contain explicit nulls; a field is either present with a
// value or absent entirely.
func Sanitize(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		out := bson.M{}
		for k, val := range t {
			if val == nil {
				continue
			}
			clean := Sanitize(val)
			if clean == nil {
				continue
			}
			out[k] = clean
		}
		return out
	case map[string]interface{}:
		return Sanitize(bson.M(t))
	case bson.A:
		out := make(bson.A, 0, len(t))
		for _, val := range t {
			if val == nil {
				continue
			}
			if clean := Sanitize(val); clean != nil {
				out = append(out, clean)
			}
		}
		return out
	case []interface{}:
		return Sanitize(bson.A(t))
	default:
		return v
	}
}

// SanitizeDoc is Sanitize specialized to a document payload, which is what the
// stores hand it.
func SanitizeDoc(doc bson.M) bson.M {
	return Sanitize(doc).(bson.M)
}
