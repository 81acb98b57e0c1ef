package utils

import "encoding/json"

// Optional distinguishes an absent JSON field from an explicit null: Set is
// true whenever the key was present, and Value is nil for an explicit null.
// A plain pointer cannot make this distinction, since encoding/json leaves
// it nil in both cases.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}
