// Package xmljson converts XML documents into JSON-ready trees, guided by an
// XML Schema.
//
// Decoded trees use the common schema-driven conventions:
// attributes become "@name" keys, character data next to attributes or
// children goes under "$", and elements that may repeat are always arrays.
// SiteFixup rewrites those markers into plain keys for static-site data files.
package xmljson

import (
	"bytes"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a JSON object that keeps its keys in insertion order.
type Object struct {
	pairs *orderedmap.OrderedMap[string, any]
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{pairs: orderedmap.New[string, any]()}
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (o *Object) Set(key string, value any) {
	o.pairs.Set(key, value)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	return o.pairs.Get(key)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.pairs.Len())
	for pair := o.pairs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return o.pairs.Len()
}

// MarshalJSON encodes the object with keys in insertion order and without
// HTML escaping.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
