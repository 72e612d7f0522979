// Package locale models JSON localization files at the level of their
// top-level keys: parsing in source order, raw duplicate scanning,
// missing-key diffs and key-order sorting.
package locale

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	jsoniter "github.com/json-iterator/go"

	"cvri18n/internal/errors"
)

// Document is a locale file reduced to its top-level entries. Keys keep the
// order in which they first appear in the source text and values are kept as
// raw JSON so they can be written back untouched.
type Document struct {
	entries *linkedhashmap.Map
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{entries: linkedhashmap.New()}
}

// ParseDocument parses data as a JSON object. path is only used to label
// errors. A repeated key keeps its first position and takes the last value,
// the same way a map-backed decoder would collapse it.
func ParseDocument(path string, data []byte) (*Document, error) {
	if err := validate(path, data); err != nil {
		return nil, err
	}

	iter := jsoniter.ParseBytes(jsoniter.ConfigCompatibleWithStandardLibrary, data)
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, errors.New(errors.NotAnObject, path, "root is not an object", nil)
	}

	doc := NewDocument()
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		doc.Set(key, bytes.TrimSpace(it.SkipAndReturnBytes()))
		return it.Error == nil
	})
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, errors.New(errors.InvalidJSON, path, "invalid JSON", iter.Error)
	}

	return doc, nil
}

// validate reports malformed JSON with the standard library's positioned
// syntax errors.
func validate(path string, data []byte) error {
	if json.Valid(data) {
		return nil
	}
	var v interface{}
	err := json.Unmarshal(data, &v)
	return errors.New(errors.InvalidJSON, path, "invalid JSON", err)
}

// Set stores raw under key. New keys are appended; existing keys keep their position.
func (d *Document) Set(key string, raw json.RawMessage) {
	d.entries.Put(key, append(json.RawMessage(nil), raw...))
}

// Get returns the raw value stored under key.
func (d *Document) Get(key string) (json.RawMessage, bool) {
	v, ok := d.entries.Get(key)
	if !ok {
		return nil, false
	}
	return v.(json.RawMessage), true
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.entries.Get(key)
	return ok
}

// Len returns the number of top-level keys.
func (d *Document) Len() int {
	return d.entries.Size()
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, d.entries.Size())
	for _, k := range d.entries.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}
