package utils

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// OrderedMap is a string-keyed map that preserves key insertion order.
//
// Action hashing depends on byte-exact serialization, and the exchange
// recomputes the hash from the same logical action, so key order is part of
// the wire contract. Go's native maps iterate in random order and must never
// be used for actions; every action the SDK builds is an OrderedMap.
//
// Values are restricted to a closed domain: string, bool, int, int64,
// uint64, float64, nil, []any of these, and nested *OrderedMap. Encoding
// any other type is an error, never a best-effort guess.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap builds an OrderedMap from alternating key/value pairs:
//
//	NewOrderedMap("type", "cancel", "cancels", cancels)
//
// It panics if given an odd number of arguments or a non-string key, which
// is a programming error at the call site, not input validation.
func NewOrderedMap(pairs ...any) *OrderedMap {
	if len(pairs)%2 != 0 {
		panic("utils: NewOrderedMap requires key/value pairs")
	}
	m := &OrderedMap{
		keys:   make([]string, 0, len(pairs)/2),
		values: make(map[string]any, len(pairs)/2),
	}
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("utils: NewOrderedMap key %d is %T, not string", i/2, pairs[i]))
		}
		m.Set(key, pairs[i+1])
	}
	return m
}

// Set stores value under key. A new key is appended; overwriting an
// existing key keeps its original position. Returns the map for chaining.
func (m *OrderedMap) Set(key string, value any) *OrderedMap {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, preserving the relative order of the remaining keys.
func (m *OrderedMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *OrderedMap) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Clone returns a shallow copy: nested maps and slices are shared.
func (m *OrderedMap) Clone() *OrderedMap {
	c := &OrderedMap{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]any, len(m.values)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// EncodeMsgpack implements msgpack.CustomEncoder. Keys are written in
// insertion order with explicit encoder calls, so the byte stream is fully
// determined by the map's construction. Non-negative integers take the
// minimal-width unsigned format, matching the exchange's reference encoder.
func (m *OrderedMap) EncodeMsgpack(enc *msgpack.Encoder) error {
	if m == nil {
		return enc.EncodeNil()
	}
	if err := enc.EncodeMapLen(len(m.keys)); err != nil {
		return err
	}
	for _, k := range m.keys {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := encodeValue(enc, m.values[k]); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	return nil
}

func encodeValue(enc *msgpack.Encoder, v any) error {
	switch v := v.(type) {
	case nil:
		return enc.EncodeNil()
	case string:
		return enc.EncodeString(v)
	case bool:
		return enc.EncodeBool(v)
	case int:
		return enc.EncodeInt(int64(v))
	case int64:
		return enc.EncodeInt(v)
	case uint64:
		return enc.EncodeUint(v)
	case float64:
		return enc.EncodeFloat64(v)
	case []any:
		if err := enc.EncodeArrayLen(len(v)); err != nil {
			return err
		}
		for i, elem := range v {
			if err := encodeValue(enc, elem); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		return nil
	case *OrderedMap:
		return v.EncodeMsgpack(enc)
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
}

// MarshalJSON implements json.Marshaler with keys in insertion order, over
// the same closed value domain as EncodeMsgpack. The request envelope's
// action field and the hashed bytes therefore always describe the action
// with identical field order.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		if err := marshalJSONValue(&buf, m.values[k]); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalJSONValue(buf *bytes.Buffer, v any) error {
	switch v := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case string, bool, int, int64, uint64, float64:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	case []any:
		buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalJSONValue(buf, elem); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case *OrderedMap:
		b, err := v.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
}
