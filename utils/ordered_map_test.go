package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestOrderedMapMsgpackMatchesReferenceBytes(t *testing.T) {
	m := NewOrderedMap(
		"type", "dummy",
		"num", uint64(100000000000),
	)

	data, err := msgpack.Marshal(m)
	if err != nil {
		t.Fatalf("msgpack.Marshal() error = %v", err)
	}

	// fixmap(2), fixstr "type" => fixstr "dummy", fixstr "num" => uint64.
	want := "82a474797065a564756d6d79a36e756dcf000000174876e800"
	if got := fmt.Sprintf("%x", data); got != want {
		t.Errorf("msgpack bytes = %s, want %s", got, want)
	}
}

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap()
	m.Set("c", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	if got := m.Keys(); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Errorf("Keys() = %v, want [c a b]", got)
	}

	// Overwriting keeps the original position.
	m.Set("c", 99)
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Errorf("Keys() after overwrite = %v, want [c a b]", got)
	}
	if v, _ := m.Get("c"); v != 99 {
		t.Errorf("Get(c) = %v, want 99", v)
	}
}

func TestOrderedMapDelete(t *testing.T) {
	m := NewOrderedMap("a", 1, "b", 2, "c", 3)
	m.Delete("b")

	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Keys() after delete = %v, want [a c]", got)
	}
	if _, ok := m.Get("b"); ok {
		t.Error("Get(b) should report absence after delete")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}

	// Deleting an absent key is a no-op.
	m.Delete("zz")
	if m.Len() != 2 {
		t.Errorf("Len() after deleting absent key = %d, want 2", m.Len())
	}
}

func TestOrderedMapJSONOrder(t *testing.T) {
	m := NewOrderedMap(
		"type", "order",
		"orders", []any{
			NewOrderedMap("a", 1, "b", true, "p", "1800"),
		},
		"grouping", "na",
		"note", nil,
	)

	got, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"type":"order","orders":[{"a":1,"b":true,"p":"1800"}],"grouping":"na","note":null}`
	if string(got) != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}
}

func TestOrderedMapJSONAndMsgpackAgreeOnOrder(t *testing.T) {
	m := NewOrderedMap("z", 1, "a", 2, "m", 3)

	jsonBytes, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if want := `{"z":1,"a":2,"m":3}`; string(jsonBytes) != want {
		t.Errorf("json.Marshal() = %s, want %s", jsonBytes, want)
	}

	packed, err := msgpack.Marshal(m)
	if err != nil {
		t.Fatalf("msgpack.Marshal() error = %v", err)
	}
	// fixmap(3) with keys in the same order: z, a, m.
	if want := "83a17a01a16102a16d03"; fmt.Sprintf("%x", packed) != want {
		t.Errorf("msgpack bytes = %x, want %s", packed, want)
	}
}

func TestOrderedMapRejectsUnsupportedValues(t *testing.T) {
	m := NewOrderedMap("bad", float32(1.5))

	if _, err := msgpack.Marshal(m); err == nil {
		t.Error("msgpack.Marshal() should fail for float32 values")
	}
	if _, err := json.Marshal(m); err == nil {
		t.Error("json.Marshal() should fail for float32 values")
	}
}

func TestOrderedMapClone(t *testing.T) {
	m := NewOrderedMap("a", 1, "b", 2)
	c := m.Clone()
	c.Set("c", 3)
	c.Delete("a")

	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("original Keys() = %v, want [a b]", got)
	}
	if got := c.Keys(); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("clone Keys() = %v, want [b c]", got)
	}
}

func TestNewOrderedMapPanicsOnOddPairs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewOrderedMap() with an odd argument count should panic")
		}
	}()
	NewOrderedMap("key")
}

func TestOrderedMapIntEncodesAsMinimalUint(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		{int(1), "a16b01"},
		{int64(127), "a16b7f"},
		{int(128), "a16bcc80"},
		{int64(65535), "a16bcdffff"},
		{uint64(4294967295), "a16bceffffffff"},
		{int64(4294967296), "a16bcf0000000100000000"},
		{int64(-1), "a16bff"},
	}

	for _, tc := range cases {
		m := NewOrderedMap("k", tc.value)
		data, err := msgpack.Marshal(m)
		if err != nil {
			t.Errorf("msgpack.Marshal(%v) error = %v", tc.value, err)
			continue
		}
		// Strip the fixmap(1) header byte 0x81.
		if got := fmt.Sprintf("%x", data[1:]); got != tc.want {
			t.Errorf("msgpack(%T %v) = %s, want %s", tc.value, tc.value, got, tc.want)
		}
	}
}
