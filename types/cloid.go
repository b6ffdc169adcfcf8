package types

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidCloid is returned when a client order ID is malformed or out of range.
var ErrInvalidCloid = errors.New("invalid cloid")

// Cloid represents a client order ID: a 128-bit value rendered as
// "0x" followed by exactly 32 lowercase hex characters.
type Cloid struct {
	raw string
}

// NewCloidFromInt creates a Cloid from a non-negative integer.
func NewCloidFromInt(value int64) (*Cloid, error) {
	if value < 0 {
		return nil, fmt.Errorf("cloid must be non-negative, got %d: %w", value, ErrInvalidCloid)
	}
	return &Cloid{raw: fmt.Sprintf("0x%032x", value)}, nil
}

// NewCloidFromBigInt creates a Cloid from a non-negative integer of at most 128 bits.
func NewCloidFromBigInt(value *big.Int) (*Cloid, error) {
	if value.Sign() < 0 {
		return nil, fmt.Errorf("cloid must be non-negative, got %s: %w", value, ErrInvalidCloid)
	}
	if value.BitLen() > 128 {
		return nil, fmt.Errorf("cloid exceeds 128 bits: %s: %w", value, ErrInvalidCloid)
	}
	return &Cloid{raw: fmt.Sprintf("0x%032x", value)}, nil
}

// NewCloidFromString creates a Cloid from a hex string. Uppercase hex digits
// are normalized to lowercase.
func NewCloidFromString(value string) (*Cloid, error) {
	value = strings.ToLower(value)
	if !strings.HasPrefix(value, "0x") {
		return nil, fmt.Errorf("cloid must start with 0x: %w", ErrInvalidCloid)
	}
	digits := value[2:]
	if len(digits) != 32 {
		return nil, fmt.Errorf("cloid must be 16 bytes (32 hex chars), got %d: %w", len(digits), ErrInvalidCloid)
	}
	for _, c := range digits {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return nil, fmt.Errorf("cloid contains non-hex character %q: %w", c, ErrInvalidCloid)
		}
	}
	return &Cloid{raw: value}, nil
}

// ToRaw returns the raw hex string representation
func (c *Cloid) ToRaw() string {
	return c.raw
}

// String returns the string representation
func (c *Cloid) String() string {
	return c.raw
}

// MarshalJSON implements json.Marshaler
func (c *Cloid) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.raw + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Cloid) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("cloid must be a JSON string: %w", ErrInvalidCloid)
	}
	cloid, err := NewCloidFromString(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	c.raw = cloid.raw
	return nil
}
