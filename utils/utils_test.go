package utils

import (
	"errors"
	"math"
	"testing"
)

func TestFloatToWire(t *testing.T) {
	cases := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{1, "1"},
		{100, "100"},
		{1800.0, "1800"},
		{1670.1, "1670.1"},
		{0.0147, "0.0147"},
		{1.23456789, "1.23456789"},
		{0.00000001, "0.00000001"},
		{99999999.0, "99999999"},
		{0.1, "0.1"},
		{0.01, "0.01"},
		{0.001, "0.001"},
		{10.5, "10.5"},
		{100.00000001, "100.00000001"},
		{42.0, "42"},
		{1234.5678, "1234.5678"},
		{0.00001234, "0.00001234"},
		{50.5, "50.5"},
		{200.0, "200"},
		{0.12345678, "0.12345678"},
	}

	for _, tc := range cases {
		got, err := FloatToWire(tc.input)
		if err != nil {
			t.Errorf("FloatToWire(%v) error = %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("FloatToWire(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFloatToWireNegativeZero(t *testing.T) {
	negZero := math.Copysign(0, -1)
	got, err := FloatToWire(negZero)
	if err != nil {
		t.Fatalf("FloatToWire(-0.0) error = %v", err)
	}
	if got != "0" {
		t.Errorf("FloatToWire(-0.0) = %q, want %q", got, "0")
	}
}

func TestFloatToWirePrecisionLoss(t *testing.T) {
	// A ninth decimal cannot survive the 8-decimal wire format.
	_, err := FloatToWire(0.000000001)
	if !errors.Is(err, ErrPrecisionLoss) {
		t.Fatalf("FloatToWire(1e-9) error = %v, want ErrPrecisionLoss", err)
	}
}

func TestFloatToIntForHashing(t *testing.T) {
	cases := []struct {
		input float64
		want  int64
	}{
		{0, 0},
		{1, 100000000},
		{100, 10000000000},
		{1800.0, 180000000000},
		{1670.1, 167010000000},
		{0.0147, 1470000},
		{0.00000001, 1},
		{99999999.0, 9999999900000000},
		{42.5, 4250000000},
		{1234.5678, 123456780000},
		{1.033, 103300000},
		{1000, 100000000000},
	}

	for _, tc := range cases {
		got, err := FloatToIntForHashing(tc.input)
		if err != nil {
			t.Errorf("FloatToIntForHashing(%v) error = %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("FloatToIntForHashing(%v) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestFloatToIntForHashingPrecisionLoss(t *testing.T) {
	_, err := FloatToIntForHashing(0.000000001)
	if !errors.Is(err, ErrPrecisionLoss) {
		t.Fatalf("FloatToIntForHashing(1e-9) error = %v, want ErrPrecisionLoss", err)
	}
}

func TestFloatToIntOverflow(t *testing.T) {
	// 1e12 * 10^8 = 1e20, past the int64 range.
	_, err := FloatToIntForHashing(1e12)
	if !errors.Is(err, ErrPrecisionLoss) {
		t.Fatalf("FloatToIntForHashing(1e12) error = %v, want ErrPrecisionLoss", err)
	}
}

func TestFloatToUsdInt(t *testing.T) {
	cases := []struct {
		input float64
		want  int64
	}{
		{0, 0},
		{1, 1000000},
		{100, 100000000},
		{50.5, 50500000},
		{200.123456, 200123456},
		{0.000001, 1},
	}

	for _, tc := range cases {
		got, err := FloatToUsdInt(tc.input)
		if err != nil {
			t.Errorf("FloatToUsdInt(%v) error = %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("FloatToUsdInt(%v) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestRoundPrice(t *testing.T) {
	cases := []struct {
		px       float64
		sigFigs  int
		decimals int
		want     float64
	}{
		{0, 5, 6, 0},
		{1234.5678, 5, 6, 1234.6},
		{0.00012345678, 5, 8, 0.00012346},
		{1670.1, 5, 6, 1670.1},
		{123456, 5, 6, 123460},
	}

	for _, tc := range cases {
		got := RoundPrice(tc.px, tc.sigFigs, tc.decimals)
		if got != tc.want {
			t.Errorf("RoundPrice(%v, %d, %d) = %v, want %v", tc.px, tc.sigFigs, tc.decimals, got, tc.want)
		}
	}
}

func TestGetTimestampMs(t *testing.T) {
	ts := GetTimestampMs()
	// Sanity bound: after 2023-01-01 in milliseconds.
	if ts < 1672531200000 {
		t.Errorf("GetTimestampMs() = %d, too small to be a millisecond timestamp", ts)
	}
}
