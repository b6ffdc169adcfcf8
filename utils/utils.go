// Package utils provides numeric wire conversion and canonical action
// encoding for the Hyperliquid SDK.
package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FloatToWire converts a float to the exchange's canonical decimal string:
// at most 8 fractional digits, trailing zeros and a trailing decimal point
// stripped, negative zero normalized to "0".
//
// The 8-decimal rounding must not change the value: if the formatted string
// parses back more than 1e-12 away from x, the conversion fails with
// ErrPrecisionLoss instead of silently distorting the amount.
func FloatToWire(x float64) (string, error) {
	rounded := fmt.Sprintf("%.8f", x)

	parsedBack, err := strconv.ParseFloat(rounded, 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse rounded value: %w", err)
	}

	if math.Abs(parsedBack-x) >= 1e-12 {
		return "", fmt.Errorf("float_to_wire causes rounding: %f: %w", x, ErrPrecisionLoss)
	}

	if rounded == "-0.00000000" {
		rounded = "0.00000000"
	}

	normalized := strings.TrimRight(rounded, "0")
	normalized = strings.TrimRight(normalized, ".")

	return normalized, nil
}

// FloatToIntForHashing converts a float to an integer for hashing (8 decimals)
func FloatToIntForHashing(x float64) (int64, error) {
	return FloatToInt(x, 8)
}

// FloatToUsdInt converts a float to a USD integer (6 decimals)
func FloatToUsdInt(x float64) (int64, error) {
	return FloatToInt(x, 6)
}

// FloatToInt scales x by 10^power and rounds to the nearest integer.
// The rounding delta must stay below 1e-3, and the result must fit in an
// int64; either violation is ErrPrecisionLoss.
func FloatToInt(x float64, power int) (int64, error) {
	multiplier := math.Pow(10, float64(power))
	withDecimals := x * multiplier

	rounded := math.Round(withDecimals)
	if math.Abs(rounded-withDecimals) >= 1e-3 {
		return 0, fmt.Errorf("float_to_int causes rounding: %f: %w", x, ErrPrecisionLoss)
	}
	if rounded >= 1<<63 || rounded < -(1<<63) {
		return 0, fmt.Errorf("float_to_int overflows int64: %f: %w", x, ErrPrecisionLoss)
	}

	return int64(rounded), nil
}

// GetTimestampMs returns the current timestamp in milliseconds
func GetTimestampMs() int64 {
	return time.Now().UnixMilli()
}

// RoundPrice rounds a price to the specified number of significant figures and decimals
func RoundPrice(px float64, sigFigs int, decimals int) float64 {
	if px == 0 {
		return 0
	}

	magnitude := math.Floor(math.Log10(math.Abs(px)))
	power := float64(sigFigs-1) - magnitude
	multiplier := math.Pow(10, power)

	rounded := math.Round(px*multiplier) / multiplier

	decimalMultiplier := math.Pow(10, float64(decimals))
	rounded = math.Round(rounded*decimalMultiplier) / decimalMultiplier

	return rounded
}
