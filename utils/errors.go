package utils

import "errors"

// ErrPrecisionLoss reports that a numeric conversion would change the value
// beyond the wire format's tolerance. Conversions never round further to
// recover; the caller must supply a representable value.
var ErrPrecisionLoss = errors.New("precision loss")
