package jsonvalue

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

var ErrInvalidNumber = errors.New("invalid number")

// NumberLiteral is the encoder-facing form of a number scalar.
type NumberLiteral = json.Number

// CanonicalNumber normalizes a number literal so that numerically equal
// literals produce the same text. Integer literals keep every digit, integral
// floats are written without fraction or exponent and -0 becomes 0.
func CanonicalNumber(literal string) (string, error) {
	if !strings.ContainsAny(literal, ".eE") {
		i, ok := new(big.Int).SetString(literal, 10)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrInvalidNumber, literal)
		}
		return i.String(), nil
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidNumber, literal)
	}

	return formatFloat(f), nil
}

func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	if f != math.Trunc(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if math.Abs(f) < math.MaxInt64 {
		return strconv.FormatInt(int64(f), 10)
	}
	// beyond int64 every float64 is integral; print its exact integer value
	i, _ := big.NewFloat(f).Int(nil)
	return i.String()
}
