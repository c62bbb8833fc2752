package tensor

import (
	"fmt"
	"math"
)

// SafeLogFloor is the smallest argument Backend.SafeLog passes to the logarithm,
// so SafeLog(0) evaluates to -50 on every backend.
var SafeLogFloor = math.Exp(-50)

// ScalarValue converts a scalar operand of a backend scalar operation to float64.
// Accepted types are float32, float64 and int; anything else panics with op as prefix.
func ScalarValue(op string, scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	case int:
		return float64(s)
	default:
		panic(fmt.Sprintf("%s: unsupported scalar type %T", op, scalar))
	}
}
