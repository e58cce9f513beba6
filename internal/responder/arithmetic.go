package responder

import (
	"math"
	"strconv"
	"strings"
)

const divisionByZero = "undefined (division by zero)"

// evaluate applies a single binary operator to two unsigned digit runs.
// Operands too large for float64 become ±Inf rather than an error.
func evaluate(left, op, right string) string {
	a, _ := strconv.ParseFloat(left, 64)
	b, _ := strconv.ParseFloat(right, 64)

	var result float64
	switch op {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return divisionByZero
		}
		result = a / b
	default:
		return formatNumber(math.NaN())
	}
	return formatNumber(result)
}

// formatNumber renders v as the shortest decimal that round-trips, switching
// to exponent form outside [1e-6, 1e21) the same way browsers print numbers.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		// Go pads the exponent to two digits.
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
