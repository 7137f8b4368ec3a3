package utils

import (
	"fmt"
	"strconv"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatPeso renders an amount the way tickets show it, e.g. "₱1160".
// Whole amounts drop trailing zeros; the scanner contract depends on
// this exact shape.
func FormatPeso(amount float64) string {
	return "₱" + strconv.FormatFloat(amount, 'f', -1, 64)
}
