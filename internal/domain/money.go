package domain

import "math"

// Cents is a monetary amount in integer cents. Attribution math runs in
// cents so rounding residuals can be assigned exactly.
type Cents int64

// CentsFromFloat converts a currency-unit amount to cents, rounding to
// the nearest cent.
func CentsFromFloat(v float64) Cents {
	return Cents(math.Round(v * 100))
}

// Float converts c back to currency units.
func (c Cents) Float() float64 {
	return float64(c) / 100
}
