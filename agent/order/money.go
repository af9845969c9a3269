package order

import (
	"fmt"
	"math"
	"strconv"
)

// Cents is a non-negative amount of money in hundredths of the currency unit.
type Cents int64

// CentsFromFloat rounds a decimal amount to the nearest cent.
func CentsFromFloat(v float64) (Cents, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid amount %v", v)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative amount %v", v)
	}
	return Cents(math.Round(v * 100)), nil
}

func (c Cents) Float64() float64 {
	return float64(c) / 100
}

func (c Cents) String() string {
	return strconv.FormatFloat(c.Float64(), 'f', 2, 64)
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("decode price: %w", err)
	}
	parsed, err := CentsFromFloat(v)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
