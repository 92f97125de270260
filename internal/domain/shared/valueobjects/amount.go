package valueobjects

import "fmt"

// NanotonPerTon is the number of smallest units in one TON.
const NanotonPerTon = 1_000_000_000

// Amount is a monetary amount in nanoton, the smallest unit. All arithmetic
// and comparisons happen on the integer representation; floating point never
// touches money.
type Amount struct {
	nano int64
}

// NewAmount creates an Amount from a nanoton value.
func NewAmount(nano int64) Amount {
	return Amount{nano: nano}
}

// Nano returns the amount in nanoton.
func (a Amount) Nano() int64 {
	return a.nano
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a.nano > 0
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.nano == 0
}

// Equals compares two amounts for exact equality.
func (a Amount) Equals(other Amount) bool {
	return a.nano == other.nano
}

// Add returns the sum of two amounts.
func (a Amount) Add(other Amount) Amount {
	return Amount{nano: a.nano + other.nano}
}

// Sub returns the difference of two amounts.
func (a Amount) Sub(other Amount) Amount {
	return Amount{nano: a.nano - other.nano}
}

// Neg returns the negated amount, used for the debit leg of a transfer.
func (a Amount) Neg() Amount {
	return Amount{nano: -a.nano}
}

// SplitEqually divides the amount into n equal shares. It returns an error
// when the amount does not divide evenly; uneven splits are rejected rather
// than silently rounding a participant's share.
func (a Amount) SplitEqually(n int) (Amount, error) {
	if n <= 0 {
		return Amount{}, fmt.Errorf("cannot split amount among %d participants", n)
	}
	if a.nano%int64(n) != 0 {
		return Amount{}, fmt.Errorf("amount %d nanoton is not evenly divisible by %d", a.nano, n)
	}
	return Amount{nano: a.nano / int64(n)}, nil
}

// String renders the amount in TON with nanoton precision.
func (a Amount) String() string {
	whole := a.nano / NanotonPerTon
	frac := a.nano % NanotonPerTon
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%09d TON", whole, frac)
}
