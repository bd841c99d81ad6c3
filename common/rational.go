package common

import (
	"fmt"
	"math"
	"math/bits"
)

var (
	ZeroRat Rational
	OneRat  Rational
)

func init() {
	ZeroRat = NewRational(0)
	OneRat = NewRational(1)
}

// Rational is an exact fraction kept in lowest terms. The sign lives only in
// positive, numerator and denominator are magnitudes. Zero is always 0/1 with
// the positive sign, so two equal values are also equal with ==.
//
// The zero value of Rational is not valid, use ZeroRat or a constructor.
type Rational struct {
	positive    bool
	numerator   uint64
	denominator uint64
}

func NewRational(n int64) Rational {
	return Rational{
		positive:    n >= 0,
		numerator:   magnitude(n),
		denominator: 1,
	}
}

func NewFraction(num, den int64) (Rational, error) {
	if den == 0 {
		return ZeroRat, fmt.Errorf("fraction %d/%d: %w", num, den, ErrDivisionByZero)
	}
	return newSigned((num >= 0) == (den > 0), magnitude(num), magnitude(den))
}

func MustFraction(num, den int64) Rational {
	r, err := NewFraction(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// newSigned builds a value from two magnitudes and an already combined sign.
func newSigned(positive bool, num, den uint64) (Rational, error) {
	g, err := reduce(num, den)
	if err != nil {
		return ZeroRat, err
	}
	return Rational{
		positive:    positive || num == 0,
		numerator:   num / g,
		denominator: den / g,
	}, nil
}

// reduce returns the greatest common divisor of a and b, b must not be zero.
func reduce(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return divisor(a, b), nil
}

func divisor(large, small uint64) uint64 {
	if large < small {
		return divisor(small, large)
	}
	switch small {
	case 0:
		return large
	case 1:
		return 1
	}
	surplus := large % small
	if surplus == 0 {
		return small
	}
	return divisor(small, surplus)
}

func magnitude(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

func multiply(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, fmt.Errorf("%d*%d: %w", a, b, ErrOverflow)
	}
	return lo, nil
}

func power(base uint64, time int) (uint64, error) {
	var err error
	result := uint64(1)
	for time > 0 {
		if time&1 == 1 {
			result, err = multiply(result, base)
			if err != nil {
				return 0, err
			}
		}
		time >>= 1
		if time > 0 {
			base, err = multiply(base, base)
			if err != nil {
				return 0, err
			}
		}
	}
	return result, nil
}

// sum adds two signed magnitudes.
func sum(ap bool, an uint64, bp bool, bn uint64) (bool, uint64, error) {
	if ap == bp {
		s, carry := bits.Add64(an, bn, 0)
		if carry != 0 {
			return false, 0, fmt.Errorf("%d+%d: %w", an, bn, ErrOverflow)
		}
		return ap, s, nil
	}
	if an >= bn {
		return ap, an - bn, nil
	}
	return bp, bn - an, nil
}

func (r Rational) Numerator() uint64 {
	return r.numerator
}

func (r Rational) Denominator() uint64 {
	return r.denominator
}

func (r Rational) Sign() int {
	if r.numerator == 0 {
		return 0
	}
	if r.positive {
		return 1
	}
	return -1
}

func (r Rational) IsZero() bool {
	return r.numerator == 0
}

// Add scales both sides to the least common denominator, the products only
// overflow when the operands themselves are out of range.
func (r Rational) Add(o Rational) (Rational, error) {
	if r.denominator == 0 || o.denominator == 0 {
		return ZeroRat, ErrDivisionByZero
	}
	g := divisor(r.denominator, o.denominator)
	left, err := multiply(r.numerator, o.denominator/g)
	if err != nil {
		return ZeroRat, err
	}
	right, err := multiply(o.numerator, r.denominator/g)
	if err != nil {
		return ZeroRat, err
	}
	den, err := multiply(r.denominator/g, o.denominator)
	if err != nil {
		return ZeroRat, err
	}
	positive, num, err := sum(r.positive, left, o.positive, right)
	if err != nil {
		return ZeroRat, err
	}
	return newSigned(positive, num, den)
}

func (r Rational) AddInt(k int64) (Rational, error) {
	return r.addInt(k >= 0, magnitude(k))
}

func (r Rational) addInt(positive bool, k uint64) (Rational, error) {
	scaled, err := multiply(r.denominator, k)
	if err != nil {
		return ZeroRat, err
	}
	positive, num, err := sum(r.positive, r.numerator, positive, scaled)
	if err != nil {
		return ZeroRat, err
	}
	return newSigned(positive, num, r.denominator)
}

func (r Rational) Sub(o Rational) (Rational, error) {
	return r.Add(o.Neg())
}

func (r Rational) SubInt(k int64) (Rational, error) {
	return r.addInt(k <= 0, magnitude(k))
}

func (r Rational) Neg() Rational {
	return Rational{
		positive:    !r.positive || r.numerator == 0,
		numerator:   r.numerator,
		denominator: r.denominator,
	}
}

// Mul cancels the cross terms first, so the products only overflow when the
// reduced result does not fit.
func (r Rational) Mul(o Rational) (Rational, error) {
	if r.denominator == 0 || o.denominator == 0 {
		return ZeroRat, ErrDivisionByZero
	}
	g1 := divisor(r.numerator, o.denominator)
	g2 := divisor(o.numerator, r.denominator)
	num, err := multiply(r.numerator/g1, o.numerator/g2)
	if err != nil {
		return ZeroRat, err
	}
	den, err := multiply(r.denominator/g2, o.denominator/g1)
	if err != nil {
		return ZeroRat, err
	}
	return newSigned(r.positive == o.positive, num, den)
}

func (r Rational) MulInt(k int64) (Rational, error) {
	if r.denominator == 0 {
		return ZeroRat, ErrDivisionByZero
	}
	m := magnitude(k)
	g := divisor(m, r.denominator)
	num, err := multiply(r.numerator, m/g)
	if err != nil {
		return ZeroRat, err
	}
	return newSigned(r.positive == (k >= 0), num, r.denominator/g)
}

func (r Rational) Reciprocal() (Rational, error) {
	if r.numerator == 0 {
		return ZeroRat, fmt.Errorf("reciprocal of %s: %w", r, ErrDivisionByZero)
	}
	return Rational{
		positive:    r.positive,
		numerator:   r.denominator,
		denominator: r.numerator,
	}, nil
}

func (r Rational) Div(o Rational) (Rational, error) {
	t, err := o.Reciprocal()
	if err != nil {
		return ZeroRat, err
	}
	return r.Mul(t)
}

func (r Rational) DivInt(k int64) (Rational, error) {
	return r.Div(NewRational(k))
}

func (r Rational) Power(time int) (Rational, error) {
	if time < 0 {
		return ZeroRat, fmt.Errorf("power %s^%d: %w", r, time, ErrInvalidArgument)
	}
	num, err := power(r.numerator, time)
	if err != nil {
		return ZeroRat, err
	}
	den, err := power(r.denominator, time)
	if err != nil {
		return ZeroRat, err
	}
	return newSigned(time%2 == 0 || r.positive, num, den)
}

// Cmp orders by cross multiplication in 128 bits, it never overflows.
func (r Rational) Cmp(o Rational) int {
	x, y := r.Sign(), o.Sign()
	if x != y {
		if x < y {
			return -1
		}
		return 1
	}
	if x == 0 {
		return 0
	}
	lh, ll := bits.Mul64(r.numerator, o.denominator)
	rh, rl := bits.Mul64(o.numerator, r.denominator)
	c := 0
	switch {
	case lh < rh || (lh == rh && ll < rl):
		c = -1
	case lh > rh || (lh == rh && ll > rl):
		c = 1
	}
	return c * x
}

func (r Rational) CmpInt(k int64) int {
	return r.Cmp(NewRational(k))
}

func (r Rational) Less(o Rational) bool {
	return r.Cmp(o) < 0
}

func (r Rational) Equal(o Rational) bool {
	return r == o
}

func (r Rational) IsInteger() bool {
	return r.denominator == 1
}

func (r Rational) Int64() (int64, error) {
	if !r.IsInteger() {
		return 0, fmt.Errorf("%s: %w", r, ErrNotInteger)
	}
	if r.positive {
		if r.numerator > math.MaxInt64 {
			return 0, fmt.Errorf("%s: %w", r, ErrOverflow)
		}
		return int64(r.numerator), nil
	}
	if r.numerator > 1<<63 {
		return 0, fmt.Errorf("%s: %w", r, ErrOverflow)
	}
	return -int64(r.numerator-1) - 1, nil
}

func (r Rational) String() string {
	if r.positive || r.numerator == 0 {
		return fmt.Sprintf("%d/%d", r.numerator, r.denominator)
	}
	return fmt.Sprintf("-%d/%d", r.numerator, r.denominator)
}
