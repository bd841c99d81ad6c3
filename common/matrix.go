package common

import (
	"fmt"
	"math/bits"

	"github.com/MixinNetwork/fraction/util"
)

type Vector struct {
	X int64
	Y int64
}

// Matrix is a 2x2 integer matrix, all products are overflow checked.
type Matrix struct {
	lt, rt int64
	lb, rb int64
}

var fibonacciMatrix = NewMatrix(1, 1, 1, 0)

func NewMatrix(lt, rt, lb, rb int64) Matrix {
	return Matrix{lt: lt, rt: rt, lb: lb, rb: rb}
}

func MatrixFromVectors(left, right Vector) Matrix {
	return Matrix{lt: left.X, rt: right.X, lb: left.Y, rb: right.Y}
}

func IdentityMatrix() Matrix {
	return NewMatrix(1, 0, 0, 1)
}

func (m Matrix) LeftTop() int64 {
	return m.lt
}

func (m Matrix) Determinant() (int64, error) {
	a, err := multiplyInt(m.lt, m.rb)
	if err != nil {
		return 0, err
	}
	b, err := multiplyInt(m.lb, m.rt)
	if err != nil {
		return 0, err
	}
	return subtractInt(a, b)
}

func (m Matrix) Multiply(o Matrix) (Matrix, error) {
	var r Matrix
	var err error
	if r.lt, err = dot(m.lt, o.lt, m.rt, o.lb); err != nil {
		return Matrix{}, err
	}
	if r.rt, err = dot(m.lt, o.rt, m.rt, o.rb); err != nil {
		return Matrix{}, err
	}
	if r.lb, err = dot(m.lb, o.lt, m.rb, o.lb); err != nil {
		return Matrix{}, err
	}
	if r.rb, err = dot(m.lb, o.rt, m.rb, o.rb); err != nil {
		return Matrix{}, err
	}
	return r, nil
}

func (m Matrix) Power(n int) (Matrix, error) {
	if n < 0 {
		return Matrix{}, fmt.Errorf("matrix power %d: %w", n, ErrInvalidArgument)
	}
	var err error
	result, base := IdentityMatrix(), m
	for n > 0 {
		if n&1 == 1 {
			result, err = result.Multiply(base)
			if err != nil {
				return Matrix{}, err
			}
		}
		n >>= 1
		if n > 0 {
			base, err = base.Multiply(base)
			if err != nil {
				return Matrix{}, err
			}
		}
	}
	return result, nil
}

func (m Matrix) String() string {
	return fmt.Sprintf("|%4d %4d|\n|%4d %4d|", m.lt, m.rt, m.lb, m.rb)
}

// Fibonacci returns F(n) with F(1) = F(2) = 1.
func Fibonacci(n int) (int64, error) {
	if n < 1 {
		return 0, fmt.Errorf("fibonacci %d: %w", n, ErrInvalidArgument)
	}
	p, err := fibonacciMatrix.Power(n - 1)
	if err != nil {
		return 0, err
	}
	return p.LeftTop(), nil
}

// FibonacciPrefix multiplies n copies of the Fibonacci matrix as a parallel
// prefix product, the i-th prefix holds F(i+2) at its left top.
func FibonacciPrefix(n int) ([]int64, error) {
	if n < 1 {
		return nil, fmt.Errorf("fibonacci prefix %d: %w", n, ErrInvalidArgument)
	}
	matrices := make([]Matrix, n)
	for i := range matrices {
		matrices[i] = fibonacciMatrix
	}
	err := util.ParallelPrefix(matrices, func(left, right Matrix) (Matrix, error) {
		return left.Multiply(right)
	})
	if err != nil {
		return nil, err
	}
	numbers := make([]int64, n)
	for i, m := range matrices {
		numbers[i] = m.LeftTop()
	}
	return numbers, nil
}

func dot(a, b, c, d int64) (int64, error) {
	x, err := multiplyInt(a, b)
	if err != nil {
		return 0, err
	}
	y, err := multiplyInt(c, d)
	if err != nil {
		return 0, err
	}
	s := x + y
	if (x > 0 && y > 0 && s < 0) || (x < 0 && y < 0 && s >= 0) {
		return 0, fmt.Errorf("%d+%d: %w", x, y, ErrOverflow)
	}
	return s, nil
}

func multiplyInt(a, b int64) (int64, error) {
	hi, lo := bits.Mul64(magnitude(a), magnitude(b))
	negative := (a < 0) != (b < 0)
	switch {
	case hi != 0:
	case !negative && lo <= 1<<63-1:
		return int64(lo), nil
	case negative && lo <= 1<<63:
		return -int64(lo-1) - 1, nil
	}
	return 0, fmt.Errorf("%d*%d: %w", a, b, ErrOverflow)
}

func subtractInt(a, b int64) (int64, error) {
	s := a - b
	if (b < 0 && s < a) || (b > 0 && s > a) {
		return 0, fmt.Errorf("%d-%d: %w", a, b, ErrOverflow)
	}
	return s, nil
}
