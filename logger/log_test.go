package logger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	assert := assert.New(t)

	out := filterOutput(fmt.Sprintf("hello from fraction %d", time.Now().UnixNano()))
	assert.Contains(out, "fraction")

	err := SetFilter("rational")
	assert.Nil(err)
	out = filterOutput(fmt.Sprintf("hello from fraction %d", time.Now().UnixNano()))
	assert.NotContains(out, "fraction")
	out = filterOutput(fmt.Sprintf("Rational from fraction %d", time.Now().UnixNano()))
	assert.NotContains(out, "fraction")
	out = filterOutput(fmt.Sprintf("rational from fraction %d", time.Now().UnixNano()))
	assert.Contains(out, "fraction")

	err = SetFilter("(?i)rational")
	assert.Nil(err)
	out = filterOutput(fmt.Sprintf("hello from fraction %d", time.Now().UnixNano()))
	assert.NotContains(out, "fraction")
	out = filterOutput(fmt.Sprintf("Rational from fraction %d", time.Now().UnixNano()))
	assert.Contains(out, "fraction")
	out = filterOutput(fmt.Sprintf("rational from fraction %d", time.Now().UnixNano()))
	assert.Contains(out, "fraction")
	out = filterOutput(fmt.Sprintf("matrix from fraction %d", time.Now().UnixNano()))
	assert.NotContains(out, "fraction")

	err = SetFilter("(?i)rational|Fraction")
	assert.Nil(err)
	out = filterOutput(fmt.Sprintf("hello from fraction %d", time.Now().UnixNano()))
	assert.Contains(out, "fraction")
	out = filterOutput(fmt.Sprintf("Rational from fraction %d", time.Now().UnixNano()))
	assert.Contains(out, "fraction")
	out = filterOutput(fmt.Sprintf("rational from fraction %d", time.Now().UnixNano()))
	assert.Contains(out, "fraction")
	out = filterOutput(fmt.Sprintf("matrix from fraction %d", time.Now().UnixNano()))
	assert.Contains(out, "fraction")
	out = filterOutput(fmt.Sprintf("matrix or rational %d", time.Now().UnixNano()))
	assert.NotContains(out, "fraction")

	la := limiterAvailable("hello from fraction")
	assert.True(la)
	SetLimiter(10)
	for i := 0; i < 10; i++ {
		la := limiterAvailable("hello from fraction")
		assert.True(la)
	}
	la = limiterAvailable("hello from fraction")
	assert.False(la)
	la = limiterAvailable("hello from fraction again")
	assert.True(la)
}

func TestLazy(t *testing.T) {
	assert := assert.New(t)

	SetLimiter(0)
	assert.Nil(SetFilter(""))
	SetLevel(INFO)

	built := 0
	msg := func(s string) func() string {
		return func() string {
			built++
			return s
		}
	}
	base := Count()
	Lazy(ERROR, msg("error"))
	Lazy(VERBOSE, msg("verbose"))
	Lazy(DEBUG, msg("debug"))
	Lazy(INFO, msg("info"))
	assert.Equal(int64(2), Count()-base)
	assert.Equal(2, built)

	base, built = Count(), 0
	expected := int64(0)
	for n := 0; n < 10; n++ {
		cond := func() bool { return n%2 == 0 }
		LazyIf(cond, ERROR, msg(fmt.Sprintf("error[%d]", n)))
		LazyIf(cond, INFO, msg(fmt.Sprintf("info[%d]", n)))
		LazyIf(cond, VERBOSE, msg(fmt.Sprintf("verbose[%d]", n)))
		LazyIf(cond, DEBUG, msg(fmt.Sprintf("debug[%d]", n)))
		if n%2 == 0 {
			expected += 2
		}
	}
	assert.Equal(expected, Count()-base)
	assert.Equal(10, built)

	SetLevel(DEBUG)
	base = Count()
	Lazy(DEBUG, msg("debug"))
	assert.Equal(int64(1), Count()-base)
	SetLevel(INFO)

	assert.Nil(SetFilter("matrix"))
	base = Count()
	Lazy(INFO, msg("rational"))
	assert.Equal(int64(0), Count()-base)
	assert.Nil(SetFilter(""))
}
