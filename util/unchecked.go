package util

import (
	"fmt"
	"runtime/debug"
)

// Unchecked adapts fn to a plain func() for goroutines and pools, any error
// or panic of fn goes to handler instead of the caller.
func Unchecked(fn func() error, handler func(error)) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				handler(fmt.Errorf("panic: %v\n%s", r, debug.Stack()))
			}
		}()
		err := fn()
		if err != nil {
			handler(err)
		}
	}
}

func UncheckedConsumer[T any](fn func(T) error, handler func(error)) func(T) {
	return func(v T) {
		Unchecked(func() error { return fn(v) }, handler)()
	}
}

// AndThen chains two consumers, next is skipped when fn fails.
func AndThen[T any](fn, next func(T) error) func(T) error {
	return func(v T) error {
		err := fn(v)
		if err != nil {
			return err
		}
		return next(v)
	}
}
