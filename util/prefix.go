package util

import "sync"

// ParallelPrefix replaces items[i] with op(items[0], ..., items[i]) in place.
// It runs log2(n) rounds and each round combines all pairs concurrently, so op
// must be associative but needs not be commutative.
func ParallelPrefix[T any](items []T, op func(left, right T) (T, error)) error {
	var mutex sync.Mutex
	var first error
	handler := func(err error) {
		mutex.Lock()
		defer mutex.Unlock()
		if first == nil {
			first = err
		}
	}

	for d := 1; d < len(items); d <<= 1 {
		prev := make([]T, len(items))
		copy(prev, items)

		var wg sync.WaitGroup
		for i := d; i < len(items); i++ {
			i := i
			wg.Add(1)
			task := Unchecked(func() error {
				v, err := op(prev[i-d], prev[i])
				if err != nil {
					return err
				}
				items[i] = v
				return nil
			}, handler)
			go func() {
				defer wg.Done()
				task()
			}()
		}
		wg.Wait()
		if first != nil {
			return first
		}
	}
	return nil
}
