package logger

import (
	"fmt"
	"log"
	"regexp"
	"sync/atomic"

	"github.com/cornelk/hashmap"
)

const (
	ERROR   = 1
	INFO    = 2
	VERBOSE = 3
	DEBUG   = 7
)

// FIXME GLOBAL VARAIBLES

var (
	level   int
	limiter int
	filter  *regexp.Regexp
	counter *hashmap.HashMap
	written int64
)

func init() {
	level = INFO
	counter = &hashmap.HashMap{}
}

func SetLevel(l int) {
	level = l
}

func Level() int {
	return level
}

func SetLimiter(l int) {
	limiter = l
}

func SetFilter(pattern string) error {
	if pattern == "" {
		filter = nil
		return nil
	}
	// https://github.com/google/re2/wiki/Syntax
	reg, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	filter = reg
	return nil
}

func Println(v ...interface{}) {
	if level >= INFO {
		log.Println(v...)
	}
}

func Printf(format string, v ...interface{}) {
	if level >= INFO {
		log.Printf(format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	printfAtLevel(ERROR, format, v...)
}

func Verbosef(format string, v ...interface{}) {
	printfAtLevel(VERBOSE, format, v...)
}

func Debugf(format string, v ...interface{}) {
	printfAtLevel(DEBUG, format, v...)
}

// Lazy builds the message only when level l is enabled.
func Lazy(l int, msg func() string) {
	LazyIf(nil, l, msg)
}

// LazyIf is like Lazy but also skips the message when cond returns false.
func LazyIf(cond func() bool, l int, msg func() string) {
	if level < l {
		return
	}
	if cond != nil && !cond() {
		return
	}
	if printAtLevel(l, msg()) {
		atomic.AddInt64(&written, 1)
	}
}

// Count returns the number of lines written through Lazy and LazyIf.
func Count() int64 {
	return atomic.LoadInt64(&written)
}

func printfAtLevel(l int, format string, v ...interface{}) {
	if level < l {
		return
	}
	printAtLevel(l, fmt.Sprintf(format, v...))
}

func printAtLevel(l int, out string) bool {
	if level < l {
		return false
	}
	out = filterOutput(out)
	if out == "" {
		return false
	}
	if !limiterAvailable(out) {
		return false
	}
	log.Print(out)
	return true
}

func limiterAvailable(out string) bool {
	if limiter == 0 {
		return true
	}
	var i int64
	val, _ := counter.GetOrInsert(out, &i)
	actual := (val).(*int64)
	count := atomic.LoadInt64(actual)
	atomic.AddInt64(actual, 1)
	return count < int64(limiter)
}

func filterOutput(out string) string {
	if filter == nil || filter.MatchString(out) {
		return out
	}
	return ""
}
