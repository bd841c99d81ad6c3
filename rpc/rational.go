package rpc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MixinNetwork/fraction/common"
	"github.com/MixinNetwork/fraction/config"
	"github.com/MixinNetwork/fraction/storage"
)

func evaluate(call *Call) (interface{}, error) {
	params := call.Params
	switch call.Method {
	case "neg", "reciprocal", "isinteger", "integer":
		if len(params) != 1 {
			return nil, errors.New("invalid params count")
		}
		a, err := parseRational(params[0])
		if err != nil {
			return nil, err
		}
		switch call.Method {
		case "neg":
			return a.Neg(), nil
		case "reciprocal":
			return a.Reciprocal()
		case "isinteger":
			return a.IsInteger(), nil
		default:
			return a.Int64()
		}
	case "add", "sub", "mul", "div", "compare":
		if len(params) != 2 {
			return nil, errors.New("invalid params count")
		}
		a, err := parseRational(params[0])
		if err != nil {
			return nil, err
		}
		b, err := parseRational(params[1])
		if err != nil {
			return nil, err
		}
		switch call.Method {
		case "add":
			return a.Add(b)
		case "sub":
			return a.Sub(b)
		case "mul":
			return a.Mul(b)
		case "div":
			return a.Div(b)
		default:
			return a.Cmp(b), nil
		}
	case "power":
		if len(params) != 2 {
			return nil, errors.New("invalid params count")
		}
		a, err := parseRational(params[0])
		if err != nil {
			return nil, err
		}
		t, err := parseInt(params[1])
		if err != nil {
			return nil, err
		}
		return a.Power(int(t))
	case "fibonacci", "fibonacciprefix":
		if len(params) != 1 {
			return nil, errors.New("invalid params count")
		}
		n, err := parseInt(params[0])
		if err != nil {
			return nil, err
		}
		if call.Method == "fibonacciprefix" {
			return common.FibonacciPrefix(int(n))
		}
		return common.Fibonacci(int(n))
	}
	return nil, fmt.Errorf("invalid method %s", call.Method)
}

func getInfo(store storage.Store) (map[string]interface{}, error) {
	var v storage.Version
	_, err := store.StateGet(storage.StateKeyVersion, &v)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"version": config.BuildVersion,
		"storage": v,
	}, nil
}

func readRational(store storage.Store, params []interface{}) (map[string]interface{}, error) {
	if len(params) != 1 {
		return nil, errors.New("invalid params count")
	}
	name, err := parseName(params[0])
	if err != nil {
		return nil, err
	}
	r, found, err := store.ReadRational(name)
	if err != nil || !found {
		return nil, err
	}
	return map[string]interface{}{"name": name, "value": r}, nil
}

func writeRational(store storage.Store, params []interface{}) (map[string]interface{}, error) {
	if len(params) != 2 {
		return nil, errors.New("invalid params count")
	}
	name, err := parseName(params[0])
	if err != nil {
		return nil, err
	}
	r, err := parseRational(params[1])
	if err != nil {
		return nil, err
	}
	err = store.WriteRational(name, r)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"name": name, "value": r}, nil
}

func removeRational(store storage.Store, params []interface{}) (map[string]interface{}, error) {
	if len(params) != 1 {
		return nil, errors.New("invalid params count")
	}
	name, err := parseName(params[0])
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"name": name}, store.RemoveRational(name)
}

// parseRational accepts an integer n as n/1 or a [numerator, denominator] pair.
func parseRational(p interface{}) (common.Rational, error) {
	switch v := p.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return common.ZeroRat, fmt.Errorf("invalid integer %s", v)
		}
		return common.NewRational(n), nil
	case []interface{}:
		if len(v) != 2 {
			return common.ZeroRat, fmt.Errorf("invalid rational %v", v)
		}
		num, err := parseInt(v[0])
		if err != nil {
			return common.ZeroRat, err
		}
		den, err := parseInt(v[1])
		if err != nil {
			return common.ZeroRat, err
		}
		return common.NewFraction(num, den)
	}
	return common.ZeroRat, fmt.Errorf("invalid rational %v", p)
}

func parseInt(p interface{}) (int64, error) {
	v, ok := p.(json.Number)
	if !ok {
		return 0, fmt.Errorf("invalid integer %v", p)
	}
	n, err := v.Int64()
	if err != nil {
		return 0, fmt.Errorf("invalid integer %s", v)
	}
	return n, nil
}

func parseName(p interface{}) (string, error) {
	name, ok := p.(string)
	if !ok || name == "" {
		return "", fmt.Errorf("invalid register name %v", p)
	}
	return name, nil
}

func cacheKey(call *Call) []byte {
	return append([]byte(call.Method), common.MsgpackMarshalPanic(call.Params)...)
}
