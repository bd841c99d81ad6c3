package common

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

const (
	rationalSignPositive = byte(0x00)
	rationalSignNegative = byte(0x01)
)

type rationalJSON struct {
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
	Negative    bool   `json:"negative"`
	String      string `json:"string,omitempty"`
}

// MarshalMsgpack writes the sign byte followed by the numerator and the
// denominator as unsigned varints.
func (r Rational) MarshalMsgpack() ([]byte, error) {
	if r.denominator == 0 {
		return nil, fmt.Errorf("invalid rational %s", r)
	}
	buf := make([]byte, 1, 1+binary.MaxVarintLen64*2)
	if !r.positive {
		buf[0] = rationalSignNegative
	}
	buf = binary.AppendUvarint(buf, r.numerator)
	buf = binary.AppendUvarint(buf, r.denominator)
	return buf, nil
}

func (r *Rational) UnmarshalMsgpack(data []byte) error {
	if len(data) < 3 {
		return fmt.Errorf("invalid rational data %x", data)
	}
	var positive bool
	switch data[0] {
	case rationalSignPositive:
		positive = true
	case rationalSignNegative:
	default:
		return fmt.Errorf("invalid rational sign %x", data[0])
	}
	num, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return fmt.Errorf("invalid rational numerator %x", data)
	}
	den, m := binary.Uvarint(data[1+n:])
	if m <= 0 || 1+n+m != len(data) {
		return fmt.Errorf("invalid rational denominator %x", data)
	}
	v, err := newSigned(positive, num, den)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (r Rational) MarshalJSON() ([]byte, error) {
	return json.Marshal(rationalJSON{
		Numerator:   r.numerator,
		Denominator: r.denominator,
		Negative:    !r.positive,
		String:      r.String(),
	})
}

// UnmarshalJSON only reads the integer fields, the string form is ignored.
func (r *Rational) UnmarshalJSON(b []byte) error {
	var v rationalJSON
	err := json.Unmarshal(b, &v)
	if err != nil {
		return err
	}
	n, err := newSigned(!v.Negative, v.Numerator, v.Denominator)
	if err != nil {
		return err
	}
	*r = n
	return nil
}
