package common

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRationalMsgpack(t *testing.T) {
	assert := assert.New(t)

	r := MustFraction(-3, 4)
	b, err := r.MarshalMsgpack()
	assert.Nil(err)
	assert.Equal("010304", hex.EncodeToString(b))

	var v Rational
	err = v.UnmarshalMsgpack(b)
	assert.Nil(err)
	assert.Equal(r, v)

	b, err = MustFraction(300, 7).MarshalMsgpack()
	assert.Nil(err)
	assert.Equal("00ac0207", hex.EncodeToString(b))

	p := MsgpackMarshalPanic(r)
	assert.Equal("c70301010304", hex.EncodeToString(p))
	err = MsgpackUnmarshal(p, &v)
	assert.Nil(err)
	assert.Equal(r, v)

	type register struct {
		Name  string
		Value Rational
	}
	reg := register{Name: "half", Value: MustFraction(1, 2)}
	var out register
	err = MsgpackUnmarshal(MsgpackMarshalPanic(reg), &out)
	assert.Nil(err)
	assert.Equal(reg, out)

	c := CompressMsgpackMarshalPanic(reg)
	assert.Equal(CompressionVersionZero, c[:4])
	out = register{}
	err = DecompressMsgpackUnmarshal(c, &out)
	assert.Nil(err)
	assert.Equal(reg, out)

	_, err = Rational{}.MarshalMsgpack()
	assert.NotNil(err)
	assert.NotNil(v.UnmarshalMsgpack([]byte{0x02, 0x01, 0x01}))
	assert.NotNil(v.UnmarshalMsgpack([]byte{0x00, 0x01}))
	assert.NotNil(v.UnmarshalMsgpack([]byte{0x00, 0x01, 0x01, 0x01}))
	err = v.UnmarshalMsgpack([]byte{0x00, 0x01, 0x00})
	assert.True(errors.Is(err, ErrDivisionByZero))

	err = v.UnmarshalMsgpack([]byte{0x01, 0x04, 0x08})
	assert.Nil(err)
	assert.Equal(MustFraction(-1, 2), v)
	err = v.UnmarshalMsgpack([]byte{0x01, 0x00, 0x08})
	assert.Nil(err)
	assert.Equal(ZeroRat, v)
}

func TestRationalJSON(t *testing.T) {
	assert := assert.New(t)

	r := MustFraction(6, -8)
	b, err := json.Marshal(r)
	assert.Nil(err)
	assert.Equal(`{"numerator":3,"denominator":4,"negative":true,"string":"-3/4"}`, string(b))

	var v Rational
	err = json.Unmarshal(b, &v)
	assert.Nil(err)
	assert.Equal(r, v)

	err = json.Unmarshal([]byte(`{"numerator":10,"denominator":4,"string":"ignored"}`), &v)
	assert.Nil(err)
	assert.Equal(MustFraction(5, 2), v)

	err = json.Unmarshal([]byte(`{"numerator":1,"denominator":0}`), &v)
	assert.True(errors.Is(err, ErrDivisionByZero))
	err = json.Unmarshal([]byte(`"1/2"`), &v)
	assert.NotNil(err)
}

func TestCompress(t *testing.T) {
	assert := assert.New(t)

	payload := []byte("1/2 1/4 3/4 1/2 1/4 3/4 1/2 1/4 3/4")
	c := Compress(payload)
	assert.Equal(CompressionVersionLatest, c[:4])
	assert.Equal(payload, Decompress(c))
	assert.Nil(Decompress(payload[:4]))
	assert.Nil(Decompress(append([]byte{1, 0, 0, 0}, c[4:]...)))
}
