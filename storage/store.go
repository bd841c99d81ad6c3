package storage

import "github.com/MixinNetwork/fraction/common"

type Store interface {
	Close() error

	StateGet(key string, val interface{}) (bool, error)
	StateSet(key string, val interface{}) error

	ReadRational(name string) (common.Rational, bool, error)
	WriteRational(name string, r common.Rational) error
	RemoveRational(name string) error
	ListRationals() (map[string]common.Rational, error)
}
