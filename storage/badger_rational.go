package storage

import (
	"fmt"
	"time"

	"github.com/MixinNetwork/fraction/common"
	"github.com/MixinNetwork/fraction/config"
	"github.com/dgraph-io/badger/v3"
)

const graphPrefixRegister = "REGISTER"

type register struct {
	Value     common.Rational
	Timestamp uint64
}

func (s *BadgerStore) WriteRational(name string, r common.Rational) error {
	err := validateRegisterName(name)
	if err != nil {
		return err
	}
	if r.Denominator() == 0 {
		return fmt.Errorf("invalid rational %s for %s", r, name)
	}

	txn := s.registDB.NewTransaction(true)
	defer txn.Discard()

	val := common.CompressMsgpackMarshalPanic(&register{
		Value:     r,
		Timestamp: uint64(time.Now().UnixNano()),
	})
	err = txn.Set(graphRegisterKey(name), val)
	if err != nil {
		return err
	}
	return txn.Commit()
}

func (s *BadgerStore) ReadRational(name string) (common.Rational, bool, error) {
	err := validateRegisterName(name)
	if err != nil {
		return common.ZeroRat, false, err
	}

	txn := s.registDB.NewTransaction(false)
	defer txn.Discard()

	item, err := txn.Get(graphRegisterKey(name))
	if err == badger.ErrKeyNotFound {
		return common.ZeroRat, false, nil
	}
	if err != nil {
		return common.ZeroRat, false, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return common.ZeroRat, false, err
	}
	var reg register
	err = common.DecompressMsgpackUnmarshal(val, &reg)
	if err != nil {
		return common.ZeroRat, false, err
	}
	return reg.Value, true, nil
}

func (s *BadgerStore) RemoveRational(name string) error {
	err := validateRegisterName(name)
	if err != nil {
		return err
	}
	return s.registDB.Update(func(txn *badger.Txn) error {
		return txn.Delete(graphRegisterKey(name))
	})
}

func (s *BadgerStore) ListRationals() (map[string]common.Rational, error) {
	txn := s.registDB.NewTransaction(false)
	defer txn.Discard()

	prefix := []byte(graphPrefixRegister)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	registers := make(map[string]common.Rational)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		name := string(item.Key()[len(prefix):])
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		var reg register
		err = common.DecompressMsgpackUnmarshal(val, &reg)
		if err != nil {
			return nil, err
		}
		registers[name] = reg.Value
	}
	return registers, nil
}

func validateRegisterName(name string) error {
	if name == "" || len(name) > config.RegisterNameMaxSize {
		return fmt.Errorf("invalid register name %q", name)
	}
	return nil
}

func graphRegisterKey(name string) []byte {
	return append([]byte(graphPrefixRegister), name...)
}
