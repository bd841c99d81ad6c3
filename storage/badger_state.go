package storage

import (
	"fmt"

	"github.com/MixinNetwork/fraction/common"
	"github.com/MixinNetwork/fraction/config"
	"github.com/MixinNetwork/fraction/logger"
	"github.com/dgraph-io/badger/v3"
)

const (
	graphPrefixState = "STATE"

	StateKeyVersion = "version"
)

// Version is recorded under StateKeyVersion every time the store is opened.
type Version struct {
	Storage int    `json:"storage"`
	Build   string `json:"build"`
}

func (s *BadgerStore) checkVersion() error {
	var v Version
	found, err := s.StateGet(StateKeyVersion, &v)
	if err != nil {
		return err
	}
	if found && v.Storage > config.StorageVersion {
		return fmt.Errorf("storage version %d from %s is newer than %d", v.Storage, v.Build, config.StorageVersion)
	}
	current := Version{Storage: config.StorageVersion, Build: config.BuildVersion}
	if found && v == current {
		return nil
	}
	if found {
		logger.Printf("Badger storage upgrade %d %s => %d %s\n", v.Storage, v.Build, current.Storage, current.Build)
	}
	return s.StateSet(StateKeyVersion, current)
}

func (s *BadgerStore) StateGet(key string, val interface{}) (bool, error) {
	txn := s.registDB.NewTransaction(false)
	defer txn.Discard()

	item, err := txn.Get(graphStateKey(key))
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return true, err
	}
	ival, err := item.ValueCopy(nil)
	if err != nil {
		return true, err
	}
	return true, common.MsgpackUnmarshal(ival, val)
}

func (s *BadgerStore) StateSet(key string, val interface{}) error {
	return s.registDB.Update(func(txn *badger.Txn) error {
		ival := common.MsgpackMarshalPanic(val)
		return txn.Set(graphStateKey(key), ival)
	})
}

func graphStateKey(key string) []byte {
	return append([]byte(graphPrefixState), key...)
}
