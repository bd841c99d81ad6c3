package storage

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/MixinNetwork/fraction/config"
	"github.com/MixinNetwork/fraction/logger"
	"github.com/MixinNetwork/fraction/util"
	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
)

type BadgerStore struct {
	custom   *config.Custom
	registDB *badger.DB
	closing  chan struct{}
}

func NewBadgerStore(custom *config.Custom, dir string) (*BadgerStore, error) {
	registDB, err := openDB(filepath.Join(dir, "registers"), true)
	if err != nil {
		return nil, err
	}
	store := &BadgerStore{
		custom:   custom,
		registDB: registDB,
		closing:  make(chan struct{}),
	}
	err = store.checkVersion()
	if err != nil {
		registDB.Close()
		return nil, err
	}
	if custom != nil && custom.Storage.ValueLogGC {
		go util.Unchecked(store.loopValueLogGC, func(err error) {
			logger.Printf("Badger value log GC loop %v\n", err)
		})()
	}
	return store, nil
}

func (s *BadgerStore) Close() error {
	select {
	case <-s.closing:
		return nil
	default:
		close(s.closing)
	}
	return s.registDB.Close()
}

func (s *BadgerStore) loopValueLogGC() error {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.closing:
			return nil
		case <-ticker.C:
		}
		lsm, vlog := s.registDB.Size()
		logger.Verbosef("Badger LSM %d VLOG %d\n", lsm, vlog)
		if lsm > 1024*1024*8 || vlog > 1024*1024*32 {
			err := s.registDB.RunValueLogGC(0.5)
			if err != nil && err != badger.ErrNoRewrite {
				return fmt.Errorf("RunValueLogGC %v", err)
			}
		}
	}
}

func openDB(dir string, sync bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	opts = opts.WithSyncWrites(sync)
	opts = opts.WithCompression(options.None)
	opts = opts.WithBlockCacheSize(0)
	opts = opts.WithIndexCacheSize(0)
	opts = opts.WithLoggingLevel(badger.WARNING)
	opts = opts.WithBaseLevelSize(16 << 20)
	return badger.Open(opts)
}
