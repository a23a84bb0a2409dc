// Package leveldb is an embedded CrowdsaleDataGateway backed by goleveldb.
// Values are msgpack encoded.
package leveldb

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	goleveldb "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var ErrTxAlreadyExists = errors.New("Transaction already exists. Call Commit() or Rollback() first.")

var _ datagateway.CrowdsaleDataGateway = (*Repository)(nil)

// reader is implemented by both *goleveldb.DB and *goleveldb.Transaction.
type reader interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

// writer is implemented by both *goleveldb.DB and *goleveldb.Transaction.
type writer interface {
	Put(key, value []byte, wo *opt.WriteOptions) error
	Delete(key []byte, wo *opt.WriteOptions) error
}

type Repository struct {
	db *goleveldb.DB
	tx *goleveldb.Transaction
}

func NewRepository(db *goleveldb.DB) *Repository {
	return &Repository{db: db}
}

// Open opens (or creates) a database at path.
func Open(path string) (*goleveldb.DB, error) {
	db, err := goleveldb.OpenFile(path, &opt.Options{
		Compression: opt.SnappyCompression,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open leveldb at %q", path)
	}
	return db, nil
}

// OpenMemory opens a database kept entirely in memory.
func OpenMemory() (*goleveldb.DB, error) {
	db, err := goleveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open in-memory leveldb")
	}
	return db, nil
}

func (r *Repository) reader() reader {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *Repository) writer() writer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
