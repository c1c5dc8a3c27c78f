// Package store provides the persistent command history store, backed by a
// bolt database.
package store

import (
	"encoding/binary"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketCmd = "cmd"

// Store is the interface satisfied by the history store.
type Store interface {
	// NextCmdSeq returns the sequence number that the next added command
	// will get.
	NextCmdSeq() (int, error)
	// AddCmd adds a new command to the history, returning its sequence
	// number.
	AddCmd(text string) (int, error)
	// Cmds returns the text of all commands with sequence numbers within
	// [from, upto).
	Cmds(from, upto int) ([]string, error)
	// ClearCmds removes all commands from the history.
	ClearCmds() error
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore opens a Store backed by the named database file, creating it if
// it does not exist.
func NewStore(dbPath string) (Store, error) {
	db, err := bolt.Open(dbPath, 0o644, &bolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &dbStore{db}, nil
}

func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket([]byte(bucketCmd)).Sequence() + 1
		return nil
	})
	return int(seq), err
}

func (s *dbStore) AddCmd(cmd string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(cmd))
	})
	return int(seq), err
}

func (s *dbStore) Cmds(from, upto int) ([]string, error) {
	var cmds []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketCmd)).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			cmds = append(cmds, string(v))
		}
		return nil
	})
	return cmds, err
}

func (s *dbStore) ClearCmds() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketCmd)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketCmd))
		return err
	})
}

func (s *dbStore) Close() error { return s.db.Close() }

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
