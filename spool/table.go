// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spool

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
)

// Element is a single key/value pair returned by Match.
type Element struct {
	Key   []byte
	Value []byte
}

// table wraps a single LevelDB directory, one per content/identity/status
// file named in spec.md §6. Unlike the teacher's storage.PoolHandle, a
// table owns its own database rather than sharing one file with other
// tables behind a byte prefix: the on-disk layout already gives each
// logical table its own directory, so there is nothing left to multiplex.
type table struct {
	name string
	db   *leveldb.DB
}

func openTable(path, name string) (*table, error) {
	db, err := leveldb.OpenFile(path, nil)
	if nil != err {
		return nil, err
	}
	return &table{name: name, db: db}, nil
}

func (t *table) close() {
	if nil != t.db {
		t.db.Close()
		t.db = nil
	}
}

// Get reads a value for a given key. A missing key returns nil, nil.
func (t *table) Get(key []byte) ([]byte, error) {
	value, err := t.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		logger.PanicIfError("table.Get: "+t.name, err)
	}
	return value, nil
}

// Has reports whether a key is present.
func (t *table) Has(key []byte) (bool, error) {
	ok, err := t.db.Has(key, nil)
	if nil != err {
		logger.PanicIfError("table.Has: "+t.name, err)
	}
	return ok, nil
}

// Put stores a key/value pair.
func (t *table) Put(key []byte, value []byte) error {
	err := t.db.Put(key, value, nil)
	if nil != err {
		logger.PanicIfError("table.Put: "+t.name, err)
	}
	return err
}

// Delete removes a key. Deleting an absent key is not an error.
func (t *table) Delete(key []byte) error {
	err := t.db.Delete(key, nil)
	if nil != err {
		logger.PanicIfError("table.Delete: "+t.name, err)
	}
	return err
}

// Match returns every element whose key begins with prefix, in
// lexicographic order.
func (t *table) Match(prefix []byte) ([]Element, error) {
	rng := ldb_util.BytesPrefix(prefix)
	iter := t.db.NewIterator(rng, nil)
	defer iter.Release()

	results := make([]Element, 0)
	for iter.Next() {
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		results = append(results, Element{Key: key, Value: value})
	}
	return results, iter.Error()
}

// MatchDelete deletes every element whose key begins with prefix and
// returns the keys that were removed.
func (t *table) MatchDelete(prefix []byte) ([][]byte, error) {
	elements, err := t.Match(prefix)
	if nil != err {
		return nil, err
	}
	deleted := make([][]byte, 0, len(elements))
	batch := new(leveldb.Batch)
	for _, e := range elements {
		batch.Delete(e.Key)
		deleted = append(deleted, e.Key)
	}
	if err := t.db.Write(batch, nil); nil != err {
		return nil, err
	}
	return deleted, nil
}

// Fold calls f for every element in the table, in key order, stopping
// early if f returns an error.
func (t *table) Fold(f func(key, value []byte) error) error {
	iter := t.db.NewIterator(nil, nil)
	defer iter.Release()

	for iter.Next() {
		if err := f(iter.Key(), iter.Value()); nil != err {
			return err
		}
	}
	return iter.Error()
}

// Truncate removes every row in the table.
func (t *table) Truncate() error {
	iter := t.db.NewIterator(nil, nil)
	batch := new(leveldb.Batch)
	for iter.Next() {
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		batch.Delete(key)
	}
	iter.Release()
	if err := iter.Error(); nil != err {
		return err
	}
	return t.db.Write(batch, nil)
}
