// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spool

import (
	"bytes"
	"sort"

	"github.com/bitmark-inc/baobab/fault"
	"github.com/bitmark-inc/baobab/yamf"
)

// Status-table rows are keyed by table name alone (spec.md §3/§6:
// "{clump_id, table_name}" — the clump id is already implicit in which
// clump's status table is being read). ContentStatusKey names the
// clump's own content table; IdentityStatusKey names the global
// identity table, which has no clump of its own (spec.md §3) and so,
// per the decision recorded in DESIGN.md, caches its current-hash in
// the default clump's status table under this reserved key.
var contentStatusKey = []byte("content")
var identityStatusKey = []byte("identity")

// ContentStatusKey returns the status-table key for a clump's content
// table.
func ContentStatusKey() []byte {
	return contentStatusKey
}

// IdentityStatusKey returns the reserved key for the identity table's
// own current-hash cache.
func IdentityStatusKey() []byte {
	return identityStatusKey
}

// CurrentHash implements spec.md §4.9: return the cached short digest
// for (table, key) if one exists, otherwise serialize every row of
// table into a canonical byte stream, hash it, cache the result under
// key in status, and return it.
//
// table and status are exposed only as the unexported *table type, so
// this logic lives in spool rather than in logengine even though the
// operation is conceptually part of the log engine's query surface
// (design note "Tag-dispatched table actions", spec.md §9).
func CurrentHash(table, status *table, key []byte) (yamf.ShortHash, error) {
	cached, err := status.Get(key)
	if nil != err {
		return yamf.ShortHash{}, err
	}
	if nil != cached {
		if yamf.ShortLength != len(cached) {
			return yamf.ShortHash{}, fault.ErrShortRead
		}
		var h yamf.ShortHash
		copy(h[:], cached)
		return h, nil
	}

	serialized, err := serializeTable(table)
	if nil != err {
		return yamf.ShortHash{}, err
	}
	short := yamf.ShortSum(serialized)

	if err := status.Put(key, short.Bytes()); nil != err {
		return yamf.ShortHash{}, err
	}
	return short, nil
}

// InvalidateStatus drops the cached current-hash for key, forcing the
// next CurrentHash caller to recompute it. Every mutation to the rows
// that hash summarizes (append, import, compact, purge) must call
// this against the table it touched.
func InvalidateStatus(status *table, key []byte) error {
	return status.Delete(key)
}

// serializeTable builds the canonical byte stream hashed by
// CurrentHash: every (key, value) pair, sorted and length-prefixed so
// no ambiguity arises between adjacent rows.
func serializeTable(table *table) ([]byte, error) {
	type kv struct{ key, value []byte }
	rows := make([]kv, 0)
	if err := table.Fold(func(key, value []byte) error {
		k := make([]byte, len(key))
		copy(k, key)
		v := make([]byte, len(value))
		copy(v, value)
		rows = append(rows, kv{key: k, value: v})
		return nil
	}); nil != err {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return bytes.Compare(rows[i].key, rows[j].key) < 0 })

	var buf bytes.Buffer
	for _, r := range rows {
		writeLengthPrefixed(&buf, r.key)
		writeLengthPrefixed(&buf, r.value)
	}
	return buf.Bytes(), nil
}

func writeLengthPrefixed(buf *bytes.Buffer, b []byte) {
	n := len(b)
	buf.WriteByte(byte(n >> 24))
	buf.WriteByte(byte(n >> 16))
	buf.WriteByte(byte(n >> 8))
	buf.WriteByte(byte(n))
	buf.Write(b)
}
