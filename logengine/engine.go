// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package logengine implements the Bamboo log core named in spec.md
// §4.4-§4.7: append, retrieval queries, compaction, and purge over the
// spool's per-clump content table.
//
// Following design note "Global configuration for spool path"
// (spec.md §9), every operation hangs off an Engine handle built from
// a *spool.Spool rather than touching process-wide state, mirroring
// how storage.Initialise used to be replaced by an explicit handle.
package logengine

import (
	"sort"

	"github.com/bitmark-inc/baobab/entry"
	"github.com/bitmark-inc/baobab/fault"
	"github.com/bitmark-inc/baobab/spool"
)

// Engine wraps a spool. The identity registry used to resolve author
// aliases is passed to Append per call rather than held here.
type Engine struct {
	spool *spool.Spool
}

// New builds an Engine over s.
func New(s *spool.Spool) *Engine {
	return &Engine{spool: s}
}

// row is the pair of content-table halves for one entry. Either half
// may be transiently absent (spec.md §5); a row counts as present only
// when both are.
type row struct {
	header  []byte
	payload []byte
}

// contentTable is the subset of *spool.table the engine exercises,
// declared as an interface so this package depends on behaviour, not
// on spool's unexported type.
type contentTable interface {
	Get(key []byte) ([]byte, error)
	Put(key []byte, value []byte) error
	Delete(key []byte) error
	Match(prefix []byte) ([]spool.Element, error)
	MatchDelete(prefix []byte) ([][]byte, error)
	Fold(f func(key, value []byte) error) error
	Truncate() error
}

func (e *Engine) content(clumpID string) (contentTable, error) {
	content, _, err := e.spool.Clump(clumpID)
	return content, err
}

// AllSeqNum returns every sequence number stored for (author, log_id)
// in clumpID, ascending. A half-written row is excluded (spec.md §7).
func (e *Engine) AllSeqNum(author string, logID uint64, clumpID string) ([]uint64, error) {
	content, err := e.content(clumpID)
	if nil != err {
		return nil, err
	}
	return allSeqNum(content, author, logID)
}

func allSeqNum(content contentTable, author string, logID uint64) ([]uint64, error) {
	elements, err := content.Match(logPrefix(author, logID))
	if nil != err {
		return nil, err
	}

	present := make(map[uint64]int) // seqnum -> count of halves seen
	for _, el := range elements {
		seqnum, ok := decodeSeqnum(el.Key)
		if !ok {
			continue
		}
		present[seqnum]++
	}

	seqnums := make([]uint64, 0, len(present))
	for seqnum, count := range present {
		if count == 2 { // both header and payload present
			seqnums = append(seqnums, seqnum)
		}
	}
	sort.Slice(seqnums, func(i, j int) bool { return seqnums[i] < seqnums[j] })
	return seqnums, nil
}

// MaxSeqNum returns the highest stored sequence number, or 0 if none.
func (e *Engine) MaxSeqNum(author string, logID uint64, clumpID string) (uint64, error) {
	seqnums, err := e.AllSeqNum(author, logID, clumpID)
	if nil != err {
		return 0, err
	}
	if 0 == len(seqnums) {
		return 0, nil
	}
	return seqnums[len(seqnums)-1], nil
}

// Result is one retrieved row, decoded or raw depending on the
// request's Format.
type Result struct {
	SeqNum uint64
	Binary []byte
	Entry  *entry.Entry
}

func decodeResult(seqnum uint64, header []byte, format Format) (Result, error) {
	if AsBinary == format {
		return Result{SeqNum: seqnum, Binary: header}, nil
	}
	e, err := entry.Decode(header)
	if nil != err {
		return Result{}, err
	}
	return Result{SeqNum: seqnum, Entry: e}, nil
}

// Retrieve fetches the entry at (author, log_id, seqnum); a missing or
// half-written row fails NotFound (spec.md §4.5/§7).
func (e *Engine) Retrieve(author string, logID, seqnum uint64, opts Options) (Result, error) {
	content, err := e.content(opts.ClumpID)
	if nil != err {
		return Result{}, err
	}
	return retrieve(content, author, logID, seqnum, opts)
}

func retrieve(content contentTable, author string, logID, seqnum uint64, opts Options) (Result, error) {
	r, ok, err := loadRow(content, author, logID, seqnum)
	if nil != err {
		return Result{}, err
	}
	if !ok {
		return Result{}, fault.ErrEntryNotFound
	}

	if opts.Revalidate {
		if err := revalidate(content, author, logID, r); nil != err {
			return Result{}, err
		}
	}

	return decodeResult(seqnum, r.header, opts.Format)
}

// Payload returns the raw payload bytes stored alongside the entry at
// (author, log_id, seqnum), independent of the header's own Format
// (interchange needs both halves verbatim; Retrieve only ever returns
// the decoded or binary header).
func (e *Engine) Payload(author string, logID, seqnum uint64, clumpID string) ([]byte, error) {
	content, err := e.content(clumpID)
	if nil != err {
		return nil, err
	}
	r, ok, err := loadRow(content, author, logID, seqnum)
	if nil != err {
		return nil, err
	}
	if !ok {
		return nil, fault.ErrEntryNotFound
	}
	return r.payload, nil
}

func loadRow(content contentTable, author string, logID, seqnum uint64) (row, bool, error) {
	header, err := content.Get(rowKey(author, logID, seqnum, suffixHeader))
	if nil != err {
		return row{}, false, err
	}
	payload, err := content.Get(rowKey(author, logID, seqnum, suffixPayload))
	if nil != err {
		return row{}, false, err
	}
	if nil == header || nil == payload {
		return row{}, false, nil
	}
	return row{header: header, payload: payload}, true, nil
}

func revalidate(content contentTable, author string, logID uint64, r row) error {
	e, err := entry.Decode(r.header)
	if nil != err {
		return err
	}
	lookup := func(seqnum uint64) ([]byte, bool) {
		predecessor, ok, lerr := loadRow(content, author, logID, seqnum)
		if nil != lerr || !ok {
			return nil, false
		}
		return predecessor.header, true
	}
	return entry.Validate(e, r.payload, lookup)
}
