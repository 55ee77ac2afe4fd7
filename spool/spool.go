// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package spool maintains the on-disk data store for Baobab.
//
// It mirrors the teacher's storage package: a set of LevelDB-backed
// tables opened once and held for the process lifetime (see design
// note "Per-op open/close" in spec.md §9). Unlike the teacher, each
// logical table already owns its own directory on disk, so there is no
// prefix-multiplexing of several tables into one database file.
//
// Three table kinds exist:
//
//	content  - one per clump, keyed by (author, log_id, seqnum)
//	status   - one per clump, keyed by table name, caching current-hash
//	identity - one global table, keyed by alias
package spool

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/baobab/fault"
)

const (
	// DefaultClump is used when no clump id is specified.
	DefaultClump = "default"

	identityFile = "identity.dets"
	contentFile  = "content.dets"
	statusFile   = "status.dets"
)

// clumpTables holds the two clump-scoped tables.
type clumpTables struct {
	content *table
	status  *table
}

// Spool is the handle threaded through every core call, replacing the
// teacher's process-wide global configuration for the spool path (see
// design note "Global configuration for spool path" in spec.md §9).
type Spool struct {
	mu       sync.Mutex
	dir      string
	identity *table
	clumps   map[string]*clumpTables
}

// New opens (creating if necessary) the spool rooted at dir. The
// identity table is opened immediately; clump tables are opened lazily
// on first use.
func New(dir string) (*Spool, error) {
	if err := os.MkdirAll(dir, 0700); nil != err {
		return nil, err
	}

	identity, err := openTable(filepath.Join(dir, identityFile), "identity")
	if nil != err {
		return nil, err
	}

	return &Spool{
		dir:      dir,
		identity: identity,
		clumps:   make(map[string]*clumpTables),
	}, nil
}

// Close closes every table opened so far.
func (s *Spool) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity.close()
	for _, c := range s.clumps {
		c.content.close()
		c.status.close()
	}
	s.clumps = make(map[string]*clumpTables)
}

// Identity returns the global identity table.
func (s *Spool) Identity() *table {
	return s.identity
}

// Clump returns (opening if necessary) the content and status tables
// for clumpID, defaulting to DefaultClump for the empty string.
func (s *Spool) Clump(clumpID string) (content *table, status *table, err error) {
	if "" == clumpID {
		clumpID = DefaultClump
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.clumps[clumpID]; ok {
		return c.content, c.status, nil
	}

	clumpDir := filepath.Join(s.dir, clumpID)
	if err := os.MkdirAll(clumpDir, 0700); nil != err {
		return nil, nil, err
	}

	content, err = openTable(filepath.Join(clumpDir, contentFile), "content:"+clumpID)
	if nil != err {
		return nil, nil, err
	}

	status, err = openTable(filepath.Join(clumpDir, statusFile), "status:"+clumpID)
	if nil != err {
		content.close()
		return nil, nil, err
	}

	s.clumps[clumpID] = &clumpTables{content: content, status: status}
	return content, status, nil
}

// ValidClumpID rejects the empty string; any other string is a valid
// clump partition name (spec.md §3 "Clump").
func ValidClumpID(clumpID string) error {
	if "" == clumpID {
		return fault.ErrInvalidClumpID
	}
	return nil
}

// ClumpIDs lists every clump directory present on disk, including ones
// not yet opened this process (needed by export_store/import_store,
// which must cover the whole spool rather than just its open handles).
func (s *Spool) ClumpIDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if nil != err {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && identityFile != entry.Name() {
			ids = append(ids, entry.Name())
		}
	}
	return ids, nil
}
