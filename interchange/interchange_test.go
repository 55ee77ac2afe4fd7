// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interchange

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/baobab/identity"
	"github.com/bitmark-inc/baobab/logengine"
	"github.com/bitmark-inc/baobab/spool"
)

type fixture struct {
	spool    *spool.Spool
	engine   *logengine.Engine
	registry *identity.Registry
	public   string
}

func newFixture(t *testing.T) fixture {
	s, err := spool.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(s.Close)

	registry := identity.New(s)
	public, err := registry.Create("alice", nil)
	require.NoError(t, err)

	return fixture{spool: s, engine: logengine.New(s), registry: registry, public: public}
}

func (f fixture) appendN(t *testing.T, logID uint64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := f.engine.Append(f.registry, "alice", logID, []byte("payload"), "")
		require.NoError(t, err)
	}
}

func TestExportStoreWritesOneFilePerClumpPlusIdentity(t *testing.T) {
	f := newFixture(t)
	f.appendN(t, 0, 5)

	dir := t.TempDir()
	require.NoError(t, ExportStore(f.spool, f.engine, dir))

	_, err := os.Stat(filepath.Join(dir, "default.json"))
	assert.NoError(t, err, "expected default.json")

	_, err = os.Stat(filepath.Join(dir, "identity.json"))
	assert.NoError(t, err, "expected identity.json")
}

func TestExportThenImportRoundTripsEntries(t *testing.T) {
	f := newFixture(t)
	f.appendN(t, 0, 5)

	dir := t.TempDir()
	require.NoError(t, ExportStore(f.spool, f.engine, dir))

	freshSpool, err := spool.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(freshSpool.Close)
	freshEngine := logengine.New(freshSpool)

	require.NoError(t, ImportStore(freshSpool, freshEngine, dir))

	maxSeq, err := freshEngine.MaxSeqNum(f.public, 0, "")
	require.NoError(t, err)
	assert.EqualValues(t, 5, maxSeq)

	freshRegistry := identity.New(freshSpool)
	key, err := freshRegistry.Key("alice", identity.PublicKey)
	require.NoError(t, err)
	assert.NotEmpty(t, key, "expected a restored public key")
}

func TestImportStoreIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.appendN(t, 0, 3)

	dir := t.TempDir()
	require.NoError(t, ExportStore(f.spool, f.engine, dir))

	assert.NoError(t, ImportStore(f.spool, f.engine, dir), "first import")
	assert.NoError(t, ImportStore(f.spool, f.engine, dir), "second import")
}
