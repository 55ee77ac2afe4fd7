// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logengine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/baobab/entry"
	"github.com/bitmark-inc/baobab/fault"
	"github.com/bitmark-inc/baobab/identity"
	"github.com/bitmark-inc/baobab/lipmaa"
	"github.com/bitmark-inc/baobab/logengine"
	"github.com/bitmark-inc/baobab/spool"
)

func newFixture(t *testing.T) (*logengine.Engine, *identity.Registry, string) {
	t.Helper()
	s, err := spool.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(s.Close)

	r := identity.New(s)
	public, err := r.Create("testy", nil)
	require.NoError(t, err)
	return logengine.New(s), r, public
}

func appendN(t *testing.T, engine *logengine.Engine, registry *identity.Registry, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := engine.Append(registry, "testy", 0, []byte(fmt.Sprintf("Entry: %d", i)), "")
		require.NoError(t, err)
	}
}

func TestAppendFirstEntry(t *testing.T) {
	engine, registry, public := newFixture(t)

	result, err := engine.Append(registry, "testy", 0, []byte("An entry for testing"), "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.SeqNum)
	assert.EqualValues(t, 0, result.Entry.LogID)
	assert.EqualValues(t, 20, result.Entry.Size)
	assert.EqualValues(t, 0x00, result.Entry.Tag)

	got, err := engine.Retrieve(public, 0, 1, logengine.Default())
	require.NoError(t, err)
	assert.True(t, got.Entry.Equal(result.Entry))
}

func TestAppendChainAndFullLog(t *testing.T) {
	engine, registry, public := newFixture(t)
	appendN(t, engine, registry, 14)

	max, err := engine.MaxSeqNum(public, 0, "")
	require.NoError(t, err)
	assert.EqualValues(t, 14, max)

	full, err := engine.FullLog(public, 0, logengine.Default())
	require.NoError(t, err)
	require.Len(t, full, 14)
	for i, result := range full {
		assert.EqualValues(t, i+1, result.SeqNum, "full_log is not ascending at index %d", i)
	}
}

func TestAppendSetsBacklinkAndLipmaaLink(t *testing.T) {
	engine, registry, public := newFixture(t)
	appendN(t, engine, registry, 6)

	for seq := uint64(2); seq <= 6; seq++ {
		result, err := engine.Retrieve(public, 0, seq, logengine.Default())
		require.NoError(t, err)
		assert.NotNil(t, result.Entry.Backlink, "entry %d missing backlink", seq)

		l := lipmaa.Lipmaa(seq)
		if l == seq-1 {
			assert.Nil(t, result.Entry.LipmaaLink, "entry %d should have no lipmaalink (lipmaa(%d)==%d)", seq, seq, l)
		} else {
			assert.NotNil(t, result.Entry.LipmaaLink, "entry %d missing required lipmaalink", seq)
		}
	}
}

func TestLogAtReturnsCertificatePool(t *testing.T) {
	engine, registry, public := newFixture(t)
	appendN(t, engine, registry, 14)

	results, err := engine.LogAt(public, 5, 0, logengine.Default())
	require.NoError(t, err)
	pool := lipmaa.CertPool(5)
	assert.Len(t, results, len(pool))
	for i, result := range results {
		if i > 0 {
			assert.Greater(t, result.SeqNum, results[i-1].SeqNum, "log_at results are not strictly ascending")
		}
	}
}

func TestLogRangeRejectsImproperRange(t *testing.T) {
	engine, _, public := newFixture(t)
	_, err := engine.LogRange(public, 1, 5, 0, "")
	assert.True(t, fault.IsImproperRange(err))

	_, err = engine.LogRange(public, 5, 2, 0, "")
	assert.True(t, fault.IsImproperRange(err))
}

func TestLogRangeShrinksAfterCompact(t *testing.T) {
	engine, registry, public := newFixture(t)
	appendN(t, engine, registry, 14)

	before, err := engine.LogRange(public, 2, 14, 0, "")
	require.NoError(t, err)
	assert.Len(t, before, 13)

	_, err = engine.Compact(public, 0, "")
	require.NoError(t, err)

	after, err := engine.LogRange(public, 2, 14, 0, "")
	require.NoError(t, err)
	assert.Less(t, len(after), len(before), "expected compaction to shrink the range")

	_, err = engine.Retrieve(public, 0, 2, logengine.Default())
	assert.True(t, fault.IsNotFound(err))

	latest, err := engine.LogAt(public, 14, 0, logengine.Default())
	require.NoError(t, err)
	assert.NotEmpty(t, latest, "expected log_at(.,14) to still succeed after compaction")
}

func TestMultipleLogsStoredInfo(t *testing.T) {
	engine, registry, public := newFixture(t)
	appendN(t, engine, registry, 14)

	_, err := engine.Append(registry, "testy", 1, []byte("second log"), "")
	require.NoError(t, err)
	_, err = engine.Append(registry, "testy", 1337, []byte("third log"), "")
	require.NoError(t, err)

	info, err := engine.StoredInfo("")
	require.NoError(t, err)
	want := map[uint64]uint64{0: 14, 1: 1, 1337: 1}
	require.Len(t, info, len(want))
	for _, si := range info {
		assert.Equal(t, public, si.Author)
		assert.Equal(t, want[si.LogID], si.MaxSeqNum, "log %d", si.LogID)
	}
}

func TestPurgeSpecificAuthorAndLog(t *testing.T) {
	engine, registry, public := newFixture(t)
	_, err := engine.Append(registry, "testy", 0, []byte("a"), "")
	require.NoError(t, err)
	_, err = engine.Append(registry, "testy", 1, []byte("b"), "")
	require.NoError(t, err)

	_, err = engine.Purge(logengine.SpecificAuthor(public), logengine.SpecificLog(0), "")
	require.NoError(t, err)

	_, err = engine.Retrieve(public, 0, 1, logengine.Default())
	assert.True(t, fault.IsNotFound(err), "expected log 0 purged")

	_, err = engine.Retrieve(public, 1, 1, logengine.Default())
	assert.NoError(t, err, "expected log 1 untouched")
}

func TestPurgeAllIsIdempotent(t *testing.T) {
	engine, registry, _ := newFixture(t)
	_, err := engine.Append(registry, "testy", 0, []byte("a"), "")
	require.NoError(t, err)

	first, err := engine.Purge(logengine.AllAuthors(), logengine.AllLogs(), "")
	require.NoError(t, err)
	assert.Empty(t, first)

	second, err := engine.Purge(logengine.AllAuthors(), logengine.AllLogs(), "")
	require.NoError(t, err)
	assert.Empty(t, second, "expected purge(:all,:all) to stay idempotent")
}

func TestCurrentHashChangesOnMutation(t *testing.T) {
	engine, registry, _ := newFixture(t)

	before, err := engine.CurrentHash("")
	require.NoError(t, err)
	_, err = engine.Append(registry, "testy", 0, []byte("a"), "")
	require.NoError(t, err)
	after, err := engine.CurrentHash("")
	require.NoError(t, err)

	assert.NotEqual(t, before, after, "expected current_hash to change after a mutation")
}

func TestIdentityCurrentHashChangesOnMutation(t *testing.T) {
	engine, registry, _ := newFixture(t)

	before, err := engine.IdentityCurrentHash()
	require.NoError(t, err)

	_, err = registry.Create("carol", nil)
	require.NoError(t, err)
	afterCreate, err := engine.IdentityCurrentHash()
	require.NoError(t, err)
	assert.NotEqual(t, before, afterCreate, "expected identity current_hash to change after Create")

	require.NoError(t, registry.Rename("carol", "carol2"))
	afterRename, err := engine.IdentityCurrentHash()
	require.NoError(t, err)
	assert.NotEqual(t, afterCreate, afterRename, "expected identity current_hash to change after Rename")

	require.NoError(t, registry.Drop("carol2"))
	afterDrop, err := engine.IdentityCurrentHash()
	require.NoError(t, err)
	assert.NotEqual(t, afterRename, afterDrop, "expected identity current_hash to change after Drop")
}

func TestImportBinariesDetectsConflict(t *testing.T) {
	engine, registry, public := newFixture(t)

	_, err := engine.Append(registry, "testy", 0, []byte("original"), "")
	require.NoError(t, err)

	secretKey, err := registry.Key("testy", identity.SecretKey)
	require.NoError(t, err)
	publicKey, err := registry.Key("testy", identity.PublicKey)
	require.NoError(t, err)
	var authorBytes [entry.AuthorLength]byte
	copy(authorBytes[:], publicKey)

	replacement, err := entry.New(ed25519.PrivateKey(secretKey), authorBytes, 0, 1, nil, nil, []byte("replaced"))
	require.NoError(t, err)
	replacementHeader, err := entry.Encode(replacement)
	require.NoError(t, err)

	outcomes, err := engine.ImportBinaries([][]byte{replacementHeader}, [][]byte{[]byte("replaced")}, "", false)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, fault.IsConflict(outcomes[0].Err))

	replaceOutcomes, err := engine.ImportBinaries([][]byte{replacementHeader}, [][]byte{[]byte("replaced")}, "", true)
	require.NoError(t, err)
	assert.NoError(t, replaceOutcomes[0].Err, "expected replace=true to overwrite cleanly")

	got, err := engine.Retrieve(public, 0, 1, logengine.Default())
	require.NoError(t, err)
	assert.EqualValues(t, 8, got.Entry.Size, "expected replaced entry")
}

func TestImportBinariesReplaysIdenticalRow(t *testing.T) {
	engine, registry, public := newFixture(t)

	_, err := engine.Append(registry, "testy", 0, []byte("original"), "")
	require.NoError(t, err)
	original, err := engine.Retrieve(public, 0, 1, logengine.Options{Format: logengine.AsBinary})
	require.NoError(t, err)

	outcomes, err := engine.ImportBinaries([][]byte{original.Binary}, [][]byte{[]byte("original")}, "", false)
	require.NoError(t, err)
	assert.NoError(t, outcomes[0].Err, "expected re-importing an identical row to succeed")
}
