// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpool(t *testing.T) *Spool {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestClumpOpensDefaultOnEmptyID(t *testing.T) {
	s := newTestSpool(t)

	content, status, err := s.Clump("")
	require.NoError(t, err)
	assert.NotNil(t, content)
	assert.NotNil(t, status)

	again, _, err := s.Clump(DefaultClump)
	require.NoError(t, err)
	assert.Same(t, content, again, "expected the same cached table handle")
}

func TestClumpIDsExcludesIdentityDirectory(t *testing.T) {
	s := newTestSpool(t)

	_, _, err := s.Clump("alpha")
	require.NoError(t, err)
	_, _, err = s.Clump("beta")
	require.NoError(t, err)

	ids, err := s.ClumpIDs()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"alpha", "beta"}, ids)
}

func TestTableGetPutDelete(t *testing.T) {
	s := newTestSpool(t)
	content, _, err := s.Clump("default")
	require.NoError(t, err)

	value, err := content.Get([]byte("missing"))
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, content.Put([]byte("key"), []byte("value")))
	value, err = content.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)

	has, err := content.Has([]byte("key"))
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, content.Delete([]byte("key")))
	has, err = content.Has([]byte("key"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestTableMatchAndMatchDelete(t *testing.T) {
	s := newTestSpool(t)
	content, _, err := s.Clump("default")
	require.NoError(t, err)

	require.NoError(t, content.Put([]byte("aa-1"), []byte("1")))
	require.NoError(t, content.Put([]byte("aa-2"), []byte("2")))
	require.NoError(t, content.Put([]byte("bb-1"), []byte("3")))

	matched, err := content.Match([]byte("aa-"))
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	deleted, err := content.MatchDelete([]byte("aa-"))
	require.NoError(t, err)
	assert.Len(t, deleted, 2)

	remaining, err := content.Match([]byte(""))
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestCurrentHashIsCachedUntilInvalidated(t *testing.T) {
	s := newTestSpool(t)
	content, status, err := s.Clump("default")
	require.NoError(t, err)

	require.NoError(t, content.Put([]byte("row"), []byte("value")))

	first, err := CurrentHash(content, status, ContentStatusKey())
	require.NoError(t, err)

	require.NoError(t, content.Put([]byte("row2"), []byte("value2")))

	cachedDespiteMutation, err := CurrentHash(content, status, ContentStatusKey())
	require.NoError(t, err)
	assert.Equal(t, first, cachedDespiteMutation, "CurrentHash must not see new rows until invalidated")

	require.NoError(t, InvalidateStatus(status, ContentStatusKey()))

	recomputed, err := CurrentHash(content, status, ContentStatusKey())
	require.NoError(t, err)
	assert.NotEqual(t, first, recomputed, "expected the hash to change once invalidated and recomputed")
}

func TestTruncateRemovesEveryRow(t *testing.T) {
	s := newTestSpool(t)
	content, _, err := s.Clump("default")
	require.NoError(t, err)

	require.NoError(t, content.Put([]byte("a"), []byte("1")))
	require.NoError(t, content.Put([]byte("b"), []byte("2")))

	require.NoError(t, content.Truncate())

	rows, err := content.Match([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
