// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/baobab/base62"
	"github.com/bitmark-inc/baobab/fault"
	"github.com/bitmark-inc/baobab/identity"
	"github.com/bitmark-inc/baobab/spool"
)

func newRegistry(t *testing.T) *identity.Registry {
	t.Helper()
	s, err := spool.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return identity.New(s)
}

func TestCreateGeneratesDistinctIdentities(t *testing.T) {
	r := newRegistry(t)

	alice, err := r.Create("alice", nil)
	require.NoError(t, err)
	bob, err := r.Create("bob", nil)
	require.NoError(t, err)

	assert.NotEqual(t, alice, bob, "expected distinct public identifiers")
	assert.Equal(t, base62.EncodedLength, len(alice))
}

func TestCreateFromSeedIsDeterministic(t *testing.T) {
	r := newRegistry(t)

	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}

	first, err := r.Create("one", seed)
	require.NoError(t, err)
	second, err := r.Create("two", seed)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed should yield same identifier")
}

func TestCreateRejectsMalformedSecret(t *testing.T) {
	r := newRegistry(t)
	_, err := r.Create("broken", []byte("too short"))
	assert.True(t, fault.IsImproperArguments(err))
}

func TestKeyRoundTrip(t *testing.T) {
	r := newRegistry(t)
	public, err := r.Create("alice", nil)
	require.NoError(t, err)

	secretKey, err := r.Key("alice", identity.SecretKey)
	require.NoError(t, err)
	publicKey, err := r.Key("alice", identity.PublicKey)
	require.NoError(t, err)

	derived, err := base62.Encode(publicKey)
	require.NoError(t, err)
	assert.Equal(t, public, derived)

	sig := ed25519.Sign(ed25519.PrivateKey(secretKey), []byte("message"))
	assert.True(t, ed25519.Verify(ed25519.PublicKey(publicKey), []byte("message"), sig))
}

func TestKeyUnknownAlias(t *testing.T) {
	r := newRegistry(t)
	_, err := r.Key("nobody", identity.PublicKey)
	assert.True(t, fault.IsNotFound(err))
}

func TestListIsSorted(t *testing.T) {
	r := newRegistry(t)
	for _, alias := range []string{"carol", "alice", "bob"} {
		_, err := r.Create(alias, nil)
		require.NoError(t, err)
	}

	aliases, err := r.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, aliases)
}

func TestRenameMovesIdentity(t *testing.T) {
	r := newRegistry(t)
	public, err := r.Create("old-name", nil)
	require.NoError(t, err)
	require.NoError(t, r.Rename("old-name", "new-name"))

	_, err = r.Key("old-name", identity.PublicKey)
	assert.True(t, fault.IsNotFound(err))

	resolved, err := r.AsBase62("new-name")
	require.NoError(t, err)
	assert.Equal(t, public, resolved)
}

func TestDropRemovesIdentity(t *testing.T) {
	r := newRegistry(t)
	_, err := r.Create("alice", nil)
	require.NoError(t, err)
	require.NoError(t, r.Drop("alice"))

	_, err = r.Key("alice", identity.PublicKey)
	assert.True(t, fault.IsNotFound(err))
}

func TestAsBase62ResolvesAliasAndIdentifier(t *testing.T) {
	r := newRegistry(t)
	public, err := r.Create("alice", nil)
	require.NoError(t, err)

	byAlias, err := r.AsBase62("alice")
	require.NoError(t, err)
	assert.Equal(t, public, byAlias)

	byIdentifier, err := r.AsBase62(public)
	require.NoError(t, err)
	assert.Equal(t, public, byIdentifier)
}

func TestAsBase62UnknownReference(t *testing.T) {
	r := newRegistry(t)
	_, err := r.AsBase62("nobody")
	assert.True(t, fault.IsUnknownIdentity(err))
}

func TestAsBase62PrefixResolution(t *testing.T) {
	r := newRegistry(t)
	public, err := r.Create("alice", nil)
	require.NoError(t, err)

	resolved, err := r.AsBase62("~" + public[:8])
	require.NoError(t, err)
	assert.Equal(t, public, resolved)
}

func TestAsBase62AmbiguousPrefix(t *testing.T) {
	r := newRegistry(t)
	_, err := r.Create("alice", nil)
	require.NoError(t, err)
	_, err = r.Create("bob", nil)
	require.NoError(t, err)

	// the empty prefix matches every stored identity; with two distinct
	// keys present this must report ambiguity rather than pick one.
	_, err = r.AsBase62("~")
	assert.True(t, fault.IsUnknownIdentity(err))
}
