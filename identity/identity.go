// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identity implements the alias-keyed Ed25519 key registry
// named in spec.md §4.10, backed by the spool's global identity table.
//
// The Create/Key/List/Rename/Drop shape is grounded on the teacher's
// account.Account type (account.go) and on command/dbmatch's pattern
// of iterating a table's rows through spool.Match/Fold, but drops the
// Base58 key-variant/checksum/test-network envelope entirely: Baobab
// identities are raw 32-byte Ed25519 keys named only by a user alias
// and their Base62 public identifier.
package identity

import (
	"crypto/rand"
	"sort"
	"strings"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/baobab/base62"
	"github.com/bitmark-inc/baobab/fault"
	"github.com/bitmark-inc/baobab/spool"
)

// Registry wraps the spool's identity table.
type Registry struct {
	table      identityTable
	invalidate func()
}

// identityTable is the subset of *spool.table exercised here, declared
// so this package depends on an interface rather than spool internals.
type identityTable interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Put(key []byte, value []byte) error
	Delete(key []byte) error
	Fold(f func(key, value []byte) error) error
}

// New wraps a spool's identity table in a Registry. invalidate is
// bound to the owning spool here, rather than threaded through every
// mutating method, because the identity table's cached current-hash
// (spec.md §4.9) lives in the default clump's status table — a detail
// this package otherwise has no reason to know about.
func New(s *spool.Spool) *Registry {
	return &Registry{
		table: s.Identity(),
		invalidate: func() {
			_, status, err := s.Clump(spool.DefaultClump)
			if nil != err {
				return
			}
			spool.InvalidateStatus(status, spool.IdentityStatusKey())
		},
	}
}

// Create derives a key pair and stores it under alias. secret may be
// nil (a fresh key is drawn), a 32-byte raw secret, or a 43-character
// Base62 string; any other shape fails ImproperArguments. Creating a
// duplicate alias overwrites it; creating from the same secret always
// yields the same public identifier.
func (r *Registry) Create(alias string, secret []byte) (string, error) {
	secretKey, err := resolveSecret(secret)
	if nil != err {
		return "", err
	}

	public := secretKey.Public().(ed25519.PublicKey)
	row := make([]byte, 0, len(secretKey)+len(public))
	row = append(row, secretKey...)
	row = append(row, public...)

	if err := r.table.Put([]byte(alias), row); nil != err {
		return "", err
	}
	r.invalidate()
	return base62.Encode(public)
}

func resolveSecret(secret []byte) (ed25519.PrivateKey, error) {
	switch len(secret) {
	case 0:
		seed := make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); nil != err {
			return nil, err
		}
		return ed25519.NewKeyFromSeed(seed), nil
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(secret), nil
	case base62.EncodedLength:
		decoded, err := base62.Decode(string(secret))
		if nil != err {
			return nil, fault.ErrInvalidSecretKey
		}
		return ed25519.NewKeyFromSeed(decoded), nil
	default:
		return nil, fault.ErrInvalidSecretKey
	}
}

// Which selects the secret or public half of a stored key pair.
type Which int

const (
	SecretKey Which = iota
	PublicKey
)

// Key returns the raw secret or public key bytes stored under alias.
func (r *Registry) Key(alias string, which Which) ([]byte, error) {
	row, err := r.table.Get([]byte(alias))
	if nil != err {
		return nil, err
	}
	if nil == row {
		return nil, fault.ErrIdentityNotFound
	}
	switch which {
	case SecretKey:
		return row[:ed25519.PrivateKeySize], nil
	case PublicKey:
		return row[ed25519.PrivateKeySize:], nil
	default:
		return nil, fault.ErrInvalidReference
	}
}

// List returns every stored alias, sorted.
func (r *Registry) List() ([]string, error) {
	aliases := make([]string, 0)
	err := r.table.Fold(func(key, _ []byte) error {
		aliases = append(aliases, string(key))
		return nil
	})
	if nil != err {
		return nil, err
	}
	sort.Strings(aliases)
	return aliases, nil
}

// Rename moves the key pair stored under oldAlias to newAlias.
func (r *Registry) Rename(oldAlias, newAlias string) error {
	row, err := r.table.Get([]byte(oldAlias))
	if nil != err {
		return err
	}
	if nil == row {
		return fault.ErrIdentityNotFound
	}
	if err := r.table.Put([]byte(newAlias), row); nil != err {
		return err
	}
	if err := r.table.Delete([]byte(oldAlias)); nil != err {
		return err
	}
	r.invalidate()
	return nil
}

// Drop removes the key pair stored under alias.
func (r *Registry) Drop(alias string) error {
	if err := r.table.Delete([]byte(alias)); nil != err {
		return err
	}
	r.invalidate()
	return nil
}

// AsBase62 resolves ref — a known alias, a 43-char Base62 identifier, a
// raw 32-byte public key, or a "~prefix" — to its canonical Base62
// public identifier, per spec.md §4.10.
func (r *Registry) AsBase62(ref string) (string, error) {
	if strings.HasPrefix(ref, "~") {
		return r.resolvePrefix(ref[1:])
	}
	if base62.EncodedLength == len(ref) {
		if _, err := base62.Decode(ref); nil == err {
			return ref, nil
		}
	}
	if ed25519.PublicKeySize == len(ref) {
		return base62.Encode([]byte(ref))
	}

	row, err := r.table.Get([]byte(ref))
	if nil != err {
		return "", err
	}
	if nil == row {
		return "", fault.ErrUnknownIdentity
	}
	return base62.Encode(row[ed25519.PrivateKeySize:])
}

func (r *Registry) resolvePrefix(prefix string) (string, error) {
	matches := make([]string, 0, 1)
	err := r.table.Fold(func(_, row []byte) error {
		encoded, err := base62.Encode(row[ed25519.PrivateKeySize:])
		if nil != err {
			return err
		}
		if strings.HasPrefix(encoded, prefix) {
			matches = append(matches, encoded)
		}
		return nil
	})
	if nil != err {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fault.ErrUnknownIdentity
	case 1:
		return matches[0], nil
	default:
		return "", fault.ErrAmbiguousIdentity
	}
}
