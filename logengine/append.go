// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logengine

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/baobab/base62"
	"github.com/bitmark-inc/baobab/entry"
	"github.com/bitmark-inc/baobab/fault"
	"github.com/bitmark-inc/baobab/identity"
	"github.com/bitmark-inc/baobab/lipmaa"
)

// Append runs spec.md §4.4: resolve the alias to a key pair, compute
// the next sequence number, load whatever predecessors the entry's
// links require, sign, and store both halves of the new row.
func (e *Engine) Append(registry *identity.Registry, authorAlias string, logID uint64, payload []byte, clumpID string) (Result, error) {
	secretKey, err := registry.Key(authorAlias, identity.SecretKey)
	if nil != err {
		return Result{}, err
	}
	publicKey, err := registry.Key(authorAlias, identity.PublicKey)
	if nil != err {
		return Result{}, err
	}
	public, err := base62.Encode(publicKey)
	if nil != err {
		return Result{}, err
	}

	content, err := e.content(clumpID)
	if nil != err {
		return Result{}, err
	}

	maxSeq, err := allMax(content, public, logID)
	if nil != err {
		return Result{}, err
	}
	seq := maxSeq + 1

	var backlinkBytes, lipmaaBytes []byte
	if seq > 1 {
		predecessor, ok, err := loadRow(content, public, logID, seq-1)
		if nil != err {
			return Result{}, err
		}
		if !ok {
			return Result{}, fault.ErrBrokenChain
		}
		backlinkBytes = predecessor.header
	}

	l := lipmaa.Lipmaa(seq)
	if seq > 1 && l != seq-1 {
		predecessor, ok, err := loadRow(content, public, logID, l)
		if nil != err {
			return Result{}, err
		}
		if !ok {
			return Result{}, fault.ErrBrokenChain
		}
		lipmaaBytes = predecessor.header
	}

	var author [entry.AuthorLength]byte
	copy(author[:], publicKey)

	built, err := entry.New(ed25519.PrivateKey(secretKey), author, logID, seq, backlinkBytes, lipmaaBytes, payload)
	if nil != err {
		return Result{}, err
	}

	header, err := entry.Encode(built)
	if nil != err {
		return Result{}, err
	}

	if err := content.Put(rowKey(public, logID, seq, suffixHeader), header); nil != err {
		return Result{}, err
	}
	if err := content.Put(rowKey(public, logID, seq, suffixPayload), payload); nil != err {
		return Result{}, err
	}

	invalidateContentStatus(e.spool, clumpID)

	return Result{SeqNum: seq, Entry: built, Binary: header}, nil
}

func allMax(content contentTable, author string, logID uint64) (uint64, error) {
	seqnums, err := allSeqNum(content, author, logID)
	if nil != err {
		return 0, err
	}
	if 0 == len(seqnums) {
		return 0, nil
	}
	return seqnums[len(seqnums)-1], nil
}
