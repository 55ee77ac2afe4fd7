// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entry

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/baobab/fault"
	"github.com/bitmark-inc/baobab/lipmaa"
	"github.com/bitmark-inc/baobab/yamf"
)

// New builds and signs the entry at seqnum for (author, logID),
// following spec.md §4.4 steps 3-6. backlinkBytes/lipmaaBytes are the
// canonical bytes of the predecessor/skip-predecessor entries; either
// may be nil when seqnum makes that link absent, but must be supplied
// when the presence rule requires it (the caller, the log engine's
// append, is responsible for resolving BrokenChain before calling New).
func New(secret ed25519.PrivateKey, author [AuthorLength]byte, logID, seqnum uint64, backlinkBytes, lipmaaBytes []byte, payload []byte) (*Entry, error) {
	if len(payload) > MaxPayloadSize {
		return nil, fault.ErrInvalidPayloadSize
	}

	e := &Entry{
		Tag:         Tag,
		Author:      author,
		LogID:       logID,
		SeqNum:      seqnum,
		Size:        uint64(len(payload)),
		PayloadHash: yamf.Sum(payload),
	}

	lipmaaAbsent, backlinkAbsent := linksAbsent(seqnum, lipmaa.Lipmaa(seqnum))
	if !backlinkAbsent {
		if nil == backlinkBytes {
			return nil, fault.ErrBrokenChain
		}
		h := yamf.Sum(backlinkBytes)
		e.Backlink = &h
	}
	if !lipmaaAbsent {
		if nil == lipmaaBytes {
			return nil, fault.ErrBrokenChain
		}
		h := yamf.Sum(lipmaaBytes)
		e.LipmaaLink = &h
	}

	preimage, err := signedPreimage(e)
	if nil != err {
		return nil, err
	}
	sig := ed25519.Sign(secret, preimage)
	copy(e.Sig[:], sig)

	return e, nil
}
