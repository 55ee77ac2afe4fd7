// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entry

import (
	"github.com/bitmark-inc/baobab/fault"
	"github.com/bitmark-inc/baobab/lipmaa"
	"github.com/bitmark-inc/baobab/yamf"
)

// Lookup resolves a predecessor's canonical bytes by sequence number.
// The second return value is false when the predecessor is not
// locally present, in which case the corresponding link check is
// deferred rather than failed (spec.md §4.3).
type Lookup func(seqnum uint64) ([]byte, bool)

// Validate runs every check in spec.md §4.3 against e and its payload.
// A missing predecessor does not fail validation; it simply leaves
// that edge unverified, so a caller cannot rely on a nil error meaning
// every link in the certificate path has been checked.
func Validate(e *Entry, payload []byte, lookup Lookup) error {
	if uint64(len(payload)) != e.Size {
		return fault.ErrInvalidPayloadSize
	}
	if yamf.Sum(payload) != e.PayloadHash {
		return fault.ErrInvalidPayloadHash
	}

	preimage, err := signedPreimage(e)
	if nil != err {
		return err
	}
	if err := validateAuthorSig(e.Author, e.Sig, preimage); nil != err {
		return err
	}

	if e.SeqNum > 1 {
		if err := checkLink(e.Backlink, e.SeqNum-1, lookup, fault.ErrInvalidBacklink); nil != err {
			return err
		}
	}

	l := lipmaa.Lipmaa(e.SeqNum)
	if e.SeqNum > 1 && l != e.SeqNum-1 {
		if err := checkLink(e.LipmaaLink, l, lookup, fault.ErrInvalidLipmaaLink); nil != err {
			return err
		}
	}

	return nil
}

// checkLink verifies link against the canonical bytes of the entry at
// predecessorSeq, when locally available; a missing predecessor is
// not an error (deferred verification, spec.md §4.3/§5).
func checkLink(link *yamf.Hash, predecessorSeq uint64, lookup Lookup, mismatch error) error {
	if nil == link {
		return mismatch // a required link field was absent from the decoded entry
	}
	predecessorBytes, ok := lookup(predecessorSeq)
	if !ok {
		return nil // deferred, not failed
	}
	if *link != yamf.Sum(predecessorBytes) {
		return mismatch
	}
	return nil
}
