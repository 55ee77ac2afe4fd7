// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package entry implements the Bamboo entry data model: its structure,
// binary codec, and field-level validation (spec.md §3, §4.2, §4.3).
//
// The struct shape and the Pack/Validate split follow the teacher's
// transactionrecord package (pack.go, unpack.go), adapted from a
// tag-dispatched union of record types to a single fixed record, and
// from account.Account/account.Signature to raw fixed-width arrays
// since Baobab has no variable-length key-variant encoding to carry.
package entry

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/baobab/fault"
	"github.com/bitmark-inc/baobab/yamf"
)

// Tag identifies the only defined entry variant.
const Tag = 0x00

// MaxPayloadSize bounds the payload accepted by New. spec.md §4.2
// leaves the limit implementation-chosen; 16 MiB comfortably covers
// any reasonable Bamboo application payload while bounding a single
// append's memory footprint.
const MaxPayloadSize = 16 * 1024 * 1024

// SignatureLength is the width of an Ed25519 signature.
const SignatureLength = ed25519.SignatureSize

// AuthorLength is the width of an Ed25519 public key.
const AuthorLength = ed25519.PublicKeySize

// Entry is a single decoded Bamboo log entry (spec.md §3).
type Entry struct {
	Tag         byte
	Author      [AuthorLength]byte
	LogID       uint64
	SeqNum      uint64
	LipmaaLink  *yamf.Hash // nil iff absent per the presence rule
	Backlink    *yamf.Hash // nil iff SeqNum == 1
	Size        uint64
	PayloadHash yamf.Hash
	Sig         [SignatureLength]byte
}

// Equal reports whether two entries are byte-identical, the notion of
// sameness spec.md §3 requires for two rows sharing a content key.
func (e *Entry) Equal(other *Entry) bool {
	a, erra := Encode(e)
	b, errb := Encode(other)
	if nil != erra || nil != errb {
		return false
	}
	return string(a) == string(b)
}

// linksAbsent reports the presence rule for seqnum's two link fields,
// per spec.md §3: entry 1 has neither; otherwise the lipmaa link is
// present only when it would not duplicate the backlink.
func linksAbsent(seqnum, lipmaaOf uint64) (lipmaaAbsent, backlinkAbsent bool) {
	if seqnum == 1 {
		return true, true
	}
	return lipmaaOf == seqnum-1, false
}

// validateAuthorSig checks the Ed25519 signature over preimage against
// the entry's embedded author key.
func validateAuthorSig(author [AuthorLength]byte, sig [SignatureLength]byte, preimage []byte) error {
	if !ed25519.Verify(author[:], preimage, sig[:]) {
		return fault.ErrInvalidSignature
	}
	return nil
}
