// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package yamf implements the self-describing hash constructions used
// throughout Baobab: a 66-byte "yamf-hash" (2-byte multihash tag + 64-byte
// digest) for every payload and link hash, and a 16-byte short digest used
// only for spool checksum reporting.
//
// The fixed-length array type and its Bytes/String methods
// follow the teacher's digest types (merkle.Digest, blockdigest.Digest);
// the hash function itself is blake2b, chosen over the teacher's argon2
// (used only for the deliberately slow proof-of-work block digest) because
// yamf-hash is computed on every payload and link and must be fast — see
// DESIGN.md.
package yamf

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Length is the number of bytes in a yamf-hash, including its 2-byte tag.
const Length = 66

// DigestLength is the number of digest bytes following the tag.
const DigestLength = Length - TagLength

// TagLength is the number of bytes in the multihash tag.
const TagLength = 2

// ShortLength is the number of bytes in a short digest (spec.md §2.1).
const ShortLength = 16

// tag identifies blake2b-512 as the digest algorithm; chosen arbitrarily
// since spec.md does not normatively fix a tag value, only a total width.
var tag = [TagLength]byte{0x00, 0x01}

// shortTag identifies blake2b-112, used only by the short digest.
var shortTag = [TagLength]byte{0x00, 0x02}

// Hash is a 66-byte yamf-hash: tag followed by digest.
type Hash [Length]byte

// ShortHash is the 16-byte digest used for spool status rows.
type ShortHash [ShortLength]byte

// Sum computes the yamf-hash of data.
func Sum(data []byte) Hash {
	digest := blake2b.Sum512(data)
	var h Hash
	copy(h[:TagLength], tag[:])
	copy(h[TagLength:], digest[:])
	return h
}

// Tag returns the 2-byte multihash tag.
func (h Hash) Tag() [TagLength]byte {
	var t [TagLength]byte
	copy(t[:], h[:TagLength])
	return t
}

// Digest returns the 64-byte digest, excluding the tag.
func (h Hash) Digest() [DigestLength]byte {
	var d [DigestLength]byte
	copy(d[:], h[TagLength:])
	return d
}

// Bytes returns the full 66-byte encoding.
func (h Hash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// String renders the hash as hex, for diagnostics.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// HashFromBytes reconstructs a Hash from exactly Length bytes.
func HashFromBytes(b []byte) (Hash, bool) {
	var h Hash
	if len(b) != Length {
		return h, false
	}
	copy(h[:], b)
	return h, true
}

// ShortSum computes the short digest used for spool checksums: its own
// 2-byte tag followed by a blake2b digest of ShortLength-TagLength (14)
// bytes, matching the Hash layout at a smaller width.
func ShortSum(data []byte) ShortHash {
	digestBytes := ShortLength - TagLength
	h, err := blake2b.New(digestBytes, nil)
	if nil != err {
		panic(err) // digestBytes is a compile-time constant within blake2b's supported range
	}
	h.Write(data)
	sum := h.Sum(nil)

	var sh ShortHash
	copy(sh[:TagLength], shortTag[:])
	copy(sh[TagLength:], sum)
	return sh
}

// Bytes returns the full ShortLength-byte encoding.
func (h ShortHash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// String renders the short hash as hex.
func (h ShortHash) String() string {
	return hex.EncodeToString(h[:])
}
