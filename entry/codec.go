// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entry

import (
	"github.com/bitmark-inc/baobab/fault"
	"github.com/bitmark-inc/baobab/lipmaa"
	"github.com/bitmark-inc/baobab/varint"
	"github.com/bitmark-inc/baobab/yamf"
)

// Encode produces the canonical byte stream for e, as defined in
// spec.md §3: every header field in order, excluding payload, with
// each optional link field present or absent according to the
// seqnum/lipmaa presence rule — not according to whether e's pointer
// happens to be nil, so a caller that built e incorrectly gets an
// error here rather than a silently malformed stream.
func Encode(e *Entry) ([]byte, error) {
	return encode(e, e.Sig)
}

// signedPreimage returns e's canonical bytes with the signature field
// replaced by 64 zero bytes, the preimage that Sign/Validate operate on.
func signedPreimage(e *Entry) ([]byte, error) {
	var zero [SignatureLength]byte
	return encode(e, zero)
}

func encode(e *Entry, sig [SignatureLength]byte) ([]byte, error) {
	if Tag != e.Tag {
		return nil, fault.ErrUnknownTag
	}

	lipmaaAbsent, backlinkAbsent := linksAbsent(e.SeqNum, lipmaa.Lipmaa(e.SeqNum))

	buf := make([]byte, 0, 1+AuthorLength+2*varint.Maximum64Bytes+2*yamf.Length+varint.Maximum64Bytes+yamf.Length+SignatureLength)
	buf = append(buf, e.Tag)
	buf = append(buf, e.Author[:]...)
	buf = append(buf, varint.Encode(e.LogID)...)
	buf = append(buf, varint.Encode(e.SeqNum)...)

	if !lipmaaAbsent {
		if nil == e.LipmaaLink {
			return nil, fault.ErrInvalidLipmaaLink
		}
		buf = append(buf, e.LipmaaLink.Bytes()...)
	}
	if !backlinkAbsent {
		if nil == e.Backlink {
			return nil, fault.ErrInvalidBacklink
		}
		buf = append(buf, e.Backlink.Bytes()...)
	}

	buf = append(buf, varint.Encode(e.Size)...)
	buf = append(buf, e.PayloadHash.Bytes()...)
	buf = append(buf, sig[:]...)
	return buf, nil
}

// Decode parses the canonical byte stream for a single entry header
// from buf, per spec.md §4.2. Bytes following sig (the payload, when a
// caller has concatenated it) are ignored. Decode fails with a
// MalformedError on any short read, unknown tag, or invalid varint.
func Decode(buf []byte) (*Entry, error) {
	cur := cursor{buf: buf}

	tag, err := cur.byte1()
	if nil != err {
		return nil, err
	}
	if Tag != tag {
		return nil, fault.ErrUnknownTag
	}

	author, err := cur.fixed(AuthorLength)
	if nil != err {
		return nil, err
	}

	logID, err := cur.varint()
	if nil != err {
		return nil, err
	}

	seqnum, err := cur.varint()
	if nil != err {
		return nil, err
	}
	if seqnum < 1 {
		return nil, fault.ErrInvalidVarint
	}

	e := &Entry{Tag: tag, LogID: logID, SeqNum: seqnum}
	copy(e.Author[:], author)

	lipmaaAbsent, backlinkAbsent := linksAbsent(seqnum, lipmaa.Lipmaa(seqnum))

	if !lipmaaAbsent {
		b, err := cur.fixed(yamf.Length)
		if nil != err {
			return nil, err
		}
		h, ok := yamf.HashFromBytes(b)
		if !ok {
			return nil, fault.ErrShortRead
		}
		e.LipmaaLink = &h
	}
	if !backlinkAbsent {
		b, err := cur.fixed(yamf.Length)
		if nil != err {
			return nil, err
		}
		h, ok := yamf.HashFromBytes(b)
		if !ok {
			return nil, fault.ErrShortRead
		}
		e.Backlink = &h
	}

	size, err := cur.varint()
	if nil != err {
		return nil, err
	}
	e.Size = size

	payloadHash, err := cur.fixed(yamf.Length)
	if nil != err {
		return nil, err
	}
	h, ok := yamf.HashFromBytes(payloadHash)
	if !ok {
		return nil, fault.ErrShortRead
	}
	e.PayloadHash = h

	sig, err := cur.fixed(SignatureLength)
	if nil != err {
		return nil, err
	}
	copy(e.Sig[:], sig)

	return e, nil
}

// cursor is a single forward-only reader over a byte slice with
// explicit length checks, per the "recursive decode pipeline" design
// note in spec.md §9 recommending a cursor-style parser.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) byte1() (byte, error) {
	if c.pos+1 > len(c.buf) {
		return 0, fault.ErrShortRead
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) fixed(n int) ([]byte, error) {
	if c.pos+n > len(c.buf) {
		return nil, fault.ErrShortRead
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) varint() (uint64, error) {
	value, count := varint.Decode(c.buf[c.pos:])
	if 0 == count {
		return 0, fault.ErrInvalidVarint
	}
	c.pos += count
	return value, nil
}
