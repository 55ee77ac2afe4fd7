// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logengine

import (
	"encoding/binary"

	"github.com/bitmark-inc/baobab/base62"
)

// Content-table rows are keyed (author, log_id, seqnum, half) per
// spec.md §6: a fixed-width Base62 author identifier, followed by an
// 8-byte big-endian log id, an 8-byte big-endian sequence number, and a
// one-byte suffix distinguishing the entry header from its payload.
// Fixing the width of every field keeps author/log prefixes usable with
// a single lexicographic range scan, grounded on the teacher's
// storage.PoolHandle key convention of a constant-width prefix per
// logical partition (handle.go).
const (
	authorWidth = base62.EncodedLength
	logIDWidth  = 8
	seqWidth    = 8
	suffixWidth = 1

	rowKeyWidth = authorWidth + logIDWidth + seqWidth + suffixWidth

	suffixHeader  byte = 0x00
	suffixPayload byte = 0x01
)

func authorPrefix(author string) []byte {
	return []byte(author)
}

func logPrefix(author string, logID uint64) []byte {
	p := make([]byte, authorWidth+logIDWidth)
	copy(p, author)
	binary.BigEndian.PutUint64(p[authorWidth:], logID)
	return p
}

func rowPrefix(author string, logID, seqnum uint64) []byte {
	p := make([]byte, authorWidth+logIDWidth+seqWidth)
	copy(p, logPrefix(author, logID))
	binary.BigEndian.PutUint64(p[authorWidth+logIDWidth:], seqnum)
	return p
}

func rowKey(author string, logID, seqnum uint64, suffix byte) []byte {
	k := make([]byte, rowKeyWidth)
	copy(k, rowPrefix(author, logID, seqnum))
	k[rowKeyWidth-1] = suffix
	return k
}

// decodeLogID extracts the log id from a key known to share logPrefix's
// layout; used by purge when scanning the whole table for log_id = n.
func decodeLogID(key []byte) (uint64, bool) {
	if len(key) < authorWidth+logIDWidth {
		return 0, false
	}
	return binary.BigEndian.Uint64(key[authorWidth : authorWidth+logIDWidth]), true
}

func decodeAuthor(key []byte) (string, bool) {
	if len(key) < authorWidth {
		return "", false
	}
	return string(key[:authorWidth]), true
}

func decodeSeqnum(key []byte) (uint64, bool) {
	if len(key) < authorWidth+logIDWidth+seqWidth {
		return 0, false
	}
	return binary.BigEndian.Uint64(key[authorWidth+logIDWidth : authorWidth+logIDWidth+seqWidth]), true
}
