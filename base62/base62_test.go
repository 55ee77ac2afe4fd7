// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package base62_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/bitmark-inc/baobab/base62"
)

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 20; i++ {
		key := make([]byte, base62.KeyLength)
		if _, err := rand.Read(key); nil != err {
			t.Fatal(err)
		}

		encoded, err := base62.Encode(key)
		if nil != err {
			t.Fatalf("Encode: %s", err)
		}
		if len(encoded) != base62.EncodedLength {
			t.Fatalf("%d: expected length %d, got %d", i, base62.EncodedLength, len(encoded))
		}

		decoded, err := base62.Decode(encoded)
		if nil != err {
			t.Fatalf("Decode: %s", err)
		}
		if !bytes.Equal(key, decoded) {
			t.Fatalf("%d: round trip mismatch: %x != %x", i, key, decoded)
		}
	}
}

func TestEncodeWrongLength(t *testing.T) {
	if _, err := base62.Encode(make([]byte, 31)); nil == err {
		t.Fatal("expected error for short key")
	}
}

func TestDecodeWrongLength(t *testing.T) {
	if _, err := base62.Decode("short"); nil == err {
		t.Fatal("expected error for short identifier")
	}
}

func TestDecodeInvalidCharacter(t *testing.T) {
	bad := make([]byte, base62.EncodedLength)
	for i := range bad {
		bad[i] = '0'
	}
	bad[0] = '!'
	if _, err := base62.Decode(string(bad)); nil == err {
		t.Fatal("expected error for invalid character")
	}
}

func TestDecodeAllZero(t *testing.T) {
	zeros := make([]byte, base62.KeyLength)
	encoded, err := base62.Encode(zeros)
	if nil != err {
		t.Fatal(err)
	}
	decoded, err := base62.Decode(encoded)
	if nil != err {
		t.Fatal(err)
	}
	if !bytes.Equal(zeros, decoded) {
		t.Fatal("all-zero key did not round-trip")
	}
}
