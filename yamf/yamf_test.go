// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package yamf_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/baobab/yamf"
)

func TestSumLength(t *testing.T) {
	h := yamf.Sum([]byte("An entry for testing"))
	if len(h.Bytes()) != yamf.Length {
		t.Fatalf("expected %d bytes, got %d", yamf.Length, len(h.Bytes()))
	}
}

func TestSumDeterministic(t *testing.T) {
	a := yamf.Sum([]byte("payload"))
	b := yamf.Sum([]byte("payload"))
	if a != b {
		t.Fatal("yamf.Sum is not deterministic")
	}
}

func TestSumDistinguishes(t *testing.T) {
	a := yamf.Sum([]byte("payload one"))
	b := yamf.Sum([]byte("payload two"))
	if a == b {
		t.Fatal("distinct payloads hashed to the same digest")
	}
}

func TestHashFromBytesRoundTrip(t *testing.T) {
	h := yamf.Sum([]byte("round trip"))
	recovered, ok := yamf.HashFromBytes(h.Bytes())
	if !ok {
		t.Fatal("HashFromBytes rejected a valid hash")
	}
	if !bytes.Equal(recovered.Bytes(), h.Bytes()) {
		t.Fatal("HashFromBytes produced a different hash")
	}

	if _, ok := yamf.HashFromBytes(h.Bytes()[:10]); ok {
		t.Fatal("HashFromBytes accepted a short buffer")
	}
}

func TestShortSumLength(t *testing.T) {
	s := yamf.ShortSum([]byte("some content"))
	if len(s.Bytes()) != yamf.ShortLength {
		t.Fatalf("expected %d bytes, got %d", yamf.ShortLength, len(s.Bytes()))
	}
}
