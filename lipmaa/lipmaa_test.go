// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lipmaa_test

import (
	"testing"

	"github.com/bitmark-inc/baobab/lipmaa"
)

// referenceSequence is the published lipmaa(1..40) sequence from spec.md §4.1.
var referenceSequence = []uint64{
	1, 1, 2, 3, 2, 5, 6, 7, 4, 9, 10, 11, 12, 5, 14,
	15, 16, 15, 18, 19, 20, 17, 22, 23, 24, 25, 10, 27, 28, 29,
	28, 31, 32, 33, 30, 35, 36, 37, 38, 39,
}

func TestLipmaaReferenceSequence(t *testing.T) {
	for i, want := range referenceSequence {
		seq := uint64(i + 1)
		if got := lipmaa.Lipmaa(seq); got != want {
			t.Fatalf("Lipmaa(%d) = %d, want %d", seq, got, want)
		}
	}
}

func TestLipmaaBaseCase(t *testing.T) {
	if got := lipmaa.Lipmaa(1); got != 1 {
		t.Fatalf("Lipmaa(1) = %d, want 1", got)
	}
}

func TestLipmaaAlwaysLessThanSeq(t *testing.T) {
	for seq := uint64(2); seq <= 1000; seq++ {
		if got := lipmaa.Lipmaa(seq); got >= seq {
			t.Fatalf("Lipmaa(%d) = %d, must be < %d", seq, got, seq)
		}
	}
}

func TestCertPoolReachesOne(t *testing.T) {
	for _, seq := range []uint64{1, 2, 5, 8, 13, 40, 121, 1000} {
		pool := lipmaa.CertPool(seq)
		if len(pool) == 0 {
			t.Fatalf("CertPool(%d) is empty", seq)
		}
		if pool[0] != seq {
			t.Fatalf("CertPool(%d) does not start with seq: %v", seq, pool)
		}
		if pool[len(pool)-1] != 1 {
			t.Fatalf("CertPool(%d) does not terminate at 1: %v", seq, pool)
		}
		for i := 1; i < len(pool); i++ {
			if pool[i] >= pool[i-1] {
				t.Fatalf("CertPool(%d) not strictly descending: %v", seq, pool)
			}
		}
	}
}

func TestCertPoolContainsDirectChain(t *testing.T) {
	// every sequence number on the direct n, n-1, n-2, ... chain down to 1
	// must appear in the pool, since n-1 is always one of the two edges
	// walked by CertPool.
	pool := lipmaa.CertPool(5)
	want := map[uint64]bool{5: true, 4: true, 3: true, 2: true, 1: true}
	if len(pool) != len(want) {
		t.Fatalf("CertPool(5) = %v, want exactly %v", pool, want)
	}
	for _, n := range pool {
		if !want[n] {
			t.Fatalf("CertPool(5) contains unexpected %d: %v", n, pool)
		}
	}
}

func TestCertPoolDeduplicated(t *testing.T) {
	pool := lipmaa.CertPool(40)
	seen := make(map[uint64]bool)
	for _, n := range pool {
		if seen[n] {
			t.Fatalf("CertPool(40) contains duplicate %d: %v", n, pool)
		}
		seen[n] = true
	}
}
