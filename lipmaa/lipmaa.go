// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lipmaa computes the Bamboo skip-link sequence (spec.md §4.1):
// Lipmaa maps a sequence number to the sequence number it skip-links to,
// and CertPool returns the full set of sequence numbers needed to verify
// an entry back to entry 1.
//
// Has no direct analog in the teacher repo; it is new pure-function code
// kept in the small-function-plus-table-driven-test shape of util/varint.go.
//
// The sequence line is divided into nested triangles of size g(k) =
// (3^k-1)/2, each triangle being three copies of the next-smaller
// triangle followed by one "head" element (g(k) = 3*g(k-1) + 1). A
// position's skip link depends on where it falls inside its enclosing
// triangle: the head always points to its direct predecessor; the first
// element of the triangle's second or third third is a closed-form jump
// two levels down; every other position recurses into the analogous
// position of its own third.
package lipmaa

import "sort"

// g(k) = (3^k - 1) / 2, the size of a complete triangle of height k.
// g(0) = 0, g(1) = 1, g(2) = 4, g(3) = 13, g(4) = 40, ...
func g(k uint64) uint64 {
	pow := uint64(1)
	for i := uint64(0); i < k; i++ {
		pow *= 3
	}
	return (pow - 1) / 2
}

// enclosingLevel returns the smallest k such that g(k) >= n, for n > 1.
func enclosingLevel(n uint64) uint64 {
	k := uint64(1)
	for g(k) < n {
		k++
	}
	return k
}

// Lipmaa returns the sequence number that seq skip-links to.
func Lipmaa(seq uint64) uint64 {
	if seq <= 1 {
		return 1
	}

	j := enclosingLevel(seq)
	if seq == g(j) {
		// head of the enclosing triangle: always the direct predecessor
		return seq - 1
	}

	base := g(j - 1)
	d := seq - base

	if d == 1 {
		// first element of the triangle's second third
		return g(j-2) + 1
	}
	if d == base+1 {
		// first element of the triangle's third third
		return 2 * (g(j-2) + 1)
	}
	if d <= base {
		return base + Lipmaa(d)
	}
	return 2*base + Lipmaa(d-base)
}

// CertPool returns, in descending order, every sequence number required
// to verify seq back to entry 1: starting at seq, repeatedly following
// both n-1 and Lipmaa(n) until 1 is reached, deduplicated.
func CertPool(seq uint64) []uint64 {
	seen := make(map[uint64]bool)
	frontier := []uint64{seq}
	seen[seq] = true

	for len(frontier) > 0 {
		var next []uint64
		for _, n := range frontier {
			if n <= 1 {
				continue
			}
			for _, m := range []uint64{n - 1, Lipmaa(n)} {
				if !seen[m] {
					seen[m] = true
					next = append(next, m)
				}
			}
		}
		frontier = next
	}

	result := make([]uint64, 0, len(seen))
	for n := range seen {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] > result[j] })
	return result
}
