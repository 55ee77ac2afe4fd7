// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logengine

import (
	"sort"

	"github.com/bitmark-inc/baobab/fault"
	"github.com/bitmark-inc/baobab/lipmaa"
)

// CertificatePool implements spec.md §4.5: cert_pool(seq) filtered to
// sequence numbers that are both ≤ max_seqnum and locally present.
func (e *Engine) CertificatePool(author string, seq, logID uint64, clumpID string) ([]uint64, error) {
	content, err := e.content(clumpID)
	if nil != err {
		return nil, err
	}
	return certificatePool(content, author, seq, logID)
}

func certificatePool(content contentTable, author string, seq, logID uint64) ([]uint64, error) {
	stored, err := allSeqNum(content, author, logID)
	if nil != err {
		return nil, err
	}
	present := make(map[uint64]bool, len(stored))
	for _, s := range stored {
		present[s] = true
	}

	pool := lipmaa.CertPool(seq)
	result := make([]uint64, 0, len(pool))
	for _, n := range pool {
		if present[n] {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

// LogAt implements spec.md §4.5: the locally present entries whose
// sequence numbers lie in cert_pool(seq), ascending.
func (e *Engine) LogAt(author string, seq, logID uint64, opts Options) ([]Result, error) {
	content, err := e.content(opts.ClumpID)
	if nil != err {
		return nil, err
	}

	pool := lipmaa.CertPool(seq)
	sort.Slice(pool, func(i, j int) bool { return pool[i] < pool[j] })

	results := make([]Result, 0, len(pool))
	for _, n := range pool {
		result, err := retrieve(content, author, logID, n, opts)
		if fault.IsNotFound(err) {
			continue
		}
		if nil != err {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// LogRange implements spec.md §4.5: the subset of [first, last] for
// which an entry exists, ascending. first must be ≥ 2 and last ≥
// first, per the ImproperRange rule (spec.md §7).
func (e *Engine) LogRange(author string, first, last, logID uint64, clumpID string) ([]uint64, error) {
	if first < 2 || last < first {
		return nil, fault.ErrImproperRange
	}

	content, err := e.content(clumpID)
	if nil != err {
		return nil, err
	}

	stored, err := allSeqNum(content, author, logID)
	if nil != err {
		return nil, err
	}

	result := make([]uint64, 0)
	for _, s := range stored {
		if s >= first && s <= last {
			result = append(result, s)
		}
	}
	return result, nil
}

// FullLog implements spec.md §4.5: every locally present entry from 1
// to max_seqnum, ascending.
func (e *Engine) FullLog(author string, logID uint64, opts Options) ([]Result, error) {
	content, err := e.content(opts.ClumpID)
	if nil != err {
		return nil, err
	}

	stored, err := allSeqNum(content, author, logID)
	if nil != err {
		return nil, err
	}

	results := make([]Result, 0, len(stored))
	for _, seqnum := range stored {
		result, err := retrieve(content, author, logID, seqnum, opts)
		if nil != err {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
