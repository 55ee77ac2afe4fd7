// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logengine

import "sort"

// StreamInfo summarizes one (author, log_id) stream within a clump.
type StreamInfo struct {
	Author    string
	LogID     uint64
	MaxSeqNum uint64
}

// StoredInfo implements the stored_info(clump_id) query named in
// spec.md §4.7/§8 scenario S3/S6: every (author, log_id) stream
// present in clumpID's content table, sorted by author then log id,
// each reporting its highest fully-written sequence number.
func (e *Engine) StoredInfo(clumpID string) ([]StreamInfo, error) {
	content, err := e.content(clumpID)
	if nil != err {
		return nil, err
	}
	return storedInfo(content)
}

type streamKey struct {
	author string
	logID  uint64
}

func storedInfo(content contentTable) ([]StreamInfo, error) {
	halves := make(map[streamKey]map[uint64]int)

	err := content.Fold(func(key, _ []byte) error {
		author, ok := decodeAuthor(key)
		if !ok {
			return nil
		}
		logID, ok := decodeLogID(key)
		if !ok {
			return nil
		}
		seqnum, ok := decodeSeqnum(key)
		if !ok {
			return nil
		}
		sk := streamKey{author: author, logID: logID}
		if nil == halves[sk] {
			halves[sk] = make(map[uint64]int)
		}
		halves[sk][seqnum]++
		return nil
	})
	if nil != err {
		return nil, err
	}

	result := make([]StreamInfo, 0, len(halves))
	for sk, seqnums := range halves {
		var max uint64
		for seqnum, count := range seqnums {
			if count == 2 && seqnum > max {
				max = seqnum
			}
		}
		if max == 0 {
			continue
		}
		result = append(result, StreamInfo{Author: sk.author, LogID: sk.logID, MaxSeqNum: max})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Author != result[j].Author {
			return result[i].Author < result[j].Author
		}
		return result[i].LogID < result[j].LogID
	})
	return result, nil
}
