// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logengine

// Deletion is one row removed by Compact or Purge, with its outcome.
type Deletion struct {
	SeqNum uint64
	Err    error
}

// Compact implements spec.md §4.6: for (author, log_id, clump_id), let
// E be every stored sequence number and P the certificate pool of
// max(E); delete every entry in E \ P. The invariant this preserves is
// that every remaining entry is either the latest or on its
// certificate path, so LogAt(author, max_seqnum) still succeeds.
func (e *Engine) Compact(author string, logID uint64, clumpID string) ([]Deletion, error) {
	content, err := e.content(clumpID)
	if nil != err {
		return nil, err
	}

	stored, err := allSeqNum(content, author, logID)
	if nil != err {
		return nil, err
	}
	if 0 == len(stored) {
		return nil, nil
	}
	last := stored[len(stored)-1]

	keep, err := certificatePool(content, author, last, logID)
	if nil != err {
		return nil, err
	}
	keepSet := make(map[uint64]bool, len(keep))
	for _, n := range keep {
		keepSet[n] = true
	}

	deletions := make([]Deletion, 0)
	for _, seqnum := range stored {
		if keepSet[seqnum] {
			continue
		}
		derr := content.Delete(rowKey(author, logID, seqnum, suffixHeader))
		if nil == derr {
			derr = content.Delete(rowKey(author, logID, seqnum, suffixPayload))
		}
		deletions = append(deletions, Deletion{SeqNum: seqnum, Err: derr})
	}

	if len(deletions) > 0 {
		invalidateContentStatus(e.spool, clumpID)
	}
	return deletions, nil
}
