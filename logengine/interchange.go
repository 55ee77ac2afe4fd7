// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logengine

import (
	"bytes"

	"github.com/bitmark-inc/baobab/base62"
	"github.com/bitmark-inc/baobab/entry"
	"github.com/bitmark-inc/baobab/fault"
)

// ImportOutcome is one element of ImportBinaries' per-item result list
// (spec.md §4.8: "returns a same-length list of per-item outcomes").
type ImportOutcome struct {
	SeqNum uint64
	Err    error
}

// ImportBinaries implements spec.md §4.8: decode each canonical byte
// stream; on success, validate and store it, honouring replace. A
// decode failure is reported per item and does not abort the batch.
func (e *Engine) ImportBinaries(binaries [][]byte, payloads [][]byte, clumpID string, replace bool) ([]ImportOutcome, error) {
	content, err := e.content(clumpID)
	if nil != err {
		return nil, err
	}

	outcomes := make([]ImportOutcome, len(binaries))
	mutated := false
	for i, header := range binaries {
		payload := payloads[i]
		outcome, wrote, ierr := importOne(content, header, payload, replace)
		outcomes[i] = outcome
		if ierr != nil {
			outcomes[i].Err = ierr
		}
		if wrote {
			mutated = true
		}
	}

	if mutated {
		invalidateContentStatus(e.spool, clumpID)
	}
	return outcomes, nil
}

func importOne(content contentTable, header, payload []byte, replace bool) (ImportOutcome, bool, error) {
	decoded, err := entry.Decode(header)
	if nil != err {
		return ImportOutcome{}, false, err
	}

	if err := entry.Validate(decoded, payload, func(seqnum uint64) ([]byte, bool) {
		public, perr := base62.Encode(decoded.Author[:])
		if nil != perr {
			return nil, false
		}
		predecessor, ok, lerr := loadRow(content, public, decoded.LogID, seqnum)
		if nil != lerr || !ok {
			return nil, false
		}
		return predecessor.header, true
	}); nil != err {
		return ImportOutcome{SeqNum: decoded.SeqNum}, false, err
	}

	public, err := base62.Encode(decoded.Author[:])
	if nil != err {
		return ImportOutcome{SeqNum: decoded.SeqNum}, false, err
	}

	existing, ok, err := loadRow(content, public, decoded.LogID, decoded.SeqNum)
	if nil != err {
		return ImportOutcome{SeqNum: decoded.SeqNum}, false, err
	}
	if ok {
		identical := bytes.Equal(existing.header, header) && bytes.Equal(existing.payload, payload)
		if identical {
			return ImportOutcome{SeqNum: decoded.SeqNum}, false, nil
		}
		if !replace {
			return ImportOutcome{SeqNum: decoded.SeqNum}, false, fault.ErrConflict
		}
	}

	if err := content.Put(rowKey(public, decoded.LogID, decoded.SeqNum, suffixHeader), header); nil != err {
		return ImportOutcome{SeqNum: decoded.SeqNum}, false, err
	}
	if err := content.Put(rowKey(public, decoded.LogID, decoded.SeqNum, suffixPayload), payload); nil != err {
		return ImportOutcome{SeqNum: decoded.SeqNum}, false, err
	}
	return ImportOutcome{SeqNum: decoded.SeqNum}, true, nil
}
