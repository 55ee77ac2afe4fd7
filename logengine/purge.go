// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logengine

// Purge implements spec.md §4.7's author/log_id scope table. author
// and logID select ALL or a specific value via the tagged AuthorScope
// and LogScope variants (design note "Dynamic atom-tagged options", spec.md §9).
// Purging an already-empty selection is a no-op, making repeated
// purge(:all, :all) calls idempotent (spec.md §8 property 6).
func (e *Engine) Purge(author AuthorScope, logID LogScope, clumpID string) ([]StreamInfo, error) {
	content, err := e.content(clumpID)
	if nil != err {
		return nil, err
	}

	switch {
	case author.IsAll() && logID.IsAll():
		if err := content.Truncate(); nil != err {
			return nil, err
		}
	case author.IsAll():
		if err := purgeByLogID(content, logID.Value()); nil != err {
			return nil, err
		}
	case logID.IsAll():
		if _, err := content.MatchDelete(authorPrefix(author.Value())); nil != err {
			return nil, err
		}
	default:
		if _, err := content.MatchDelete(logPrefix(author.Value(), logID.Value())); nil != err {
			return nil, err
		}
	}

	invalidateContentStatus(e.spool, clumpID)
	return e.StoredInfo(clumpID)
}

// purgeByLogID deletes every row whose log id is logID, regardless of
// author; log id is not a key prefix on its own, so this needs a full
// table scan rather than a range delete.
func purgeByLogID(content contentTable, logID uint64) error {
	victims := make([][]byte, 0)
	err := content.Fold(func(key, _ []byte) error {
		if id, ok := decodeLogID(key); ok && id == logID {
			victims = append(victims, append([]byte(nil), key...))
		}
		return nil
	})
	if nil != err {
		return err
	}
	for _, key := range victims {
		if err := content.Delete(key); nil != err {
			return err
		}
	}
	return nil
}
