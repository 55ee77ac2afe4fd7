// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logengine

import (
	"github.com/bitmark-inc/baobab/base62"
	"github.com/bitmark-inc/baobab/spool"
)

// CurrentHash implements spec.md §4.9 for the content table of
// clumpID: the cached value if present, otherwise a freshly computed
// and cached one.
func (e *Engine) CurrentHash(clumpID string) (string, error) {
	content, status, err := e.spool.Clump(clumpID)
	if nil != err {
		return "", err
	}
	short, err := spool.CurrentHash(content, status, spool.ContentStatusKey())
	if nil != err {
		return "", err
	}
	return base62.EncodeAny(short.Bytes()), nil
}

// IdentityCurrentHash implements spec.md §4.9 for the global identity
// table, whose cache lives in the default clump's status table (see
// the Open Question decision in DESIGN.md).
func (e *Engine) IdentityCurrentHash() (string, error) {
	identity := e.spool.Identity()
	_, status, err := e.spool.Clump(spool.DefaultClump)
	if nil != err {
		return "", err
	}
	short, err := spool.CurrentHash(identity, status, spool.IdentityStatusKey())
	if nil != err {
		return "", err
	}
	return base62.EncodeAny(short.Bytes()), nil
}

// invalidateContentStatus drops the cached current-hash for a clump's
// content table; every mutating content operation must call this.
func invalidateContentStatus(s *spool.Spool, clumpID string) {
	_, status, err := s.Clump(clumpID)
	if nil != err {
		return
	}
	spool.InvalidateStatus(status, spool.ContentStatusKey())
}
