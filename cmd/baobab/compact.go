// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"
)

func runCompact(ctx *context, arguments []string) {
	if len(arguments) < 2 {
		fail("compact: requires author log_id")
		return
	}
	author, err := resolveAuthor(ctx.registry, arguments[0])
	if nil != err {
		fail("compact: %s", err)
		return
	}
	logID, err := strconv.ParseUint(arguments[1], 10, 64)
	if nil != err {
		fail("compact: %s", err)
		return
	}

	deletions, err := ctx.engine.Compact(author, logID, ctx.clumpID)
	if nil != err {
		fail("compact: %s", err)
		return
	}
	for _, d := range deletions {
		if nil != d.Err {
			printf("seqnum=%d error=%s\n", d.SeqNum, d.Err)
			continue
		}
		printf("seqnum=%d removed\n", d.SeqNum)
	}
}
