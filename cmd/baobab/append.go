// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"
)

func runAppend(ctx *context, arguments []string) {
	if len(arguments) < 3 {
		fail("append: requires alias log_id payload")
		return
	}

	logID, err := strconv.ParseUint(arguments[1], 10, 64)
	if nil != err {
		fail("append: invalid log_id: %s", err)
		return
	}

	result, err := ctx.engine.Append(ctx.registry, arguments[0], logID, []byte(arguments[2]), ctx.clumpID)
	if nil != err {
		fail("append: %s", err)
		return
	}
	ctx.log.Infof("appended alias=%s log_id=%d seqnum=%d", arguments[0], logID, result.SeqNum)
	printf("%d\n", result.SeqNum)
}
