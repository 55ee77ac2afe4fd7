// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/bitmark-inc/baobab/logengine"
)

// runPurge implements spec.md §4.7's purge over (author, log_id)
// scopes, following the interactive confirm-before-delete idiom the
// teacher uses in command/dbdelete for an operation that cannot be
// undone — required here only for the ALL/ALL case, which drops an
// entire clump's content table in one call.
func runPurge(ctx *context, arguments []string) {
	author := logengine.AllAuthors()
	logID := logengine.AllLogs()

	if len(arguments) > 0 && "ALL" != arguments[0] {
		resolved, err := resolveAuthor(ctx.registry, arguments[0])
		if nil != err {
			fail("purge: %s", err)
			return
		}
		author = logengine.SpecificAuthor(resolved)
	}
	if len(arguments) > 1 && "ALL" != arguments[1] {
		id, err := strconv.ParseUint(arguments[1], 10, 64)
		if nil != err {
			fail("purge: %s", err)
			return
		}
		logID = logengine.SpecificLog(id)
	}

	if author.IsAll() && logID.IsAll() && !confirmPurgeAll() {
		printf("purge cancelled\n")
		return
	}

	ctx.log.Infof("purge clump=%s author_all=%v log_all=%v", ctx.clumpID, author.IsAll(), logID.IsAll())
	streams, err := ctx.engine.Purge(author, logID, ctx.clumpID)
	if nil != err {
		fail("purge: %s", err)
		return
	}
	for _, stream := range streams {
		printf("%s %d %d\n", stream.Author, stream.LogID, stream.MaxSeqNum)
	}
}

func confirmPurgeAll() bool {
	ttyFd, err := os.OpenFile("/dev/tty", os.O_RDWR, os.ModePerm)
	if nil != err {
		return false
	}
	defer ttyFd.Close()

	oldState, err := terminal.MakeRaw(int(ttyFd.Fd()))
	if nil != err {
		return false
	}
	defer terminal.Restore(int(ttyFd.Fd()), oldState)

	console := terminal.NewTerminal(ttyFd, "purge ALL/ALL, confirm (y/n): ")
	line, err := console.ReadLine()
	if nil != err {
		return false
	}
	return "y" == strings.ToLower(strings.TrimSpace(line))
}
