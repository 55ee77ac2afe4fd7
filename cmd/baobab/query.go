// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"strconv"

	"github.com/bitmark-inc/baobab/logengine"
)

func parseLogIDAndSeq(arguments []string) (uint64, uint64, error) {
	logID, err := strconv.ParseUint(arguments[0], 10, 64)
	if nil != err {
		return 0, 0, err
	}
	seqnum, err := strconv.ParseUint(arguments[1], 10, 64)
	if nil != err {
		return 0, 0, err
	}
	return logID, seqnum, nil
}

func printResult(r logengine.Result) {
	if nil != r.Entry {
		printf("seqnum=%d log_id=%d author=%x size=%d\n", r.SeqNum, r.Entry.LogID, r.Entry.Author, r.Entry.Size)
		return
	}
	printf("seqnum=%d %s\n", r.SeqNum, hex.EncodeToString(r.Binary))
}

func runGet(ctx *context, arguments []string) {
	if len(arguments) < 3 {
		fail("get: requires author log_id seqnum")
		return
	}
	author, err := resolveAuthor(ctx.registry, arguments[0])
	if nil != err {
		fail("get: %s", err)
		return
	}
	logID, seqnum, err := parseLogIDAndSeq(arguments[1:])
	if nil != err {
		fail("get: %s", err)
		return
	}

	opts := logengine.Default()
	opts.ClumpID = ctx.clumpID
	opts.Format = ctx.formatOption()
	opts.Revalidate = len(ctx.options["revalidate"]) > 0

	result, err := ctx.engine.Retrieve(author, logID, seqnum, opts)
	if nil != err {
		fail("get: %s", err)
		return
	}
	printResult(result)
}

func runLogAt(ctx *context, arguments []string) {
	if len(arguments) < 3 {
		fail("log-at: requires author log_id seqnum")
		return
	}
	author, err := resolveAuthor(ctx.registry, arguments[0])
	if nil != err {
		fail("log-at: %s", err)
		return
	}
	logID, seqnum, err := parseLogIDAndSeq(arguments[1:])
	if nil != err {
		fail("log-at: %s", err)
		return
	}

	opts := logengine.Default()
	opts.ClumpID = ctx.clumpID
	opts.Format = ctx.formatOption()

	results, err := ctx.engine.LogAt(author, seqnum, logID, opts)
	if nil != err {
		fail("log-at: %s", err)
		return
	}
	for _, r := range results {
		printResult(r)
	}
}

func runLogRange(ctx *context, arguments []string) {
	if len(arguments) < 4 {
		fail("log-range: requires author log_id first last")
		return
	}
	author, err := resolveAuthor(ctx.registry, arguments[0])
	if nil != err {
		fail("log-range: %s", err)
		return
	}
	logID, err := strconv.ParseUint(arguments[1], 10, 64)
	if nil != err {
		fail("log-range: %s", err)
		return
	}
	first, err := strconv.ParseUint(arguments[2], 10, 64)
	if nil != err {
		fail("log-range: %s", err)
		return
	}
	last, err := strconv.ParseUint(arguments[3], 10, 64)
	if nil != err {
		fail("log-range: %s", err)
		return
	}

	seqnums, err := ctx.engine.LogRange(author, first, last, logID, ctx.clumpID)
	if nil != err {
		fail("log-range: %s", err)
		return
	}
	for _, seqnum := range seqnums {
		printf("%d\n", seqnum)
	}
}

func runFullLog(ctx *context, arguments []string) {
	if len(arguments) < 2 {
		fail("full-log: requires author log_id")
		return
	}
	author, err := resolveAuthor(ctx.registry, arguments[0])
	if nil != err {
		fail("full-log: %s", err)
		return
	}
	logID, err := strconv.ParseUint(arguments[1], 10, 64)
	if nil != err {
		fail("full-log: %s", err)
		return
	}

	opts := logengine.Default()
	opts.ClumpID = ctx.clumpID
	opts.Format = ctx.formatOption()

	results, err := ctx.engine.FullLog(author, logID, opts)
	if nil != err {
		fail("full-log: %s", err)
		return
	}
	for _, r := range results {
		printResult(r)
	}
}

func runCertPool(ctx *context, arguments []string) {
	if len(arguments) < 3 {
		fail("cert-pool: requires author log_id seqnum")
		return
	}
	author, err := resolveAuthor(ctx.registry, arguments[0])
	if nil != err {
		fail("cert-pool: %s", err)
		return
	}
	logID, seqnum, err := parseLogIDAndSeq(arguments[1:])
	if nil != err {
		fail("cert-pool: %s", err)
		return
	}

	seqnums, err := ctx.engine.CertificatePool(author, seqnum, logID, ctx.clumpID)
	if nil != err {
		fail("cert-pool: %s", err)
		return
	}
	for _, s := range seqnums {
		printf("%d\n", s)
	}
}
