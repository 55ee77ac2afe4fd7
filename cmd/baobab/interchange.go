// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/baobab/interchange"
)

func runImport(ctx *context, arguments []string) {
	if 0 == len(arguments) {
		fail("import: missing directory")
		return
	}
	if err := interchange.ImportStore(ctx.spool, ctx.engine, arguments[0]); nil != err {
		fail("import: %s", err)
	}
}

func runExport(ctx *context, arguments []string) {
	if 0 == len(arguments) {
		fail("export: missing directory")
		return
	}
	if err := interchange.ExportStore(ctx.spool, ctx.engine, arguments[0]); nil != err {
		fail("export: %s", err)
	}
}

func runCurrentHash(ctx *context, arguments []string) {
	if len(arguments) > 0 && "identity" == arguments[0] {
		hash, err := ctx.engine.IdentityCurrentHash()
		if nil != err {
			fail("current-hash: %s", err)
			return
		}
		printf("%s\n", hash)
		return
	}

	hash, err := ctx.engine.CurrentHash(ctx.clumpID)
	if nil != err {
		fail("current-hash: %s", err)
		return
	}
	printf("%s\n", hash)
}
