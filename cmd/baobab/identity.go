// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/baobab/identity"
)

func runIdentity(ctx *context, arguments []string) {
	if 0 == len(arguments) {
		fail("identity: missing sub-command")
		return
	}

	switch arguments[0] {
	case "create":
		if len(arguments) < 2 {
			fail("identity create: missing alias")
			return
		}
		var secret []byte
		if len(ctx.options["secret"]) > 0 {
			secret = []byte(ctx.options["secret"][0])
		}
		public, err := ctx.registry.Create(arguments[1], secret)
		if nil != err {
			fail("identity create: %s", err)
			return
		}
		printf("%s\n", public)

	case "list":
		aliases, err := ctx.registry.List()
		if nil != err {
			fail("identity list: %s", err)
			return
		}
		for _, alias := range aliases {
			printf("%s\n", alias)
		}

	case "rename":
		if len(arguments) < 3 {
			fail("identity rename: requires old and new alias")
			return
		}
		if err := ctx.registry.Rename(arguments[1], arguments[2]); nil != err {
			fail("identity rename: %s", err)
		}

	case "drop":
		if len(arguments) < 2 {
			fail("identity drop: missing alias")
			return
		}
		if err := ctx.registry.Drop(arguments[1]); nil != err {
			fail("identity drop: %s", err)
		}

	case "resolve":
		if len(arguments) < 2 {
			fail("identity resolve: missing reference")
			return
		}
		public, err := ctx.registry.AsBase62(arguments[1])
		if nil != err {
			fail("identity resolve: %s", err)
			return
		}
		printf("%s\n", public)

	default:
		fail("identity: unknown sub-command: %q", arguments[0])
	}
}

// resolveAuthor turns a CLI-supplied author reference (alias, prefix,
// or raw Base62 identifier) into the canonical Base62 identifier used
// as the logengine content-table key component.
func resolveAuthor(registry *identity.Registry, ref string) (string, error) {
	return registry.AsBase62(ref)
}
