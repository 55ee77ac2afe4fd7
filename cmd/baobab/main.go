// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command baobab is the local CLI over a Bamboo spool (spec.md §6),
// structured the way the teacher's command/dbmatch and
// command/dbdelete wire getoptions+logger+exitwithstatus: flags are
// parsed once in main, then dispatched to a per-subcommand function
// that takes its own positional arguments.
package main

import (
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/baobab/configuration"
	"github.com/bitmark-inc/baobab/identity"
	"github.com/bitmark-inc/baobab/logengine"
	"github.com/bitmark-inc/baobab/spool"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "clump", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'C'},
		{Long: "format", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "revalidate", HasArg: getoptions.NO_ARGUMENT},
		{Long: "replace", HasArg: getoptions.NO_ARGUMENT},
		{Long: "secret", HasArg: getoptions.REQUIRED_ARGUMENT},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if err != nil {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 0 == len(arguments) {
		usage(program)
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "baobab.log",
		Size:      1048576,
		Count:     10,
		Console:   len(options["quiet"]) == 0,
		Levels: map[string]string{
			logger.DefaultTag: "info",
		},
	}
	if len(options["verbose"]) > 0 {
		logging.Levels[logger.DefaultTag] = "debug"
	}

	if err := logger.Initialise(logging); err != nil {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")

	config := configuration.Default(".")
	if len(options["config"]) > 0 {
		if err := configuration.ParseConfigurationFile(options["config"][0], &config); err != nil {
			exitwithstatus.Message("%s: configuration error: %s", program, err)
		}
	}

	s, err := spool.New(config.SpoolDirectory)
	if err != nil {
		exitwithstatus.Message("%s: spool open failed: %s", program, err)
	}
	defer s.Close()

	registry := identity.New(s)
	engine := logengine.New(s)

	clumpID := config.DefaultClumpID
	if len(options["clump"]) > 0 {
		clumpID = options["clump"][0]
	}

	ctx := &context{
		log:      log,
		spool:    s,
		engine:   engine,
		registry: registry,
		clumpID:  clumpID,
		options:  options,
	}

	command := arguments[0]
	rest := arguments[1:]

	switch command {
	case "identity":
		runIdentity(ctx, rest)
	case "append":
		runAppend(ctx, rest)
	case "get":
		runGet(ctx, rest)
	case "log-at":
		runLogAt(ctx, rest)
	case "log-range":
		runLogRange(ctx, rest)
	case "full-log":
		runFullLog(ctx, rest)
	case "cert-pool":
		runCertPool(ctx, rest)
	case "compact":
		runCompact(ctx, rest)
	case "purge":
		runPurge(ctx, rest)
	case "import":
		runImport(ctx, rest)
	case "export":
		runExport(ctx, rest)
	case "current-hash":
		runCurrentHash(ctx, rest)
	default:
		exitwithstatus.Message("%s: unknown command: %q", program, command)
	}
}

// context carries the handles every subcommand needs, replacing the
// teacher's per-command local variable soup with a single value
// passed down (spec.md §6 operations are all methods on an engine, so
// the CLI layer is thin dispatch over it).
type context struct {
	log      *logger.L
	spool    *spool.Spool
	engine   *logengine.Engine
	registry *identity.Registry
	clumpID  string
	options  getoptions.OptionsMap
}

func (c *context) formatOption() logengine.Format {
	if len(c.options["format"]) > 0 && "binary" == c.options["format"][0] {
		return logengine.AsBinary
	}
	return logengine.AsEntry
}

func usage(program string) {
	exitwithstatus.Message(`usage: %s [options] command [arguments...]

options:
  --help                  display this message
  --verbose               more verbose logging
  --quiet                 no console log
  --version               display version
  --config=FILE           configuration file
  --clump=ID              clump id (default: "default")
  --format=entry|binary   retrieval format
  --revalidate            re-verify the entry returned by get
  --replace               not read: import always overwrites conflicting rows
  --secret=KEY            raw seed or Base62 secret for identity create

commands:
  identity create|list|rename|drop|resolve ...
  append ALIAS LOG_ID PAYLOAD
  get AUTHOR LOG_ID SEQNUM
  log-at AUTHOR LOG_ID SEQNUM
  log-range AUTHOR LOG_ID FIRST LAST
  full-log AUTHOR LOG_ID
  cert-pool AUTHOR LOG_ID SEQNUM
  compact AUTHOR LOG_ID
  purge [AUTHOR|ALL] [LOG_ID|ALL]
  import DIR
  export DIR
  current-hash [identity]
`, program)
}

func fail(format string, args ...interface{}) {
	exitwithstatus.Message(format, args...)
}

func printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}
