// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration defines cmd/baobab's on-disk HCL
// configuration file, parsed the way the teacher parses bitmarkd.conf
// (hclreader.go): reflect-validate the destination pointer, then hand
// the raw bytes to hashicorp/hcl.
package configuration

import (
	"github.com/bitmark-inc/baobab/util"

	"github.com/bitmark-inc/logger"
)

// Configuration is the root of a baobab.conf file.
type Configuration struct {
	SpoolDirectory string               `hcl:"spool_directory"`
	DefaultClumpID string               `hcl:"default_clump_id"`
	Logging        logger.Configuration `hcl:"logging"`
}

// Default returns the configuration used when no file is given on the
// command line.
func Default(baseDirectory string) Configuration {
	return Configuration{
		SpoolDirectory: util.EnsureAbsolute(baseDirectory, "spool"),
		DefaultClumpID: "default",
		Logging: logger.Configuration{
			Directory: util.EnsureAbsolute(baseDirectory, "log"),
			File:      "baobab.log",
			Size:      1048576,
			Count:     10,
		},
	}
}
