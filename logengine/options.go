// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logengine

// Format selects whether a read returns a decoded Entry or its raw
// canonical bytes (spec.md §6, option "format").
type Format int

const (
	AsEntry  Format = iota // default
	AsBinary
)

// Options is the per-call option bag named in spec.md §6, collapsed
// from the source's dynamic atom-tagged keyword list into a plain
// struct per design note "Dynamic atom-tagged options" (spec.md §9).
type Options struct {
	Format     Format
	ClumpID    string
	Revalidate bool
	Replace    bool
}

// Default returns the zero-value option set with its documented
// defaults: AsEntry, the default clump, no revalidation, no replace.
func Default() Options {
	return Options{Format: AsEntry, ClumpID: ""}
}

// LogScope is the tagged "n | ALL" variant used by purge's log_id
// selector (design note "Dynamic atom-tagged options", spec.md §9).
type LogScope struct {
	all   bool
	value uint64
}

// AllLogs selects every log id.
func AllLogs() LogScope { return LogScope{all: true} }

// SpecificLog selects exactly logID.
func SpecificLog(logID uint64) LogScope { return LogScope{value: logID} }

// IsAll reports whether the scope is the ALL wildcard.
func (s LogScope) IsAll() bool { return s.all }

// Value returns the selected log id; only meaningful when !IsAll().
func (s LogScope) Value() uint64 { return s.value }

// AuthorScope is the tagged "Base62(author) | ALL" variant used by
// purge's author selector (design note "Dynamic atom-tagged options",
// spec.md §9).
type AuthorScope struct {
	all   bool
	value string
}

// AllAuthors selects every author.
func AllAuthors() AuthorScope { return AuthorScope{all: true} }

// SpecificAuthor selects exactly the Base62-encoded author identifier.
func SpecificAuthor(author string) AuthorScope { return AuthorScope{value: author} }

// IsAll reports whether the scope is the ALL wildcard.
func (s AuthorScope) IsAll() bool { return s.all }

// Value returns the selected author identifier; only meaningful when
// !IsAll().
func (s AuthorScope) Value() string { return s.value }
