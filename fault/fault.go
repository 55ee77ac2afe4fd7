// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
package fault

// error base
type GenericError string

// the ten error kinds named by the log core
type MalformedError GenericError
type InvalidSignatureError GenericError
type InvalidLinkError GenericError
type InvalidPayloadError GenericError
type BrokenChainError GenericError
type NotFoundError GenericError
type ImproperArgumentsError GenericError
type UnknownIdentityError GenericError
type ImproperRangeError GenericError
type ConflictError GenericError

// common errors - grouped by kind, in the order the kinds are declared
var (
	ErrShortRead        = MalformedError("short read")
	ErrInvalidVarint     = MalformedError("invalid varint")
	ErrUnknownTag       = MalformedError("unknown entry tag")
	ErrInvalidSignature = InvalidSignatureError("invalid signature")

	ErrInvalidBacklink   = InvalidLinkError("backlink does not match predecessor")
	ErrInvalidLipmaaLink = InvalidLinkError("lipmaa link does not match skip predecessor")

	ErrInvalidPayloadHash = InvalidPayloadError("payload hash mismatch")
	ErrInvalidPayloadSize = InvalidPayloadError("payload size mismatch")

	ErrBrokenChain = BrokenChainError("required predecessor entry is missing")

	ErrEntryNotFound    = NotFoundError("entry not found")
	ErrIdentityNotFound = NotFoundError("identity not found")

	ErrInvalidAlias         = ImproperArgumentsError("alias is invalid")
	ErrInvalidSecretKey     = ImproperArgumentsError("secret key is invalid")
	ErrInvalidClumpID       = ImproperArgumentsError("clump id is invalid")
	ErrInvalidBase62        = ImproperArgumentsError("base62 value is invalid")
	ErrInvalidReference     = ImproperArgumentsError("identity reference is invalid")
	ErrInvalidStructPointer = ImproperArgumentsError("configuration target is not a struct pointer")

	ErrUnknownIdentity   = UnknownIdentityError("identity alias/prefix does not resolve")
	ErrAmbiguousIdentity = UnknownIdentityError("identity prefix matches more than one key")

	ErrImproperRange = ImproperRangeError("log range is improper")

	ErrConflict = ConflictError("existing entry differs from imported entry")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e MalformedError) Error() string         { return string(e) }
func (e InvalidSignatureError) Error() string  { return string(e) }
func (e InvalidLinkError) Error() string       { return string(e) }
func (e InvalidPayloadError) Error() string    { return string(e) }
func (e BrokenChainError) Error() string       { return string(e) }
func (e NotFoundError) Error() string          { return string(e) }
func (e ImproperArgumentsError) Error() string { return string(e) }
func (e UnknownIdentityError) Error() string   { return string(e) }
func (e ImproperRangeError) Error() string     { return string(e) }
func (e ConflictError) Error() string          { return string(e) }

// determine the class of an error
func IsMalformed(e error) bool         { _, ok := e.(MalformedError); return ok }
func IsInvalidSignature(e error) bool  { _, ok := e.(InvalidSignatureError); return ok }
func IsInvalidLink(e error) bool       { _, ok := e.(InvalidLinkError); return ok }
func IsInvalidPayload(e error) bool    { _, ok := e.(InvalidPayloadError); return ok }
func IsBrokenChain(e error) bool       { _, ok := e.(BrokenChainError); return ok }
func IsNotFound(e error) bool          { _, ok := e.(NotFoundError); return ok }
func IsImproperArguments(e error) bool { _, ok := e.(ImproperArgumentsError); return ok }
func IsUnknownIdentity(e error) bool   { _, ok := e.(UnknownIdentityError); return ok }
func IsImproperRange(e error) bool     { _, ok := e.(ImproperRangeError); return ok }
func IsConflict(e error) bool          { _, ok := e.(ConflictError); return ok }
