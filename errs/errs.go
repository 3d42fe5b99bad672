/*
  errs.go
  Description: sentinel errors identifying every failure kind this tool recognizes
  -----------------------------------------------------------------------------

  Started on  <Fri Jul 31 2026 Carlos Linares Lopez>
  -----------------------------------------------------------------------------

  $Id::                                                                      $
  $Date::                                                                    $
  $Revision::                                                                $
  -----------------------------------------------------------------------------

  Made by Carlos Linares Lopez
  Login   <clinares@atlas>
*/

// Package errs collects the sentinel errors that identify every failure kind
// recognized by this tool. Every other package returns one of these (wrapped
// with additional context via fmt.Errorf("...: %w", ...)) rather than an ad
// hoc error string, so that the single diagnostic line written by cmd/sps
// always traces back to one of the kinds below.
package errs

import "errors"

// Startup / argv errors.
var (
	ErrTooFewArguments  = errors.New("too few arguments")
	ErrTooManyArguments = errors.New("too many arguments")
	ErrBadDelimiterSet  = errors.New("delimiter set must not be empty")
	ErrFileOpenFailed   = errors.New("could not open file")
)

// Table model errors.
var (
	ErrAllocationFailed = errors.New("allocation failed")
	ErrNoSuchCell       = errors.New("no such cell")
)

// Codec errors.
var ErrMalformedQuoting = errors.New("malformed quoting")

// Script parser errors.
var ErrMalformedScript = errors.New("malformed script")

// Dispatcher errors.
var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrBadSelection     = errors.New("bad selection")
	ErrBadArgumentCell  = errors.New("bad argument cell")
	ErrNoSavedSelection = errors.New("no saved selection")
)
