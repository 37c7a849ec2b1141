// Package wire provides low-level framing helpers to construct and
// parse the binary blobs produced by the facet wire driver.
//
// The provided encoder and decoder are very low level, and do not
// encode any facet semantics. It is the caller's responsibility to
// produce well-formed records using these tools.
//
// You should not need to use this package at all, unless you are
// writing your own binary driver, in which case these tools give you
// the same framing vocabulary (length-prefixed strings, bytes and
// blocks, explicit byte order) the built-in wire driver uses.
package wire
