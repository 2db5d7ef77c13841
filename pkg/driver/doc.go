// Package driver implements the ReefDB client connection engine: dialing
// and authenticating a session, framing queries onto the wire, and reading
// back framed responses.
//
// Each Connection owns exactly one TCP session. All operations on a
// connection are processed one at a time, in arrival order, by a single
// worker goroutine that exclusively owns the socket, the selected database,
// and the query token counter. At most one query is ever in flight per
// connection.
//
// The query language itself is out of scope: queries are opaque values
// translated to payload bytes by a query.Codec, and response payloads are
// decoded the same way.
package driver
