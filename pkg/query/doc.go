// Package query defines the boundary between the connection engine and the
// query language: pure encoders and decoders that translate logical query
// values to protocol payload bytes and back.
//
// Codecs never touch the socket. The connection injects per-call directives
// (currently the selected database) through Options, so callers never set
// the database on individual queries.
package query
