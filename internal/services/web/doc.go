// Package web serves the oracle's browser pages.
//
// The question form, the reading page and its plain-text twin all go through
// a Thrower, which is either the in-process application service or the
// oracle gRPC client when an oracle address is configured.
package web
