// Package rest implements the device transport over the controller's
// HTTP configuration API: a cookie-bearing authenticated session, one
// request per operation, and uniform classification of non-success
// responses into TransportError. It is the only package that interprets
// HTTP status codes; the engine above it never does.
package rest
