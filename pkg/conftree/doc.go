// Package conftree models the device's hierarchical configuration namespace:
// slash-delimited paths, the recursive desired-state value shape, and the
// wire-type table used to encode scalar writes.
package conftree
