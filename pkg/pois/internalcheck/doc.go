// Package internalcheck holds source-level policy checks for the pois
// bindings.
//
// The checks keep cgo confined to the backend package and keep the RSA key
// components, which run to hundreds of digits, out of log records. It is not
// intended for external use and exports nothing.
package internalcheck
