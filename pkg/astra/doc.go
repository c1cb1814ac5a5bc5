// Package astra verifies that a Data API endpoint and application token work
// by listing the collections of the default keyspace. Each check opens its own
// session and closes it before returning.
package astra
