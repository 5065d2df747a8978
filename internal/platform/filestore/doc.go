// Package filestore provides a store.Backend that keeps the serialized task
// collection in a single file on local disk.
package filestore
