// Package service contains the task use cases: listing the collection and
// the create, update, and delete transactions. Each transaction loads the
// whole collection from a store.TaskStore, changes it in memory, and saves it
// back while holding the service's lock, so that overlapping requests inside
// one process cannot lose each other's writes.
//
// The service depends on domain entities and the store interfaces, never on a
// concrete backend.
package service
