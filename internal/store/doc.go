// Package store defines how the task collection is persisted. The collection
// is always read and written whole: a TaskStore encodes it to a single JSON
// document and hands the bytes to a Backend, which only knows how to keep
// those bytes on some medium (a file, a database row, memory).
package store
