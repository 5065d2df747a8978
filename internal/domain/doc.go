// Package domain contains the task entity, its input representation, and the
// rules that decide whether a create or update request is acceptable. It has
// no knowledge of HTTP or of how the task collection is persisted.
package domain
