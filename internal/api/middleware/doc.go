// Package middleware holds the HTTP middleware applied in front of the task
// routes.
package middleware
