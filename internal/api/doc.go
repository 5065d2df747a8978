// Package api handles incoming HTTP requests, routing, request decoding,
// and response formatting. It acts as an adapter between HTTP clients and
// the task service, translating HTTP concerns to business operations and
// errors back into JSON envelopes.
package api
