// Package api implements the HTTP transport for the calculation engine.
// It is a thin external collaborator around the dispatch facade: it decodes
// the request envelope, invokes the facade, and maps structured error kinds
// to HTTP status codes. The engine core itself never deals in wire status.
package api
