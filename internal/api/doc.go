// Package api handles incoming HTTP requests for questions and answers. It
// decodes and validates request bodies, calls the stores, and maps store
// errors onto HTTP status codes without exposing engine details.
package api
