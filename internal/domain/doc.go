// Package domain contains the question and answer records exchanged between
// the HTTP layer and the stores. It has no knowledge of how records are
// persisted.
package domain
