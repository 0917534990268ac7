// Package store defines the persistence contract for questions and answers.
// Every store implementation, whatever engine backs it, reports failures
// using the closed error taxonomy declared in errors.go so that callers can
// branch on the kind of failure without knowing the engine.
package store
