// Package memory provides in-process implementations of the store
// interfaces. Each store owns its records; nothing is shared through package
// state, so independent stores can be created freely in tests.
package memory
