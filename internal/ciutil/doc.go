// Package ciutil detects CI environments and resolves the environment
// variables the test suites use to find their PostgreSQL database.
//
// Tests that need a real database call GetTestDatabaseURL instead of reading
// the environment directly, so CI runners get the same standard credentials
// whatever variable their workflow exports.
package ciutil
