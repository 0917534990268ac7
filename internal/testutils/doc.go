// Package testutils provides helpers shared by the HTTP and storage tests:
// running requests against a test server, asserting the API's error body,
// and closing resources with a checked error.
package testutils
