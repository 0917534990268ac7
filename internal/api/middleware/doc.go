// Package middleware provides HTTP middleware for the API.
package middleware
