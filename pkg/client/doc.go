// Package client provides a Go client for the dashboard's JSON API.
//
// Collection keeps an in-memory copy of the caller's rows and applies
// mutations optimistically from the server's responses, so a dashboard view
// stays responsive without refetching after every change.
package client
