// Package request provides a fluent and immutable HTTP request builder, see NewRequest function.
//
// Request[T] accumulates method, headers, query parameters, cookies, body and authentication.
// Each configuration call returns a modified copy, so a partially configured request can be shared and reused.
// The Execute method sends the request and maps the response to the Response[T] envelope,
// the payload is deserialized to the T type.
//
// Requests are sent using the Sender interface.
// The client.Client is a default implementation of the request.Sender
// interface based on the standard net/http package.
//
// RunGroup and WaitGroup are helpers for concurrent requests.
package request
