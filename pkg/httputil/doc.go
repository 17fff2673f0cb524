// Package httputil provides the HTTP plumbing shared by the map-data
// and geocoding clients.
//
//   - [Retry]: automatic retry with exponential backoff for transient
//     failures (network errors, 5xx responses, rate limiting)
//   - [Do]: request execution that classifies response status codes
//     and enforces the User-Agent the upstream APIs require
//
// Only errors wrapped in [RetryableError] are retried; a 4xx response
// fails immediately since repeating it cannot succeed.
package httputil
