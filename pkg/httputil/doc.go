// Package httputil provides shared HTTP plumbing: retry with exponential
// backoff and a small download helper used for fetching font files.
//
// Transient failures (network errors, 5xx responses) are wrapped in
// [RetryableError] so that [Retry] knows to attempt them again; anything
// else fails fast.
package httputil
