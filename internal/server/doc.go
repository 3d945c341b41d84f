// Package server exposes the Prometheus metrics of a running client over
// HTTP, behind the usual security headers.
package server
