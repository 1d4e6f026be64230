// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET  /health             liveness and version
//	GET  /formats            supported output formats
//	POST /render?format=svg  render the config in the request body
//
// The body is a diagram config in JSON, TOML or YAML, chosen by the
// Content-Type header (JSON when absent). Query parameters mirror the CLI
// flags: theme, grid, labels, detailed, ops, scale and refresh.
//
// Every response carries an X-Request-ID header. Errors are JSON objects of
// the form {"code": "INVALID_CONFIG", "message": "..."}: invalid input maps
// to 400, formats that need a missing converter to 501 and everything else
// to 500.
package server
