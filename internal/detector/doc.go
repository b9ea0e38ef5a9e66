// Package detector is an HTTP client for the fake news classification service.
// It speaks the service's JSON contract: POST /predict for a verdict, plus the
// informational GET / and GET /health endpoints.
package detector
