// Package git drives the external git executable and translates its output
// into typed results. It contains the argument encoders, the process runner
// with its controlled environment, one parser per command family, and the
// Service facade that composes them. Failures are classified through
// internal/errors.
package git
