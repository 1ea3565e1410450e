// Package app contains the core application logic shared by the project's
// binaries. It resolves configuration once, builds the logger, and exposes
// one method per operation: launching the toolkit, fetching a
// distribution, and tagging text against a running server. Entrypoints
// stay thin; everything testable lives here or below.
package app
