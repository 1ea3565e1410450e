// Package config resolves the launcher and fetcher settings for a single
// invocation. Resolution is layered: built-in defaults, then an optional
// HCL config file, then environment variables. The result is one explicit
// Settings value that is passed to downstream code; nothing below this
// package reads the environment on its own.
package config
