// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. Each of
// the project's binaries has its own parse function here; they all translate
// flags and positional arguments into the application's configuration.
package cli
