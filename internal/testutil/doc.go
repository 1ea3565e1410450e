// Package testutil holds helpers shared across the test suites: log
// capture, environment pinning, zip fixtures, and a fake tagging server
// speaking the toolkit's line protocol.
package testutil
