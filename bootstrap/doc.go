// Package bootstrap runs a dikit composition root: it loads defaults and
// validates the typed config, initializes logging, creates the container,
// runs the configure callbacks that register services, and on shutdown runs
// the OnStop hooks and closes the container.
package bootstrap
