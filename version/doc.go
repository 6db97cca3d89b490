// Package version reports the build version of dikit binaries, taken from
// -ldflags when set and from the embedded VCS stamp otherwise.
package version
