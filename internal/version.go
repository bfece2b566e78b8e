// Package internal holds values shared by the reservectl executable.
package internal

// Version is the version of the reserve tooling.
const Version = "0.3.0"
