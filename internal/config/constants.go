package config

// Version is the current vyzzer-go version.
// It is a variable so a build can override it via -ldflags -X.
var Version = "0.1.0"

// Default bounds on the contract and function lists an input tree may
// describe. Entries beyond the bound are silently dropped by the
// contract visitor.
const (
	DefaultMaxStorageVariables = 32
	DefaultMaxFunctions        = 16
)

// TAB is the indentation unit used for every emitted line.
const TAB = "    "

// OutputFileExt is the extension used for the emitted target-language
// source file.
const OutputFileExt = ".vy"
