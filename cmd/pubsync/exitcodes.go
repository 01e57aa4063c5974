package main

// Exit codes
const (
	ExitSuccess     = 0 // Success, or nothing to do
	ExitError       = 1 // General error (invalid arguments, runtime failure, lock held)
	ExitConfigError = 2 // Configuration error (unreadable config, invalid log level)
	ExitDataError   = 3 // Data error (malformed library export, check found problems)
)
