package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (invalid config, no profiles)
	ExitDataError   = 3 // Data error (no usable publication records)
	ExitFetchError  = 4 // Every profile failed to fetch
)
