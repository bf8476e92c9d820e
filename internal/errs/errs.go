// Package errs defines the typed error kinds sysmoni surfaces, per the
// error handling design: config/terminal errors are fatal, platform and
// query errors are degraded/held rather than propagated.
package errs

import "errors"

var (
	// ErrConfigInvalid marks a bad layout or numeric CLI/config option.
	ErrConfigInvalid = errors.New("config invalid")
	// ErrPlatformProbeFailed marks an unrecoverable failure initializing
	// a platform view at startup.
	ErrPlatformProbeFailed = errors.New("platform probe failed")
	// ErrPlatformFamilyMissing marks a single metric family absent from a
	// Sample because its platform read failed; it is not fatal.
	ErrPlatformFamilyMissing = errors.New("platform family missing")
	// ErrQueryParse marks a process-query parse failure.
	ErrQueryParse = errors.New("query parse error")
	// ErrIO marks a failed read/parse of a platform data source.
	ErrIO = errors.New("io error")
	// ErrTerminal marks a failure entering/leaving raw mode.
	ErrTerminal = errors.New("terminal error")
)
