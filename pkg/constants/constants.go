// Package constants provides shared constants used throughout the partnermap codebase.
// This includes default endpoints, timeouts, page sizes, and file permissions
// that should be consistent across the application.
package constants

import "time"

// Default remote listings. These are defaults only; every component
// receives its endpoints explicitly through configuration.
const (
	// DefaultPartnersURL is the partner directory listing endpoint
	DefaultPartnersURL = "https://www.opentext.com/en/partners/partners-directory-overview/1716790338234.ajax"

	// DefaultSolutionsURL is the solution catalog listing endpoint
	DefaultSolutionsURL = "https://www.opentext.com/en/partners/ApplicationMarketplace/1754971906819.ajax"

	// DefaultPartnersSort is the sort token sent with partner page requests
	DefaultPartnersSort = "Default_Sort"

	// DefaultSolutionsSort is the sort token sent with solution page requests
	DefaultSolutionsSort = "Name"

	// DefaultPageSize is the number of assets requested per page
	DefaultPageSize = 15

	// MaxPageSize is the largest page size accepted from configuration
	MaxPageSize = 1000
)

// Default request headers. The listings serve JSON to browser-like clients.
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36"
	DefaultAccept    = "application/json, text/plain, */*"
	DefaultReferer   = "https://www.opentext.com/partners/partner-directory"
)

// Dataset names used in logs and errors.
const (
	DatasetPartners  = "partners"
	DatasetSolutions = "solutions"
)

// Default output locations, one per keying mode.
const (
	DefaultNameModeOutput = "partners_solutions.json"
	DefaultIDModeOutput   = "partners_solutions_withId.json"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for a single page request
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRunTimeout bounds a whole reconciliation run from the CLI
	DefaultRunTimeout = 10 * time.Minute

	// ShutdownTimeout is how long graceful shutdown may take
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Object storage defaults
const (
	// DefaultObjectContentType is attached to uploaded documents
	DefaultObjectContentType = "application/json"

	// DefaultObjectRegion is used when no region is configured
	DefaultObjectRegion = "us-east-1"
)
