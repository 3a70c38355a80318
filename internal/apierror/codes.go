package apierror

// Error type URIs used as the "type" field of RFC 9457 Problem Details
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:vibecheck:error:validation"

	// TypeBadRequest indicates a malformed request body or query (400)
	TypeBadRequest = "urn:vibecheck:error:bad_request"

	// TypeFutureDate indicates an entry date after today (400)
	TypeFutureDate = "urn:vibecheck:error:future_date"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:vibecheck:error:unauthorized"

	// TypeInvalidCredentials indicates a failed login (401)
	TypeInvalidCredentials = "urn:vibecheck:error:invalid_credentials"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:vibecheck:error:not_found"

	// TypeConflict indicates a uniqueness conflict such as a taken username (409)
	TypeConflict = "urn:vibecheck:error:conflict"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:vibecheck:error:rate_limit"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:vibecheck:error:internal"

	// TypeUnavailable indicates a dependency is down (503)
	TypeUnavailable = "urn:vibecheck:error:unavailable"
)

const (
	TitleValidation         = "Validation Error"
	TitleBadRequest         = "Bad Request"
	TitleFutureDate         = "Future Date Not Allowed"
	TitleUnauthorized       = "Authentication Required"
	TitleInvalidCredentials = "Invalid Credentials"
	TitleNotFound           = "Resource Not Found"
	TitleConflict           = "Resource Conflict"
	TitleRateLimit          = "Rate Limit Exceeded"
	TitleInternal           = "Internal Server Error"
	TitleUnavailable        = "Service Unavailable"
)
