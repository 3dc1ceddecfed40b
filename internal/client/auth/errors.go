package auth

import "errors"

// ErrInvalidCredentials is returned by checkers when the username or
// credential does not match.
var ErrInvalidCredentials = errors.New("invalid username or credential")

// ErrLookupFailed replaces table lookup errors in TableChecker. The
// credential is the row key, so the underlying error (request URL included)
// is never passed on.
var ErrLookupFailed = errors.New("user lookup failed")
