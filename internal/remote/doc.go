// Package remote is the HTTP client for the envdock secrets service.
//
// Every call carries the stored session token as a Bearer credential and a
// fresh X-Request-ID. Failures come back as *errors.RemoteError, classified
// so callers can test them with errors.Is:
//
//   - HTTP 401 wraps ErrNotLoggedIn
//   - HTTP 403 wraps ErrAccessDenied
//   - HTTP 404 wraps ErrNotFound
//   - connection refused or DNS failure wraps ErrNetworkUnreachable
//
// The service reports failures as a JSON body of the form {"message": "..."};
// that message is surfaced verbatim in RemoteError.Message.
package remote
