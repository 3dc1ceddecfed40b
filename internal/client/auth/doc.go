// Package auth owns the client's authentication state.
//
// A Manager is the single source of truth for "who is logged in" during one
// client session. It reads the session token from a storage.Store, decodes
// it into a Principal, checks credentials through a CredentialChecker and
// publishes every state change to its subscribers.
//
// # State rules
//
//   - No stored token: the in-memory current Principal is returned. It is
//     unauthenticated on a fresh Manager and after logout, and holds the
//     credential-checked identity after a successful Login.
//   - Token that fails to decode (or verify, with WithVerifier): treated as
//     no session. The token is left in place.
//   - Expired token (or one without exp): removed from the store and the
//     unauthenticated Principal returned.
//   - Otherwise: a Principal carrying exactly the token's claims.
//
// # Notifications
//
// Login, MarkAuthenticated and Logout call every subscriber synchronously,
// in subscription order, before returning. Subscribers must not call back
// into mutating Manager methods.
//
// Login never returns an error: any failure, including transport errors from
// the credential lookup, is reported as false.
package auth
