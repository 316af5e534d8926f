package service

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown account and a wrong
	// password. The two are never distinguished externally, so a caller
	// cannot enumerate account names.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrAccountDisabled reports a correct login against a disabled account.
	ErrAccountDisabled = errors.New("account_disabled")

	// ErrSessionExpired covers every refresh failure: missing, malformed,
	// expired, and revoked/superseded tokens. Collapsing them denies an
	// attacker a token-validity oracle.
	ErrSessionExpired = errors.New("session_expired")

	// ErrUserNotFound reports a lookup of a nonexistent user record.
	ErrUserNotFound = errors.New("user_not_found")

	// ErrAccountExists reports a create with a taken account name or sno.
	ErrAccountExists = errors.New("account_exists")

	// ErrStoreUnavailable is an infrastructure failure talking to the
	// credential or session store. It must surface as a 5xx, never as an
	// authentication failure.
	ErrStoreUnavailable = errors.New("store_unavailable")
)
