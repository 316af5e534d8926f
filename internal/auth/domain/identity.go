package domain

// Identity is the claims payload embedded in every issued token and held
// per-request once the boundary gate has verified an access token. It is
// immutable after issuance; a role or status change only takes effect the
// next time tokens are minted.
type Identity struct {
	UserID      int64  `json:"id"`
	AccountName string `json:"account_name"`
	Role        Role   `json:"role"`
}

// LoginResult is what login and refresh hand back in-band. The refresh
// token travels out-of-band (httpOnly cookie) and is deliberately absent.
type LoginResult struct {
	ID          int64  `json:"id"`
	AccountName string `json:"account_name"`
	Role        Role   `json:"role"`
	AccessToken string `json:"access_token"`

	// RefreshToken is consumed by the HTTP layer to set the session
	// cookie; it must never be encoded into the JSON body.
	RefreshToken string `json:"-"`
}
