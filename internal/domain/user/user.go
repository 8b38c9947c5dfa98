// Package user holds the authenticated caller identity.
package user

// User is the caller identity carried by a verified session token. The
// external auth provider owns sign-up, sign-in and credential storage;
// this service only consumes the identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionClaims is the payload of a session token minted by the auth provider.
type SessionClaims struct {
	UserID   string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
	Audience string `json:"aud"`
	Issuer   string `json:"iss"`
}
