package models

import "github.com/golang-jwt/jwt/v5"

// Token is a session token. It is also the claims type handed to the JWT
// parser, so the registered claims are filled in on parse.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact form sent in the Authorization header.
	SignedString string `json:"-"`

	// UserID is the parsed "sub" claim.
	UserID int64 `json:"-"`
}

func (t *Token) String() string {
	return t.SignedString
}

// Session is what the client keeps between runs to skip the login screen.
type Session struct {
	UserID int64  `json:"userId"`
	Login  string `json:"login"`
	Token  string `json:"token"`
}
