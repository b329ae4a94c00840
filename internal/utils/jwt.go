package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pentagon14032008-ux/Life-OS/models"
)

var (
	// ErrInvalidAuthorizationHeader is returned by [ParseBearerToken] when the
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

	errTokenParams   = errors.New("invalid params for generating JWT Token")
	errEmptySubject  = errors.New("token subject is empty")
	errNoTokenExpiry = errors.New("token has no expiry")
)

// GenerateJWTToken signs an HS256 token for userID. The subject is the
// decimal user id; iat and exp come from the current time.
func GenerateJWTToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errTokenParams
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
	})

	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("sign token: %w", err)
	}
	return models.Token{Token: token, SignedString: signed, UserID: userID}, nil
}

// ValidateAndParseJWTToken verifies signature, issuer and expiry. Errors
// from the jwt package stay in the chain, so callers can test for
// jwt.ErrTokenExpired.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(tokenSignKey), nil
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, keyFunc,
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("parse token: %w", err)
	}

	userID, err := subjectUserID(token.Claims)
	if err != nil {
		return models.Token{}, err
	}
	return models.Token{Token: token, SignedString: tokenString, UserID: userID}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	token, ok := strings.CutPrefix(strings.TrimSpace(authorizationHeader), "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" || strings.Contains(token, " ") {
		return "", ErrInvalidAuthorizationHeader
	}
	return token, nil
}

// UnverifiedClaims reads the subject and expiry of a token without checking
// its signature. The client uses it to decide whether a stored session
// token is still worth presenting; the server always verifies.
func UnverifiedClaims(tokenString string) (userID int64, expiresAt time.Time, err error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &jwt.RegisteredClaims{})
	if err != nil {
		return 0, time.Time{}, err
	}

	if userID, err = subjectUserID(token.Claims); err != nil {
		return 0, time.Time{}, err
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return userID, time.Time{}, errNoTokenExpiry
	}
	return userID, exp.Time, nil
}

func subjectUserID(claims jwt.Claims) (int64, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("token subject: %w", err)
	}
	if sub == "" {
		return 0, errEmptySubject
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token subject is not a user id: %w", err)
	}
	return userID, nil
}
