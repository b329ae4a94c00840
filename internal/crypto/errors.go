package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication is returned when a blob cannot be opened: wrong
	// passphrase, tampered ciphertext, salt or nonce. No partial plaintext
	// is ever returned alongside it.
	ErrAuthentication = errors.New("vault authentication failed")

	// ErrMalformedBlob is returned when a blob is structurally invalid. It
	// wraps ErrAuthentication so that callers treating every decrypt
	// failure the same way fail closed.
	ErrMalformedBlob = fmt.Errorf("%w: malformed blob", ErrAuthentication)
)
