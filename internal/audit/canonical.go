package audit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// Canonicalize returns the RFC 8785 form of payload: object keys sorted
// recursively, no insignificant whitespace, numbers in shortest form.
// An empty or null payload canonicalizes to "null".
func Canonicalize(payload json.RawMessage) (string, error) {
	if len(payload) == 0 {
		return "null", nil
	}
	out, err := utils.CanonicalJSON(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return string(out), nil
}

// hashInput builds the pipe-joined string the event hash commits to. Null
// parts are rendered as empty strings.
func hashInput(prevHash *string, e models.AuditEvent, canonicalPayload string) string {
	var b strings.Builder
	b.WriteString(deref(prevHash))
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(e.Timestamp, 10))
	b.WriteByte('|')
	b.WriteString(string(e.Type))
	b.WriteByte('|')
	b.WriteString(deref(e.EntityID))
	b.WriteByte('|')
	b.WriteString(deref(e.DeviceID))
	b.WriteByte('|')
	b.WriteString(deref(e.AppVersion))
	b.WriteByte('|')
	b.WriteString(canonicalPayload)
	return b.String()
}

// ComputeHash returns the hex digest an event must carry given the hash of
// its predecessor.
func ComputeHash(prevHash *string, e models.AuditEvent) (string, error) {
	canonical, err := Canonicalize(e.Payload)
	if err != nil {
		return "", err
	}
	return utils.DigestHex([]byte(hashInput(prevHash, e, canonical))), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
