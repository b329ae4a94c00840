package audit

import "errors"

var (
	// ErrChainBroken is returned by operations that must refuse a log whose
	// verification failed, such as compaction or import.
	ErrChainBroken = errors.New("audit chain broken")

	// ErrInvalidPayload is returned when an event payload is not valid JSON.
	ErrInvalidPayload = errors.New("audit payload is not valid JSON")

	// ErrEmptyEventType is returned when an event is appended without a type.
	ErrEmptyEventType = errors.New("audit event type is empty")
)
