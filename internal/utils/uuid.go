package utils

import (
	"time"

	"github.com/google/uuid"
)

// UUIDGenerator produces time-ordered UUIDv7 strings for audit events,
// devices and trace ids.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// Clock returns the current time. Components take a Clock so tests can pin
// timestamps.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// NowMillis returns the clock reading as Unix milliseconds.
func (c Clock) NowMillis() int64 {
	if c == nil {
		return time.Now().UnixMilli()
	}
	return c().UnixMilli()
}
