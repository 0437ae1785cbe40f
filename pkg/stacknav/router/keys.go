package router

import (
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// KeyFunc produces a fresh, never reused entry key.
type KeyFunc func() string

// UUIDKeys returns a KeyFunc backed by random UUIDs. This is the default.
func UUIDKeys() KeyFunc {
	return uuid.NewString
}

// SequentialKeys returns a KeyFunc yielding prefix-0, prefix-1, ...
// It is safe for concurrent use and deterministic, which makes it the
// choice for tests and replayable sessions.
func SequentialKeys(prefix string) KeyFunc {
	var n atomic.Int64
	return func() string {
		return prefix + "-" + strconv.FormatInt(n.Inc()-1, 10)
	}
}
