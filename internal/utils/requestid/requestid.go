package requestid

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyOnce sync.Once
	entropy     *ulid.LockedMonotonicReader
)

func newEntropy() *ulid.LockedMonotonicReader {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rand.New(source), 0),
		}
	})
	return entropy
}

// New returns a mop_* ULID string used to correlate API requests.
func New() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	return "mop_" + strings.ToLower(id.String())
}

// IsValid reports whether the string is a mop_* ULID.
func IsValid(value string) bool {
	if !strings.HasPrefix(value, "mop_") {
		return false
	}
	_, err := Parse(value)
	return err == nil
}

// Parse strips the mop_ prefix and returns the ULID.
func Parse(value string) (ulid.ULID, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "mop_")
	value = strings.TrimPrefix(value, "MOP_")
	return ulid.Parse(value)
}
