package state

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// newID returns a random UUID, falling back to a timestamp+random id when
// the system random source is unavailable.
func newID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("%d-%06d", time.Now().UnixNano(), rand.Intn(1_000_000))
	}
	return id.String()
}
