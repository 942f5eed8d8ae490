package orders

import (
	"fmt"
	"math/rand"
	"time"
)

// newOrderNumber builds a human-readable order number from the last six
// digits of the unix millisecond clock plus a random 0-999 suffix. The
// value is only probabilistically unique; the database unique index and
// the submit retry loop handle the rare collision.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%06d-%d", now.UnixMilli()%1_000_000, rand.Intn(1000))
}
