package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateTrackingNumber returns a human-facing shipment identifier of
// the form CP<unix-millis><4 random digits>. It is generated once at
// shipment creation and never changes.
func GenerateTrackingNumber() string {
	return fmt.Sprintf("CP%d%04d", time.Now().UnixMilli(), rand.Intn(10000))
}
