package helpers

import (
	"time"

	"golang.org/x/time/rate"
)

// OnceAMinute throttles low-value diagnostics such as rate-limit snapshots.
var OnceAMinute = onceAMinute()

func onceAMinute() rate.Sometimes {
	return rate.Sometimes{
		Interval: time.Minute,
	}
}
