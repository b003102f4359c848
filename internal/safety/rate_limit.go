// netra-dburl: database connection URL resolution and diagnostics for Netra
// SPDX-License-Identifier: MIT
//
// Rate limiting for connectivity probes.

package safety

import (
	"time"

	"golang.org/x/time/rate"
)

// Limiter caps how often connectivity probes may run.
type Limiter struct {
	l *rate.Limiter
}

func NewLimiter(perMinute int) *Limiter {
	if perMinute <= 0 {
		perMinute = 6
	}
	return &Limiter{l: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)}
}

func (l *Limiter) Allow() bool { return l.l.Allow() }
