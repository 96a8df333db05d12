package entity

import "time"

// RateBucket счётчик запросов клиента в текущем окне.
type RateBucket struct {
	Count   int
	ResetAt time.Time
}

// Expired окно закончилось строго до now.
func (b RateBucket) Expired(now time.Time) bool {
	return now.After(b.ResetAt)
}

type RateDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter через сколько целых секунд (не меньше одной) окно откроется.
func (d RateDecision) RetryAfter(now time.Time) int {
	wait := d.ResetAt.Sub(now)
	if wait <= 0 {
		return 1
	}

	seconds := int((wait + time.Second - 1) / time.Second)

	return max(seconds, 1)
}
