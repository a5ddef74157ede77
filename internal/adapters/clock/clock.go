package clock

import "time"

// referenceZone is the single fixed timezone all timestamps are produced
// in, so that token expirations and recipe dates compare consistently.
const referenceZone = "Europe/Warsaw"

// Clock reports wall-clock time in the reference timezone.
type Clock struct {
	loc *time.Location
}

func New() *Clock {
	loc, err := time.LoadLocation(referenceZone)
	if err != nil {
		loc = time.UTC
	}
	return &Clock{loc: loc}
}

func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}
