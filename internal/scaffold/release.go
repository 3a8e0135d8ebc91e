package scaffold

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Puzzles unlock at midnight US Eastern. December never observes DST, so a
// fixed EST offset is exact and needs no tz database.
var releaseZone = time.FixedZone("EST", -5*60*60)

func ReleaseTime(year, day int) time.Time {
	return time.Date(year, time.December, day, 0, 0, 0, 0, releaseZone)
}

func Released(year, day int, now time.Time) bool {
	return !now.Before(ReleaseTime(year, day))
}

// UntilRelease is the humanized wait, e.g. "3 hours" or "2 days".
func UntilRelease(year, day int, now time.Time) string {
	release := ReleaseTime(year, day)
	if !now.Before(release) {
		return "now"
	}
	return strings.TrimSpace(humanize.RelTime(now, release, "", ""))
}
