// Package gpstime converts between UTC, the continuous GPS time scale, and
// the (week, time-of-week) representation that RTCM and UBX messages carry
// on the wire.
//
// The leap-second handling follows the same shape as the RTCM codec's own
// constellation time offsets (a table of UTC effective dates mapped to a
// fixed GPS-UTC leap second count), generalised here into a table that can
// grow as new leap seconds are announced.
package gpstime

import (
	"fmt"
	"time"
)

// Epoch is the start of GPS week 0: 1980-01-06T00:00:00Z.
var Epoch = time.Date(1980, time.January, 6, 0, 0, 0, 0, time.UTC)

// leapSecondEntry is the number of leap seconds GPS time is ahead of UTC,
// effective from the given UTC instant onwards.
type leapSecondEntry struct {
	effective time.Time
	seconds   int
}

// leapSecondTable lists every UTC leap second insertion that has moved GPS
// time further ahead of UTC since the GPS epoch. GPS time does not observe
// leap seconds itself, so the offset only ever grows.
var leapSecondTable = []leapSecondEntry{
	{time.Date(1980, time.January, 6, 0, 0, 0, 0, time.UTC), 0},
	{time.Date(1981, time.July, 1, 0, 0, 0, 0, time.UTC), 1},
	{time.Date(1982, time.July, 1, 0, 0, 0, 0, time.UTC), 2},
	{time.Date(1983, time.July, 1, 0, 0, 0, 0, time.UTC), 3},
	{time.Date(1985, time.July, 1, 0, 0, 0, 0, time.UTC), 4},
	{time.Date(1988, time.January, 1, 0, 0, 0, 0, time.UTC), 5},
	{time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC), 6},
	{time.Date(1991, time.January, 1, 0, 0, 0, 0, time.UTC), 7},
	{time.Date(1992, time.July, 1, 0, 0, 0, 0, time.UTC), 8},
	{time.Date(1993, time.July, 1, 0, 0, 0, 0, time.UTC), 9},
	{time.Date(1994, time.July, 1, 0, 0, 0, 0, time.UTC), 10},
	{time.Date(1996, time.January, 1, 0, 0, 0, 0, time.UTC), 11},
	{time.Date(1997, time.July, 1, 0, 0, 0, 0, time.UTC), 12},
	{time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC), 13},
	{time.Date(2006, time.January, 1, 0, 0, 0, 0, time.UTC), 14},
	{time.Date(2009, time.January, 1, 0, 0, 0, 0, time.UTC), 15},
	{time.Date(2012, time.July, 1, 0, 0, 0, 0, time.UTC), 16},
	{time.Date(2015, time.July, 1, 0, 0, 0, 0, time.UTC), 17},
	{time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC), 18},
}

// LeapSecondsSince1980 returns the number of leap seconds GPS time is ahead
// of UTC at the given UTC instant.
func LeapSecondsSince1980(utc time.Time) int {
	utc = utc.UTC()
	seconds := 0
	for _, entry := range leapSecondTable {
		if utc.Before(entry.effective) {
			break
		}
		seconds = entry.seconds
	}
	return seconds
}

// UnixToGPSTOW converts a Unix timestamp to a (week, time-of-week in
// seconds) pair.
func UnixToGPSTOW(unixSeconds int64) (week int, tow int) {
	return DatetimeToGPSTOW(time.Unix(unixSeconds, 0).UTC())
}

// DatetimeToGPSTOW converts a UTC instant into a GPS week number and a
// time-of-week in seconds.
func DatetimeToGPSTOW(utc time.Time) (week int, tow int) {
	utc = utc.UTC()
	gps := utc.Add(time.Duration(LeapSecondsSince1980(utc)) * time.Second)
	elapsed := gps.Sub(Epoch)
	totalSeconds := int64(elapsed.Round(time.Second) / time.Second)
	const secondsPerWeek = 7 * 24 * 3600
	week = int(totalSeconds / secondsPerWeek)
	tow = int(totalSeconds % secondsPerWeek)
	return week, tow
}

// GPSTOWToUTC converts a GPS week number and a time-of-week in seconds back
// to a UTC instant.
func GPSTOWToUTC(tow int, week int) (time.Time, error) {
	if tow < 0 || tow >= 7*24*3600 {
		return time.Time{}, fmt.Errorf("gpstime: time-of-week %d is out of range 0..604799", tow)
	}
	gps := Epoch.Add(time.Duration(week)*7*24*time.Hour + time.Duration(tow)*time.Second)
	// Converting GPS time to UTC requires the leap second count in effect
	// at roughly this instant; since the count only grows and changes at
	// most once every few years, using the GPS-side instant to look up the
	// table and then subtracting is exact for any value in the table.
	leap := leapSecondsAsOfGPSInstant(gps)
	return gps.Add(-time.Duration(leap) * time.Second), nil
}

func leapSecondsAsOfGPSInstant(gps time.Time) int {
	seconds := 0
	for _, entry := range leapSecondTable {
		effectiveGPS := entry.effective.Add(time.Duration(entry.seconds) * time.Second)
		if gps.Before(effectiveGPS) {
			break
		}
		seconds = entry.seconds
	}
	return seconds
}
