package gpstime

import (
	"testing"
	"time"
)

func TestGPSTOWToUTC(t *testing.T) {
	got, err := GPSTOWToUTC(138499, 2129)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2020, time.October, 26, 14, 28, 1, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("want %v got %v", want, got)
	}
}

func TestDatetimeToGPSTOW(t *testing.T) {
	utc := time.Date(2021, time.March, 2, 2, 53, 14, 0, time.UTC)
	week, tow := DatetimeToGPSTOW(utc)
	if week != 2147 {
		t.Errorf("want week 2147 got %d", week)
	}
	if tow != 183212 {
		t.Errorf("want tow 183212 got %d", tow)
	}
}

func TestGPSTOWOutOfRangeIsAnError(t *testing.T) {
	if _, err := GPSTOWToUTC(-1, 2000); err == nil {
		t.Error("want an error for a negative time-of-week, got nil")
	}
	if _, err := GPSTOWToUTC(7*24*3600, 2000); err == nil {
		t.Error("want an error for a time-of-week at the week boundary, got nil")
	}
}

func TestRoundTrip(t *testing.T) {
	utc := time.Date(2023, time.June, 15, 8, 0, 0, 0, time.UTC)
	week, tow := DatetimeToGPSTOW(utc)
	back, err := GPSTOWToUTC(tow, week)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(utc) {
		t.Errorf("want %v got %v", utc, back)
	}
}
