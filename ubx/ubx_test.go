package ubx

import (
	"bytes"
	"testing"

	"github.com/goblimey/go-gnss-codec/crc"
)

func TestCFGRateEncodeMatchesKnownFrame(t *testing.T) {
	rate := CFGRate{MeasRateMillis: 1000, NavRate: 1, TimeRef: 1}
	got, err := rate.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	covered := []byte{0x06, 0x08, 0x06, 0x00, 0xE8, 0x03, 0x01, 0x00, 0x01, 0x00}
	a, b := crc.Fletcher8(covered)
	want := append([]byte{Sync1, Sync2}, covered...)
	want = append(want, a, b)

	if !bytes.Equal(got, want) {
		t.Errorf("CFGRate.Encode() = % x, want % x", got, want)
	}
}

func TestParserRecoversCFGRateRoundTrip(t *testing.T) {
	rate := CFGRate{MeasRateMillis: 1000, NavRate: 1, TimeRef: 1}
	frame, err := rate.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	p := NewParser()
	var got *Message
	for _, b := range frame {
		msg, err := p.FeedByte(b)
		if err != nil {
			t.Fatalf("FeedByte: %v", err)
		}
		if msg != nil {
			got = msg
		}
	}
	if got == nil {
		t.Fatal("parser never produced a message")
	}
	if got.Class != ClassCFG || got.ID != IDCfgRATE {
		t.Errorf("got class/id %#02x/%#02x, want %#02x/%#02x", got.Class, got.ID, ClassCFG, IDCfgRATE)
	}
	decoded, ok := got.Body.(*CFGRate)
	if !ok {
		t.Fatalf("decoded body is %T, want *CFGRate", got.Body)
	}
	if *decoded != rate {
		t.Errorf("decoded %+v, want %+v", *decoded, rate)
	}
	if !bytes.Equal(got.RawData, frame) {
		t.Errorf("RawData = % x, want % x", got.RawData, frame)
	}
}

func TestChecksumErrorAndRecovery(t *testing.T) {
	rate := CFGRate{MeasRateMillis: 1000, NavRate: 1, TimeRef: 1}
	good, err := rate.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	corrupted := append([]byte(nil), good...)
	corrupted[len(corrupted)-1] ^= 0xFF

	stream := append(corrupted, good...)

	p := NewParser()
	var got *Message
	for _, b := range stream {
		msg, err := p.FeedByte(b)
		if msg != nil {
			got = msg
			break
		}
		if cksumErr, ok := err.(*ChecksumError); ok {
			if recovered, _ := cksumErr.Recover(p); recovered != nil {
				got = recovered
				break
			}
		}
	}
	if got == nil {
		t.Fatal("expected recovery to find the second, valid frame")
	}
}

func TestPayloadLengthBoundary(t *testing.T) {
	atLimit := make([]byte, maxPayloadLength)
	frame, err := Encode(ClassCFG, IDCfgMSG, atLimit)
	if err != nil {
		t.Fatalf("Encode at the 8192-byte limit: %v", err)
	}
	p := NewParser()
	var got *Message
	for _, b := range frame {
		if msg, _ := p.FeedByte(b); msg != nil {
			got = msg
		}
	}
	if got == nil {
		t.Fatal("an exactly-8192-byte payload should be accepted")
	}

	overLimit := make([]byte, maxPayloadLength+1)
	if _, err := Encode(ClassCFG, IDCfgMSG, overLimit); err == nil {
		t.Error("expected Encode to reject an 8193-byte payload")
	}
}

func TestUnknownMessageRoundTripsRawBytes(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}
	frame, err := Encode(0x99, 0x01, payload) // class 0x99 has no registered decoder
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	p := NewParser()
	var got *Message
	for _, b := range frame {
		if msg, _ := p.FeedByte(b); msg != nil {
			got = msg
		}
	}
	if got == nil {
		t.Fatal("parser never produced a message")
	}
	unknown, ok := got.Body.(*UnknownBody)
	if !ok {
		t.Fatalf("decoded body is %T, want *UnknownBody", got.Body)
	}
	if !bytes.Equal(unknown.Payload, payload) {
		t.Errorf("UnknownBody.Payload = % x, want % x", unknown.Payload, payload)
	}
}
