// Package crc wraps the RTCM CRC-24Q checksum and the UBX Fletcher-8
// checksum used by the codecs in this module.
package crc

import "github.com/goblimey/go-crc24q/crc24q"

// CRC24Q computes the RTCM CRC-24Q checksum (polynomial 0x1864CFB, initial
// value 0) over data.
func CRC24Q(data []byte) uint32 {
	return crc24q.Hash(data)
}

// Bytes splits a CRC-24Q value into its three big-endian wire bytes.
func Bytes(value uint32) (hi, mid, lo byte) {
	return crc24q.HiByte(value), crc24q.MiByte(value), crc24q.LoByte(value)
}

// Fletcher8 computes the two-byte UBX checksum over data: a running sum of
// sums, each byte added modulo 256.
func Fletcher8(data []byte) (a, b byte) {
	var ckA, ckB byte
	for _, c := range data {
		ckA += c
		ckB += ckA
	}
	return ckA, ckB
}
