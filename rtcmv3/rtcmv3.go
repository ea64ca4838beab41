// Package rtcmv3 implements the RTCM SC-104 version 3 byte-framed stream
// codec: preamble/length/payload/CRC-24Q framing, a registry of typed
// message bodies (RTK observations, stationary antenna position, antenna
// descriptors, GPS ephemerides and the MSM observation families), and the
// stateful parser and encoder that move between wire frames and values.
package rtcmv3

// Preamble is the fixed first byte of every RTCM v3 frame.
const Preamble = 0xD3

// frameOverheadBytes is the number of bytes outside the payload: the
// 3-byte leader (preamble + 2 length bits/bytes) and the 3-byte CRC-24Q.
const frameOverheadBytes = 6
