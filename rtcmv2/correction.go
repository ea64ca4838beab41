// Package rtcmv2 implements the RTCM SC-104 version 2 bit-packed,
// parity-protected differential correction stream: framing, parity,
// message types 1 (full corrections) and 3 (reference station position),
// and the stateful encoder that produces valid wire frames from them.
package rtcmv2

// CorrectionData holds one satellite's correction in a type 1 (full
// corrections) packet, in real units (metres and metres/second).
type CorrectionData struct {
	SVID int
	PRC  float64
	PRRC float64
	IODE int
}

// ScaleFactor, ScaledPRC and ScaledPRRC compute the bit-level
// representation used on the wire: the scale factor is the number of
// (rounded) divisions by 16 needed to bring PRC within the int16 range, and
// PRRC is divided by 16 the same number of times and then clamped to the
// int8 range.
func (c CorrectionData) ScaleFactor() int {
	factor, _, _ := c.scaledValues()
	return factor
}

// ScaledPRC returns the int16 wire value for PRC at this correction's scale
// factor.
func (c CorrectionData) ScaledPRC() int16 {
	_, prc, _ := c.scaledValues()
	return prc
}

// ScaledPRRC returns the int8 wire value for PRRC at this correction's
// scale factor.
func (c CorrectionData) ScaledPRRC() int8 {
	_, _, prrc := c.scaledValues()
	return prrc
}

func (c CorrectionData) scaledValues() (factor int, scaledPRC int16, scaledPRRC int8) {
	prc := int64(c.PRC)
	prrc := int64(c.PRRC)
	for prc > 32767 || prc < -32768 {
		factor++
		prc = floorDiv(prc+8, 16)
		prrc = floorDiv(prrc+8, 16)
	}
	if prrc > 127 {
		prrc = 127
	}
	if prrc < -128 {
		prrc = -128
	}
	return factor, int16(prc), int8(prrc)
}

// floorDiv divides towards negative infinity, matching Python's `//`
// operator used by the scale-factor calculation this is ported from.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
