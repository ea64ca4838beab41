package rtcmv3

import "github.com/goblimey/go-gnss-codec/bitreader"

// decoderFunc decodes a message body given a Reader already positioned
// just after the 12-bit type field.
type decoderFunc func(r *bitreader.Reader) (interface{}, error)

// registry maps a 12-bit RTCM v3 message type to its decoder. It is built
// once at process startup; there is no runtime plugin mechanism.
var registry = map[int]decoderFunc{}

func init() {
	registry[1001] = decodeObservation(1001)
	registry[1002] = decodeObservation(1002)
	registry[1003] = decodeObservation(1003)
	registry[1004] = decodeObservation(1004)
	registry[1005] = decodeStationary(1005)
	registry[1006] = decodeStationary(1006)
	registry[1007] = decodeAntennaDescriptor(1007)
	registry[1008] = decodeAntennaDescriptor(1008)
	registry[1009] = decodeObservation(1009)
	registry[1010] = decodeObservation(1010)
	registry[1011] = decodeObservation(1011)
	registry[1012] = decodeObservation(1012)
	registry[1019] = decodeEphemeris
	registry[1033] = decodeAntennaDescriptor(1033)

	for _, family := range msmFamilies {
		for _, digit := range []int{4, 5, 6, 7} {
			t := family + digit
			registry[t] = decodeMSM(t)
		}
	}
}
