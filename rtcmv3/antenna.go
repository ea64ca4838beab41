package rtcmv3

import (
	"fmt"

	"github.com/goblimey/go-gnss-codec/bitreader"
)

// AntennaDescriptor is RTCM v3 message type 1007 (descriptor + setup ID),
// 1008 (adds serial number) or 1033 (adds receiver type, firmware and
// serial number).
type AntennaDescriptor struct {
	Type            int
	StationID       uint
	Descriptor      string
	SetupID         uint
	SerialNumber    string // 1008, 1033
	ReceiverType    string // 1033
	FirmwareVersion string // 1033
	ReceiverSerial  string // 1033
}

func (m *AntennaDescriptor) messageType() int { return m.Type }

func decodeAntennaDescriptor(msgType int) decoderFunc {
	return func(r *bitreader.Reader) (interface{}, error) {
		stationID, err := r.ReadU(12)
		if err != nil {
			return nil, err
		}
		descriptor, err := readLengthPrefixedString(r)
		if err != nil {
			return nil, err
		}
		setupID, err := r.ReadU(8)
		if err != nil {
			return nil, err
		}

		msg := &AntennaDescriptor{
			Type:       msgType,
			StationID:  uint(stationID),
			Descriptor: descriptor,
			SetupID:    uint(setupID),
		}

		if msgType == 1008 || msgType == 1033 {
			serial, err := readLengthPrefixedString(r)
			if err != nil {
				return nil, err
			}
			msg.SerialNumber = serial
		}

		if msgType == 1033 {
			receiverType, err := readLengthPrefixedString(r)
			if err != nil {
				return nil, err
			}
			firmware, err := readLengthPrefixedString(r)
			if err != nil {
				return nil, err
			}
			receiverSerial, err := readLengthPrefixedString(r)
			if err != nil {
				return nil, err
			}
			msg.ReceiverType = receiverType
			msg.FirmwareVersion = firmware
			msg.ReceiverSerial = receiverSerial
		}

		return msg, nil
	}
}

func (m *AntennaDescriptor) writeBody(w *bitreader.Writer) error {
	if err := w.WriteU(12, uint32(m.StationID)); err != nil {
		return err
	}
	if err := writeLengthPrefixedString(w, m.Descriptor); err != nil {
		return err
	}
	if err := w.WriteU(8, uint32(m.SetupID)); err != nil {
		return err
	}
	if m.Type == 1008 || m.Type == 1033 {
		if err := writeLengthPrefixedString(w, m.SerialNumber); err != nil {
			return err
		}
	}
	if m.Type == 1033 {
		if err := writeLengthPrefixedString(w, m.ReceiverType); err != nil {
			return err
		}
		if err := writeLengthPrefixedString(w, m.FirmwareVersion); err != nil {
			return err
		}
		if err := writeLengthPrefixedString(w, m.ReceiverSerial); err != nil {
			return err
		}
	}
	return nil
}

func readLengthPrefixedString(r *bitreader.Reader) (string, error) {
	n, err := r.ReadU(8)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	for i := range buf {
		b, err := r.ReadU(8)
		if err != nil {
			return "", fmt.Errorf("rtcmv3: antenna string overruns body: %w", err)
		}
		buf[i] = byte(b)
	}
	return string(buf), nil
}

func writeLengthPrefixedString(w *bitreader.Writer, s string) error {
	if len(s) > 255 {
		return fmt.Errorf("rtcmv3: antenna string %q is too long for a u8 length prefix", s)
	}
	if err := w.WriteU(8, uint32(len(s))); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		if err := w.WriteU(8, uint32(s[i])); err != nil {
			return err
		}
	}
	return nil
}
