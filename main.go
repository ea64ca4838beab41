// go-gnss-codec reads a byte stream from stdin, autodetects whichever of
// RTCM v2, RTCM v3, UBX or NMEA it is carrying, and writes a per-type
// message count to stdout. Errors that the parser reports once it has
// settled on a format (checksum and decode failures) are logged, with a
// timestamp, to a rotating log file under -logdir so a long-running
// capture doesn't lose that detail to a scrollback buffer. Bytes rejected
// by framing, and errors before a format is chosen, are not logged.
//
// The tool takes no required arguments; -logdir defaults to the current
// directory.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goblimey/go-gnss-codec/autodetect"
	"github.com/goblimey/go-gnss-codec/diagnostics"
)

func main() {
	logDir := flag.String("logdir", ".", "directory for the rotating diagnostics log")
	flag.Parse()

	logger := diagnostics.NewRotatingLogger(*logDir, "go-gnss-codec", ".log")

	parser := autodetect.NewParser(autodetect.Options{})
	counts := make(map[string]map[int]uint)

	buf := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(buf)
		for _, b := range buf[:n] {
			msg, feedErr := parser.FeedByte(b)
			if feedErr != nil {
				logger.Printf("frame rejected: %v", feedErr)
				continue
			}
			if msg != nil {
				recordMessage(counts, msg)
			}
		}
		if err != nil {
			if err != io.EOF {
				logger.Printf("read error: %v", err)
			}
			break
		}
	}

	report(os.Stdout, counts)
}

// recordMessage tallies a decoded message by source and, for the binary
// formats, by its numeric message/class-id type. NMEA sentences have no
// numeric type, so they're all tallied under key 0.
func recordMessage(counts map[string]map[int]uint, msg *autodetect.Message) {
	source := msg.Source.String()
	if counts[source] == nil {
		counts[source] = make(map[int]uint)
	}
	switch msg.Source {
	case autodetect.SourceRTCMv2:
		counts[source][int(msg.RTCMv2.PacketType)]++
	case autodetect.SourceRTCMv3:
		counts[source][msg.RTCMv3.MessageType]++
	case autodetect.SourceUBX:
		counts[source][int(msg.UBX.Class)<<8|int(msg.UBX.ID)]++
	case autodetect.SourceNMEA:
		counts[source][0]++
	}
}

func report(w io.Writer, counts map[string]map[int]uint) {
	sources := make([]string, 0, len(counts))
	for source := range counts {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		byType := counts[source]
		types := make([]int, 0, len(byType))
		for t := range byType {
			types = append(types, t)
		}
		sort.Ints(types)
		for _, t := range types {
			fmt.Fprintf(w, "%-7s type %5d: %6d\n", source, t, byType[t])
		}
	}
}
