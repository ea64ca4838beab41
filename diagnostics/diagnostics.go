// Package diagnostics offers a thin, optional convenience for collaborators
// that want a file-backed logger to pass into the stream codecs. It lives
// outside the synchronous core, since creating it opens a file.
package diagnostics

import (
	"log"

	"github.com/goblimey/go-tools/dailylogger"
)

// NewRotatingLogger returns a *log.Logger backed by a daily-rotating file
// named <prefix><date><suffix> under dir, in the same shape as the
// teacher's utils.GetDailyLogger. suffix should include the leading dot,
// e.g. ".log".
func NewRotatingLogger(dir, prefix, suffix string) *log.Logger {
	writer := dailylogger.New(dir, prefix, suffix)
	return log.New(writer, prefix, log.LstdFlags|log.Lshortfile|log.Lmicroseconds)
}
