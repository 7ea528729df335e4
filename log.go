package dremel

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog.Logger writing JSON lines to w, at the
// given level. Pass io.Discard for a logger that costs nothing to call.
//
// This mirrors the convention used elsewhere in the ecosystem of holding
// a zerolog.Logger as a plain struct field (log) rather than a pointer,
// threaded in through a Logger functional option rather than a global.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func disabledLogger() zerolog.Logger {
	return zerolog.Nop()
}
