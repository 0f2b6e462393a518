package xlwrap

import (
	"os"

	"github.com/rs/zerolog"
)

// Options holds configuration for a Workbook.
type Options struct {
	logger        zerolog.Logger
	defaultSheets int
	password      string
}

func defaultOptions() *Options {
	return &Options{
		logger:        zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger(),
		defaultSheets: 3,
	}
}

// Option configures a Workbook.
type Option func(*Options)

// WithLogger sets the logger used for workbook events (default: stderr, info level).
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithDefaultSheets sets how many sheets a new workbook starts with (default: 3).
func WithDefaultSheets(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.defaultSheets = n
		}
	}
}

// WithPassword sets the password used to open an encrypted workbook.
func WithPassword(password string) Option {
	return func(o *Options) { o.password = password }
}
