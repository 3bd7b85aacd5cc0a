package entity

import (
	"regexp"
	"strconv"
	"strings"

	errs "github.com/amirhossein-jamali/countdown-timer/internal/domain/error"
)

// TimeFormat is the field layout a duration string was written in.
// It is remembered from the input, never derived from the number of seconds.
type TimeFormat string

const (
	// TimeFormatMMSS is the two-field "mm:ss" layout
	TimeFormatMMSS TimeFormat = "mm:ss"
	// TimeFormatHHMMSS is the three-field "hh:mm:ss" layout
	TimeFormatHHMMSS TimeFormat = "hh:mm:ss"
)

var (
	hhmmssPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	mmssPattern   = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// IsValid reports whether f is one of the known formats
func (f TimeFormat) IsValid() bool {
	return f == TimeFormatMMSS || f == TimeFormatHHMMSS
}

// DetectTimeFormat returns the layout of s or a FormatError when s matches none
func DetectTimeFormat(s string) (TimeFormat, error) {
	switch {
	case hhmmssPattern.MatchString(s):
		return TimeFormatHHMMSS, nil
	case mmssPattern.MatchString(s):
		return TimeFormatMMSS, nil
	default:
		return "", errs.NewFormatError(s)
	}
}

// ParseDuration converts an "mm:ss" or "hh:mm:ss" string into whole seconds.
// Every field must be exactly two decimal digits.
func ParseDuration(s string) (int64, TimeFormat, error) {
	format, err := DetectTimeFormat(s)
	if err != nil {
		return 0, "", err
	}

	fields := make([]int64, 0, 3)
	for _, part := range strings.Split(s, ":") {
		// The pattern guarantees two ASCII digits per field
		value, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, "", errs.NewFormatError(s)
		}
		fields = append(fields, value)
	}

	if format == TimeFormatMMSS {
		return fields[0]*60 + fields[1], format, nil
	}
	return fields[0]*3600 + fields[1]*60 + fields[2], format, nil
}

// FormatDuration renders seconds in the given layout with every field zero-padded
// to two digits. Negative input renders as zero.
func FormatDuration(seconds int64, format TimeFormat) string {
	if seconds < 0 {
		seconds = 0
	}

	if format == TimeFormatMMSS {
		return zeroPad(seconds/60) + ":" + zeroPad(seconds%60)
	}

	return zeroPad(seconds/3600) + ":" + zeroPad((seconds/60)%60) + ":" + zeroPad(seconds%60)
}

// zeroPad prefixes a single '0' to values under ten
func zeroPad(value int64) string {
	if value < 10 {
		return "0" + strconv.FormatInt(value, 10)
	}
	return strconv.FormatInt(value, 10)
}
