package orbital

import (
	"encoding/json"
	"strconv"
	"time"
)

// epochLayouts are tried in order when parsing string epochs. The upstream
// API mixes fractional seconds, offsets, space separators, and bare dates.
var epochLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// msThreshold: unix values above this are taken to be milliseconds.
// 1e10 seconds is the year 2286, far past any plausible epoch.
const msThreshold = 1e10

// ParseEpoch converts an epoch in any of the shapes the upstream API emits
// into a UTC time. Accepted inputs: time.Time (passed through), unix seconds
// or milliseconds (auto-detected), ISO-8601-like strings, json.Number.
// Unparseable input yields nil, never an error.
func ParseEpoch(v any) *time.Time {
	switch e := v.(type) {
	case nil:
		return nil
	case time.Time:
		return &e
	case *time.Time:
		return e
	case float64:
		return fromUnix(e)
	case int64:
		return fromUnix(float64(e))
	case int:
		return fromUnix(float64(e))
	case json.Number:
		f, err := e.Float64()
		if err != nil {
			return nil
		}
		return fromUnix(f)
	case string:
		for _, layout := range epochLayouts {
			if t, err := time.Parse(layout, e); err == nil {
				t = t.UTC()
				return &t
			}
		}
		return nil
	default:
		return nil
	}
}

func fromUnix(v float64) *time.Time {
	if v > msThreshold {
		v /= 1000
	}
	sec := int64(v)
	nsec := int64((v - float64(sec)) * 1e9)
	t := time.Unix(sec, nsec).UTC()
	return &t
}

// Epoch format modes for FormatEpoch.
const (
	FormatISO      = "iso"
	FormatUnix     = "unix"
	FormatReadable = "readable"
)

// FormatEpoch renders t in the requested mode. Unknown modes fall back to
// ISO-8601.
func FormatEpoch(t time.Time, mode string) string {
	switch mode {
	case FormatUnix:
		return strconv.FormatInt(t.Unix(), 10)
	case FormatReadable:
		return t.UTC().Format("2006-01-02 15:04:05") + " UTC"
	default:
		return t.Format(time.RFC3339)
	}
}

// TimeSince returns the elapsed duration from epoch to now.
func TimeSince(epoch time.Time) time.Duration {
	return time.Since(epoch)
}

// IsRecent reports whether epoch lies within maxAge of now.
func IsRecent(epoch time.Time, maxAge time.Duration) bool {
	return TimeSince(epoch) < maxAge
}
