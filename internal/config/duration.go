package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is a timer setting in config.toml such as toast remove_delay.
// It accepts Go duration strings ("750ms", "2s") or a bare number of
// milliseconds. Zero switches the timer off.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))

	v, err := parseMillis(s)
	if err != nil {
		v, err = time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("duration %q: want a value like \"2s\" or a number of milliseconds", s)
		}
	}
	if v < 0 {
		return fmt.Errorf("duration %q is negative", s)
	}

	*d = Duration(v)
	return nil
}

// MarshalText writes zero as "0" so a disabled timer reads as off.
func (d Duration) MarshalText() ([]byte, error) {
	if d == 0 {
		return []byte("0"), nil
	}
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func parseMillis(s string) (time.Duration, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}
