package lib

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/psidex/citygraph/internal/errors"
)

// Duration is a time.Duration in JSON: read from a string such as "30s" or from a
// number of nanoseconds, written as the string form.
type Duration struct {
	time.Duration
}

func DurationFrom(t time.Duration) Duration {
	return Duration{Duration: t}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "duration %q", s), errors.ErrInvalidRequest)
		}
		d.Duration = parsed
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.InvalidRequestf("invalid duration: %s", b)
	}
	f, err := n.Float64()
	if err != nil {
		return errors.InvalidRequestf("invalid duration: %s", b)
	}
	d.Duration = time.Duration(f)
	return nil
}

// OrDefault returns def when the duration is unset or negative.
func (d Duration) OrDefault(def time.Duration) time.Duration {
	if d.Duration <= 0 {
		return def
	}
	return d.Duration
}
