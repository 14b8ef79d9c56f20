package routing

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// DefaultSpeedKmh applies to edges without a usable speed limit.
const DefaultSpeedKmh = 20.0

type SpeedKind int

const (
	SpeedAbsent SpeedKind = iota
	SpeedNumeric
	SpeedText
)

// SpeedTag keeps the free-form maxspeed attribute of a road as it was found
// in the source data. Interpretation is deferred to ParseSpeedKmh.
type SpeedTag struct {
	Kind  SpeedKind
	Value float64
	Text  string
}

func NumericSpeed(v float64) SpeedTag { return SpeedTag{Kind: SpeedNumeric, Value: v} }

func TextSpeed(s string) SpeedTag { return SpeedTag{Kind: SpeedText, Text: s} }

// SpeedTagFromProperty converts a decoded JSON property value. Lists keep
// their first element.
func SpeedTagFromProperty(v interface{}) SpeedTag {
	switch s := v.(type) {
	case nil:
		return SpeedTag{}
	case float64:
		return NumericSpeed(s)
	case int:
		return NumericSpeed(float64(s))
	case int64:
		return NumericSpeed(float64(s))
	case json.Number:
		if f, err := s.Float64(); err == nil {
			return NumericSpeed(f)
		}
		return TextSpeed(s.String())
	case string:
		return TextSpeed(s)
	case []interface{}:
		if len(s) > 0 {
			return SpeedTagFromProperty(s[0])
		}
		return SpeedTag{}
	default:
		return TextSpeed(fmt.Sprintf("%v", s))
	}
}

func (t SpeedTag) String() string {
	switch t.Kind {
	case SpeedNumeric:
		return strconv.FormatFloat(t.Value, 'f', -1, 64)
	case SpeedText:
		return t.Text
	default:
		return "none"
	}
}

var speedDigits = regexp.MustCompile(`\d+`)

// ParseSpeedKmh reads a speed limit in km/h. Text tags use their first run
// of digits whatever the unit written next to it ("30 km/h" and "30 mph"
// both read as 30).
func ParseSpeedKmh(t SpeedTag) (float64, error) {
	var kmh float64
	switch t.Kind {
	case SpeedNumeric:
		kmh = t.Value
	case SpeedText:
		match := speedDigits.FindString(t.Text)
		if match == "" {
			return 0, fmt.Errorf("%w: %q has no digits", ErrSpeedParse, t.Text)
		}
		parsed, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrSpeedParse, t.Text, err)
		}
		kmh = parsed
	default:
		return 0, fmt.Errorf("%w: no speed tag", ErrSpeedParse)
	}

	if kmh <= 0 || math.IsNaN(kmh) || math.IsInf(kmh, 0) {
		return 0, fmt.Errorf("%w: %s is not a positive speed", ErrSpeedParse, t)
	}
	return kmh, nil
}
