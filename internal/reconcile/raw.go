// Package reconcile turns raw records from any of the three data sources
// (local seed, REST API, document store) into the canonical bus shape, and
// back into backend payloads. Upstream data is assumed malformed: every
// function here is total and degrades to defaults instead of failing.
package reconcile

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Raw is one undecoded record as it arrives from a source: a JSON object
// from the REST API, a bson.M from Mongo, or a hand-built map.
type Raw map[string]interface{}

// FirstString returns the first non-empty string value among the given
// keys. Numeric values are stringified so numeric ids survive.
func (r Raw) FirstString(keys ...string) string {
	return firstString(r, keys)
}

// firstString returns the first non-empty string value among the given
// keys. Numeric values are stringified so numeric ids survive.
func firstString(raw Raw, keys []string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if s := stringValue(v); s != "" {
			return s
		}
	}
	return ""
}

// firstInt returns the first value among the given keys that coerces to a
// finite number, truncated to int. Strings are parsed.
func firstInt(raw Raw, keys []string) (int, bool) {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if n, ok := intValue(v); ok {
			return n, true
		}
	}
	return 0, false
}

// firstTimestamp returns the first value among the given keys that parses
// as a timestamp, in epoch milliseconds. Falls back to the current time,
// matching the canonical lastUpdated default.
func firstTimestamp(raw Raw, keys []string) int64 {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if ms, ok := millisValue(v); ok {
			return ms
		}
	}
	return time.Now().UnixMilli()
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == math.Trunc(s) && !math.IsInf(s, 0) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return stringValue(float64(s))
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case primitive.ObjectID:
		return s.Hex()
	}
	return ""
}

func intValue(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case float32:
		return intValue(float64(n))
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return 0, false
		}
		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int(parsed), true
		}
	}
	return 0, false
}

func millisValue(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	case time.Time:
		return t.UnixMilli(), true
	case primitive.DateTime:
		return int64(t), true
	case primitive.Timestamp:
		return int64(t.T) * 1000, true
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return 0, false
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed.UnixMilli(), true
			}
		}
	}
	return 0, false
}
