// Package parse turns loosely typed caregiver input into sanitized values.
package parse

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"nursery-prep-backend/internal/calendar"
	"nursery-prep-backend/internal/model"
)

// RequiredCount converts an override value to a non-negative decimal.
// Anything non-numeric, non-finite or negative becomes zero.
func RequiredCount(raw any) decimal.Decimal {
	switch v := raw.(type) {
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return clamp(decimal.NewFromInt(int64(v)))
	case int64:
		return clamp(decimal.NewFromInt(v))
	case json.RawMessage:
		return fromRaw(v)
	case json.Number:
		return fromString(v.String())
	case string:
		return fromString(v)
	case decimal.Decimal:
		return clamp(v)
	default:
		return decimal.Zero
	}
}

// RawRequiredCounts sanitizes an override payload decoded without number
// conversion, so out-of-range literals such as 1e400 reach fromString.
func RawRequiredCounts(raw map[string]json.RawMessage) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(raw))
	for id, v := range raw {
		out[id] = fromRaw(v)
	}
	return out
}

func fromRaw(raw json.RawMessage) decimal.Decimal {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return fromString(s)
	}
	return fromString(string(raw))
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return clamp(decimal.NewFromFloat(f))
}

func fromString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	// ParseFloat accepts "NaN" and "Inf", which fromFloat rejects.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return decimal.Zero
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return clamp(decimal.NewFromFloat(f))
	}
	return clamp(d)
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Count clamps an observed count at zero.
func Count(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ObservationType validates a morning/evening query value.
func ObservationType(raw string) (model.ObservationType, error) {
	t := model.ObservationType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown observation type %q", raw)
	}
	return t, nil
}

// DateOr parses a YYYY-MM-DD value, returning fallback when raw is empty.
func DateOr(raw string, fallback calendar.Date) (calendar.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return calendar.Parse(strings.TrimSpace(raw))
}
