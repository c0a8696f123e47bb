// Package shares models the shares-outstanding series reported for a company
// and reduces it to its extremes.
package shares

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// MinFiscalYear is the exclusive lower bound on fiscal years kept by Filter.
const MinFiscalYear = 2020

// UnknownEntity names a company whose response carried no entityName.
const UnknownEntity = "Unknown"

// Concept is the subset of the company-concept document this package reads.
// Fields not listed here are ignored whatever their type.
type Concept struct {
	EntityName json.RawMessage `json:"entityName"`
	Units      struct {
		Shares []RawPoint `json:"shares"`
	} `json:"units"`
}

// RawPoint is one disclosed fact as sent by the provider. fy and val are kept
// raw so that wrongly typed values can be told apart from missing ones.
type RawPoint struct {
	FY  json.RawMessage `json:"fy"`
	Val json.RawMessage `json:"val"`
}

// DataPoint is a validated fact.
type DataPoint struct {
	FiscalYear string
	Value      float64
}

// Extreme is the value and fiscal year of a maximum or minimum.
type Extreme struct {
	Value      float64 `json:"value"`
	FiscalYear string  `json:"fiscal_year"`
}

// Result is the summary of a resolved series.
type Result struct {
	EntityName string  `json:"entity_name"`
	Max        Extreme `json:"max"`
	Min        Extreme `json:"min"`
}

// Name returns the entity name, or UnknownEntity when the document has no
// non-empty string under entityName.
func (c Concept) Name() string {
	var name string
	if err := json.Unmarshal(c.EntityName, &name); err != nil || name == "" {
		return UnknownEntity
	}
	return name
}

// ParseFiscalYear accepts a four digit year sent either as a JSON number or a
// JSON string. ok is false for anything else, including null.
func ParseFiscalYear(raw json.RawMessage) (year int, text string, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, "", false
	}
	text = string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, "", false
		}
	}
	if len(text) != 4 {
		return 0, "", false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return 0, "", false
		}
	}
	year, err := strconv.Atoi(text)
	if err != nil {
		return 0, "", false
	}
	return year, text, true
}

// ParseValue accepts a finite JSON number. Strings, booleans and null are rejected.
func ParseValue(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Filter keeps, in order, the points whose fiscal year is after MinFiscalYear
// and whose value is a finite number.
func Filter(points []RawPoint) []DataPoint {
	out := make([]DataPoint, 0, len(points))
	for _, p := range points {
		year, text, ok := ParseFiscalYear(p.FY)
		if !ok || year <= MinFiscalYear {
			continue
		}
		v, ok := ParseValue(p.Val)
		if !ok {
			continue
		}
		out = append(out, DataPoint{FiscalYear: text, Value: v})
	}
	return out
}

// Reduce scans points left to right and returns the maximum and minimum.
// Equal values replace the current extreme, so ties go to the last candidate.
func Reduce(points []DataPoint) (hi, lo DataPoint, err error) {
	if len(points) == 0 {
		return DataPoint{}, DataPoint{}, ErrNoData
	}
	hi, lo = points[0], points[0]
	for _, p := range points[1:] {
		if p.Value >= hi.Value {
			hi = p
		}
		if p.Value <= lo.Value {
			lo = p
		}
	}
	return hi, lo, nil
}

// Summarize filters and reduces the concept into a Result.
func Summarize(c Concept) (Result, error) {
	hi, lo, err := Reduce(Filter(c.Units.Shares))
	if err != nil {
		return Result{}, err
	}
	return Result{
		EntityName: c.Name(),
		Max:        Extreme{Value: hi.Value, FiscalYear: hi.FiscalYear},
		Min:        Extreme{Value: lo.Value, FiscalYear: lo.FiscalYear},
	}, nil
}
