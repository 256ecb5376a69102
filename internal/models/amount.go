package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Amount is an optional joined number (price, deposit, rent). The backend
// sends these as numbers, fractional numbers or numeric strings; anything
// else decodes to an invalid Amount instead of failing the whole item.
type Amount struct {
	Value float64
	Valid bool
}

// NewAmount returns a valid Amount holding v.
func NewAmount(v float64) Amount {
	return Amount{Value: v, Valid: true}
}

// Or returns the value, or fallback when the amount is missing.
func (a Amount) Or(fallback float64) float64 {
	if !a.Valid {
		return fallback
	}
	return a.Value
}

// IsZero reports a missing amount, so bson omitempty skips it.
func (a Amount) IsZero() bool {
	return !a.Valid
}

func parseAmount(s string) Amount {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return Amount{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return NewAmount(v)
}

// MarshalJSON writes the number, or null when missing.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON never fails; unusable input leaves the amount missing.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = Amount{}
			return nil
		}
		*a = parseAmount(s)
		return nil
	}
	*a = parseAmount(string(data))
	return nil
}

// MarshalBSONValue stores the amount as a double, or null when missing.
func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !a.Valid {
		return bsontype.Null, nil, nil
	}
	return bson.MarshalValue(a.Value)
}

// UnmarshalBSONValue accepts every BSON numeric type and numeric strings.
func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	*a = Amount{}
	switch t {
	case bsontype.Double:
		if v, ok := rv.DoubleOK(); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			*a = NewAmount(v)
		}
	case bsontype.Int32:
		if v, ok := rv.Int32OK(); ok {
			*a = NewAmount(float64(v))
		}
	case bsontype.Int64:
		if v, ok := rv.Int64OK(); ok {
			*a = NewAmount(float64(v))
		}
	case bsontype.Decimal128:
		if v, ok := rv.Decimal128OK(); ok {
			*a = parseAmount(v.String())
		}
	case bsontype.String:
		if v, ok := rv.StringValueOK(); ok {
			*a = parseAmount(v)
		}
	}
	return nil
}
