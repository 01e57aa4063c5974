package csl

import (
	"encoding/json"
	"fmt"
)

// FlexibleString can unmarshal from either string or number JSON values.
// Citation managers export the same field as "2023" in one record and 2023 in the next.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// text decodes a raw value as text, returning ok=false for absent, null,
// or non-scalar values.
func text(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var f FlexibleString
	if err := json.Unmarshal(raw, &f); err != nil {
		return "", false
	}
	return f.String(), true
}
