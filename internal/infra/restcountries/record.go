package restcountries

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var errMissingIdentity = errors.New("no record carries a country name")

// Record is a country as delivered by REST Countries. Fields that the API has
// shipped in several shapes over its versions accept all of them.
type Record struct {
	Name       Name       `json:"name"`
	CCA2       string     `json:"cca2"`
	Capital    StringList `json:"capital"`
	Population *float64   `json:"population"`
	Area       *float64   `json:"area"`
	Region     string     `json:"region"`
	Languages  StringList `json:"languages"`
	Currencies StringList `json:"currencies"`
	Timezones  StringList `json:"timezones"`
	Flags      Flags      `json:"flags"`
}

// Name holds the common name of a country. It decodes both the v3 object
// form {"common": "..."} and the older plain string form.
type Name struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Name) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = Name{}
			return nil
		}
		*n = Name{Common: s}
		return nil
	}

	type plain Name
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*n = Name(p)
	return nil
}

// Flags holds flag image references.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt"`
}

// UnmarshalJSON implements json.Unmarshaler. A plain string is taken as the PNG url.
func (f *Flags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = Flags{}
			return nil
		}
		*f = Flags{PNG: s}
		return nil
	}

	type plain Flags
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = Flags(p)
	return nil
}

// StringList is an ordered list of display strings flattened from any of:
// an object keyed by code whose values are strings or {"name": ...} objects,
// an array of strings or {"name": ...} objects, a single string, or null.
// Object key order is kept as it appears in the payload.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	out := StringList{}

	if len(data) == 0 {
		*l = out
		return nil
	}

	switch data[0] {
	case '"':
		out = out.appendName(json.RawMessage(data))
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for _, it := range items {
			out = out.appendName(it)
		}
	case '{':
		values, err := orderedValues(data)
		if err != nil {
			return err
		}
		for _, v := range values {
			out = out.appendName(v)
		}
	}

	*l = out
	return nil
}

func (l StringList) appendName(raw json.RawMessage) StringList {
	name := strings.TrimSpace(displayName(raw))
	if name == "" {
		return l
	}
	return append(l, name)
}

// orderedValues returns the values of a JSON object in document order.
func orderedValues(data []byte) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	// Opening brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var values []json.RawMessage
	for dec.More() {
		// Key.
		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, nil
}

func displayName(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{':
		var v struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return ""
		}
		return v.Name
	default:
		return ""
	}
}

// DecodeRecords parses a country payload. The body must be a JSON array;
// elements that do not decode into a Record are skipped, and a non-empty
// array in which no record has a name is rejected.
func DecodeRecords(source string, body []byte) ([]Record, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, newPayloadError(source, err)
	}
	if items == nil {
		return nil, newPayloadError(source, errors.New("payload is not an array"))
	}

	records := make([]Record, 0, len(items))
	for _, raw := range items {
		rec, ok := decodeRecord(raw)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	if len(items) > 0 && !anyNamed(records) {
		return nil, newPayloadError(source, errMissingIdentity)
	}

	return records, nil
}

// decodeRecord decodes one array element. Anything other than an object, or an
// object with a field of the wrong type, is rejected.
func decodeRecord(raw json.RawMessage) (Record, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return Record{}, false
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}

func anyNamed(records []Record) bool {
	for _, r := range records {
		if strings.TrimSpace(r.Name.Common) != "" {
			return true
		}
	}
	return false
}
