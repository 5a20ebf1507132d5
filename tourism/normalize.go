package tourism

import (
	"bytes"
	"encoding/json"
	"strconv"

	databridge "github.com/opendatakr/databridge"
)

const successResultCode = "0000"

// envelope mirrors the upstream response wrapper. Numeric fields arrive as
// either JSON numbers or quoted strings depending on the service variant,
// so they are decoded leniently.
type envelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			TotalCount looseInt        `json:"totalCount"`
			NumOfRows  looseInt        `json:"numOfRows"`
			PageNo     looseInt        `json:"pageNo"`
			Items      json.RawMessage `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// looseInt accepts 42, "42", and null.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*n = looseInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = looseInt(v)
	return nil
}

// Normalize reduces a raw 200-status body to the uniform result shape.
//
// The upstream reports application failures inside a successful HTTP
// response, so the header result code is checked first: anything other
// than "0000" becomes a ProtocolError. The items container is awkward in
// two ways that are flattened here: a single matching record arrives as a
// bare object instead of a one-element array, and an empty result arrives
// as an empty string instead of an object. Either way callers always see
// a slice.
func Normalize(body []byte, requestURL string) (*databridge.NormalizedResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &databridge.ProtocolError{
			Message: "empty response received from tourism API",
			URL:     requestURL,
		}
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, &databridge.ProtocolError{
			Message: "invalid JSON response: " + err.Error(),
			URL:     requestURL,
		}
	}

	header := env.Response.Header
	if header.ResultCode != successResultCode {
		msg := header.ResultMsg
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &databridge.ProtocolError{
			Message:    "API error: " + msg,
			ResultCode: header.ResultCode,
			URL:        requestURL,
		}
	}

	body2 := env.Response.Body
	items := []map[string]string{}
	if int(body2.TotalCount) > 0 && len(body2.Items) > 0 {
		parsed, err := parseItems(body2.Items)
		if err != nil {
			return nil, &databridge.ProtocolError{
				Message: "failed to parse API response items: " + err.Error(),
				URL:     requestURL,
			}
		}
		items = parsed
	}

	pageNo := int(body2.PageNo)
	if pageNo == 0 {
		pageNo = 1
	}
	result := &databridge.NormalizedResult{
		TotalCount: int(body2.TotalCount),
		NumOfRows:  int(body2.NumOfRows),
		PageNo:     pageNo,
		Items:      items,
	}
	decodeResultStrings(result)
	return result, nil
}

// parseItems unwraps the items container. The container is an object with
// an "item" member holding either an array of records or, when exactly one
// record matched, the record itself. Empty-result sentinels ("" or {}) map
// to an empty slice.
func parseItems(raw json.RawMessage) ([]map[string]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return []map[string]string{}, nil
	}

	var container struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &container); err != nil {
		return nil, err
	}
	inner := bytes.TrimSpace(container.Item)
	if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
		return []map[string]string{}, nil
	}

	if inner[0] == '[' {
		var records []map[string]any
		if err := decodeNumbers(inner, &records); err != nil {
			return nil, err
		}
		out := make([]map[string]string, 0, len(records))
		for _, record := range records {
			out = append(out, stringifyRecord(record))
		}
		return out, nil
	}

	var record map[string]any
	if err := decodeNumbers(inner, &record); err != nil {
		return nil, err
	}
	return []map[string]string{stringifyRecord(record)}, nil
}

// decodeNumbers unmarshals with UseNumber so numeric fields keep their
// exact textual form instead of going through float64.
func decodeNumbers(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

// stringifyRecord flattens one record to string fields. The upstream
// nominally sends every field as a string, but a few service variants leak
// raw numbers.
func stringifyRecord(record map[string]any) map[string]string {
	out := make(map[string]string, len(record))
	for field, value := range record {
		switch v := value.(type) {
		case string:
			out[field] = v
		case json.Number:
			out[field] = v.String()
		case bool:
			out[field] = strconv.FormatBool(v)
		case nil:
			out[field] = ""
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				out[field] = ""
				continue
			}
			out[field] = string(encoded)
		}
	}
	return out
}
