package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Coding is the encode/decode policy used by APIClient for request and response
// bodies.
type Coding interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// JSONCoding encodes with encoding/json. time.Time values are written and read as
// RFC 3339 (ISO-8601) text.
type JSONCoding struct {
	// DisallowUnknownFields makes decoding fail on fields the target type lacks.
	DisallowUnknownFields bool
}

// Encode implements Coding.
func (c JSONCoding) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode implements Coding.
func (c JSONCoding) Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if c.DisallowUnknownFields {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

var errTrailingData = errors.New("unexpected data after JSON value")

// JSONIterCoding encodes with json-iterator using its standard library compatible
// configuration.
type JSONIterCoding struct {
	api jsoniter.API
}

// NewJSONIterCoding returns a JSONIterCoding. A nil api selects
// jsoniter.ConfigCompatibleWithStandardLibrary.
func NewJSONIterCoding(api jsoniter.API) JSONIterCoding {
	if api == nil {
		api = jsoniter.ConfigCompatibleWithStandardLibrary
	}
	return JSONIterCoding{api: api}
}

// Encode implements Coding.
func (c JSONIterCoding) Encode(v any) ([]byte, error) {
	return c.jsonAPI().Marshal(v)
}

// Decode implements Coding.
func (c JSONIterCoding) Decode(data []byte, v any) error {
	return c.jsonAPI().Unmarshal(data, v)
}

func (c JSONIterCoding) jsonAPI() jsoniter.API {
	if c.api == nil {
		return jsoniter.ConfigCompatibleWithStandardLibrary
	}
	return c.api
}
