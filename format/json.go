package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javil/java"
)

type JSONEncoder struct {
	w  io.Writer
	td *java.TypeDefinition
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(td *java.TypeDefinition) error {
	e.td = td
	return encode(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(summarize(e.td), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
