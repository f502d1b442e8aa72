package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/primex-melvin/tabledoc/internal/document"
)

// ReadJSON reads an array of flat objects. Column order follows first
// appearance of each key. An empty array yields a dataset without columns.
func ReadJSON(r io.Reader, name string) (*Dataset, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, NewParseError(name, 0, err)
	}
	if len(raw) == 0 {
		return &Dataset{Name: name, Records: []document.Record{}}, nil
	}
	var keys []string
	seen := make(map[string]bool)
	records := make([]document.Record, 0, len(raw))
	for i, msg := range raw {
		order, err := objectKeys(msg)
		if err != nil {
			return nil, NewParseError(name, i+1, err)
		}
		for _, k := range order {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}

		var obj map[string]any
		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.UseNumber()
		if err := dec.Decode(&obj); err != nil {
			return nil, NewParseError(name, i+1, err)
		}
		rec := make(document.Record, len(obj))
		for k, v := range obj {
			rec[k] = document.FromAny(v)
		}
		records = append(records, rec)
	}

	return newDataset(name, keys, records)
}

// objectKeys returns the top-level keys of a JSON object in source order
func objectKeys(msg json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected an object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)

		// skip the value
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
