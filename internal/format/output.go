package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes a command result as one JSON document followed by a
// newline. Output stays strict JSON so it can be piped into jq; anything
// human-facing belongs on stderr.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
