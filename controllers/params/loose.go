package params

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Loose holds a JSON scalar that may arrive as a string or a number.
type Loose string

func (l *Loose) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Loose(strings.TrimSpace(s))
		return nil
	}
	*l = Loose(b)
	return nil
}

// Truthy reads true, "true", "1" and any non-zero number as true.
func (l Loose) Truthy() bool {
	s := strings.ToLower(string(l))
	switch s {
	case "", "false", "0", "null":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0
	}
	return true
}

