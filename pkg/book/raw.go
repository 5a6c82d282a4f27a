package book

import (
	"encoding/json"
	"io"
)

// RawEntry is the persisted form of one book position.
type RawEntry struct {
	Name  string             `json:"name"`
	ECO   string             `json:"eco"`
	Moves map[string]float64 `json:"moves"`
}

// Raw is the persisted book table, keyed by canonical position key.
type Raw map[string]RawEntry

// Write persists raw as indented JSON with sorted keys.
func Write(w io.Writer, raw Raw) error {
	data, err := json.MarshalIndent(raw, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
