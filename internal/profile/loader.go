package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// FromFile loads a profile collection from a JSON file. The file holds a
// plain array of profile objects as exported by the user store. Decoding
// goes through an intermediate map so unknown fields from newer exports are
// ignored rather than rejected.
func FromFile(path string) (*Profiles, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Profiles{}, nil
	}

	var raw []map[string]any
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode profiles file: %w", err)
	}

	return decode(raw)
}

func decode(raw []map[string]any) (*Profiles, error) {
	var items []*UserMatchProfile

	cfg := &mapstructure.DecoderConfig{
		Result:  &items,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	return &Profiles{Items: items}, nil
}
