// Package stages models the RPD stage dependency document: for every
// service type, its stage-1 options, the stage-2 options reachable from
// each stage-1 option and the stage-3 options reachable from each
// stage-1/stage-2 pair.
package stages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// CombinedKeySeparator joins a stage-1 label and a stage-2 label into the
// key of a stage-3 dependency.
const CombinedKeySeparator = " → "

// Document is the wire format of rpd_asamalar.json.
type Document struct {
	Metadata Metadata              `json:"metadata"`
	Services map[string]ServiceDoc `json:"services"`
}

// Metadata is informational only.
type Metadata struct {
	GeneratedAt   string `json:"generated_at"`
	TotalServices int    `json:"total_services"`
}

// ServiceDoc describes one service type.
type ServiceDoc struct {
	Name   string               `json:"hizmet_adi"`
	Stage1 OptionList           `json:"asama_1"`
	Stage2 map[string]Stage2Dep `json:"asama_2_bagimliliklari"`
	Stage3 map[string]Stage3Dep `json:"asama_3_bagimliliklari"`
}

// OptionList is a counted list of options.
type OptionList struct {
	Options []WireOption `json:"secenekler"`
	Total   int          `json:"toplam"`
}

// Stage2Dep is keyed by stage-1 label in ServiceDoc.Stage2.
type Stage2Dep struct {
	Stage1Code Code         `json:"asama_1_deger"`
	Options    []WireOption `json:"secenekler"`
	Total      int          `json:"toplam"`
}

// Stage3Dep is keyed by "<stage1 label> → <stage2 label>" in ServiceDoc.Stage3.
type Stage3Dep struct {
	Stage1Code Code         `json:"asama_1_deger"`
	Stage2Code Code         `json:"asama_2_deger"`
	Options    []WireOption `json:"secenekler"`
	Total      int          `json:"toplam"`
}

// WireOption is one {deger, metin} pair.
type WireOption struct {
	Code  Code   `json:"deger"`
	Label string `json:"metin"`
}

// Code is an option code. Generators sometimes write codes as JSON
// numbers, so both strings and numbers are accepted.
type Code string

func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("option code must be a string or number, got %s", data)
	}
	*c = Code(n.String())
	return nil
}

// CombinedKey builds the stage-3 dependency key for a label pair.
func CombinedKey(stage1Label, stage2Label string) string {
	return stage1Label + CombinedKeySeparator + stage2Label
}

// Decode parses a stage document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing stage document: %w", err)
	}
	return &doc, nil
}
