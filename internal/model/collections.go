package model

import (
	"encoding/json"
	"strconv"
)

// FlexID is an identifier that tolerates both the numeric (Date-derived) and
// string forms found in stored data. It always marshals back as a string.
type FlexID string

func (f FlexID) String() string { return string(f) }

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (f *FlexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// Macro is a reusable canned text snippet insertable into narrative fields.
// Categoria matches a clinical-narrative field name (anamnese, exame_fisico,
// conclusao).
type Macro struct {
	ID        FlexID `json:"id"`
	Titulo    string `json:"titulo"`
	Categoria string `json:"categoria"`
	Conteudo  string `json:"conteudo"`
}

// Template is a reusable partial pre-fill for new records. Data may be a
// subset of Pericia fields, possibly still in the legacy shape; it is kept
// raw and normalized by the canonical constructor when applied.
type Template struct {
	ID    FlexID          `json:"id"`
	Title string          `json:"title"`
	Data  json.RawMessage `json:"data"`
}

// Settings is the practitioner's singleton configuration record.
// Assinatura carries the signature image payload in the same encoding as
// attachment content.
type Settings struct {
	Nome       string `json:"nome"`
	CRM        string `json:"crm"`
	Endereco   string `json:"endereco"`
	Telefone   string `json:"telefone"`
	Assinatura string `json:"assinatura,omitempty"`
}

// Arquivo is one blob store entry: an opaque caller-assigned id and the
// serialized file content (base64 data URI or equivalent).
type Arquivo struct {
	ID      FlexID `json:"id"`
	Content string `json:"content"`
}

// Backup is the exported full-state snapshot artifact. It is ephemeral:
// assembled on export, never persisted locally.
type Backup struct {
	Pericias   []Pericia  `json:"pericias"`
	Macros     []Macro    `json:"macros"`
	Settings   Settings   `json:"settings"`
	Templates  []Template `json:"templates"`
	ExportDate string     `json:"exportDate"`
	Files      []Arquivo  `json:"files"`
}

// NewFileID derives a blob identifier from a millisecond timestamp, matching
// the ids the legacy client assigned.
func NewFileID(unixMilli int64) FlexID {
	return FlexID(strconv.FormatInt(unixMilli, 10))
}
