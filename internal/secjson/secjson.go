// Package secjson converts coefficient sections to and from a stable JSON
// document form shared by the CLI and the HTTP API.
package secjson

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/mhx/filtcoef/pkg/filtsec"
)

// Document is the JSON form of one coefficient section.
type Document struct {
	Schema  string   `json:"schema"`
	Records []Record `json:"records"`
}

// Record is the JSON form of one filter record. SOS records carry Stages;
// polynomial records carry the B and A vectors. Order is derived from the
// coefficient data and ignored on the way back in.
type Record struct {
	Name      string    `json:"name"`
	Structure string    `json:"structure"`
	ValueType string    `json:"value_type"`
	Order     int       `json:"order"`
	Stages    []Stage   `json:"stages,omitempty"`
	B         []float64 `json:"b,omitempty"`
	A         []float64 `json:"a,omitempty"`
}

// Stage is one biquad section in coefficient order.
type Stage struct {
	B0 float64 `json:"b0"`
	B1 float64 `json:"b1"`
	B2 float64 `json:"b2"`
	A1 float64 `json:"a1"`
	A2 float64 `json:"a2"`
}

// FromSection builds the document form of sec as encoded under schema.
func FromSection(sec filtsec.Section, schema filtsec.Schema) *Document {
	doc := &Document{
		Schema:  schema.String(),
		Records: make([]Record, 0, len(sec)),
	}
	for i := range sec {
		doc.Records = append(doc.Records, FromRecord(&sec[i]))
	}
	return doc
}

// FromRecord builds the document form of a single record.
func FromRecord(r *filtsec.Record) Record {
	rec := Record{
		Name:      r.Name,
		Structure: r.Structure.String(),
		ValueType: r.ValueType.String(),
		Order:     r.Order(),
	}
	switch r.Structure {
	case filtsec.StructureSOS:
		stages := r.Stages()
		rec.Stages = make([]Stage, len(stages))
		for i, s := range stages {
			rec.Stages[i] = Stage{B0: s.B0, B1: s.B1, B2: s.B2, A1: s.A1, A2: s.A2}
		}
	case filtsec.StructurePolynomial:
		b, a := r.Polynomial()
		rec.B = append([]float64(nil), b...)
		rec.A = append([]float64(nil), a...)
	}
	return rec
}

// Section converts the document back into a decodable section and the schema
// named by the document.
func (d *Document) Section() (filtsec.Section, filtsec.Schema, error) {
	schema, err := filtsec.ParseSchema(d.Schema)
	if err != nil {
		return nil, 0, err
	}
	sec := make(filtsec.Section, 0, len(d.Records))
	for i := range d.Records {
		rec, err := toRecord(&d.Records[i])
		if err != nil {
			return nil, 0, fmt.Errorf("record %d (%q): %w", i, d.Records[i].Name, err)
		}
		sec = append(sec, rec)
	}
	return sec, schema, nil
}

func toRecord(in *Record) (filtsec.Record, error) {
	var rec filtsec.Record
	rec.Name = in.Name

	switch in.ValueType {
	case "float32":
		rec.ValueType = filtsec.Float32
	case "float64":
		rec.ValueType = filtsec.Float64
	default:
		return rec, fmt.Errorf("unknown value type %q", in.ValueType)
	}

	switch in.Structure {
	case "sos":
		if len(in.B) != 0 || len(in.A) != 0 {
			return rec, fmt.Errorf("sos record carries b/a vectors")
		}
		rec.Structure = filtsec.StructureSOS
		if len(in.Stages) > 0 {
			rec.Values = make([]float64, 0, len(in.Stages)*5)
			for _, s := range in.Stages {
				rec.Values = append(rec.Values, s.B0, s.B1, s.B2, s.A1, s.A2)
			}
		}
	case "polynomial":
		if len(in.Stages) != 0 {
			return rec, fmt.Errorf("polynomial record carries stages")
		}
		if len(in.B) != len(in.A) {
			return rec, fmt.Errorf("b and a lengths differ (%d vs %d)", len(in.B), len(in.A))
		}
		rec.Structure = filtsec.StructurePolynomial
		if len(in.B) > 0 {
			rec.Values = make([]float64, 0, 2*len(in.B))
			rec.Values = append(rec.Values, in.B...)
			rec.Values = append(rec.Values, in.A...)
		}
	default:
		return rec, fmt.Errorf("unknown structure %q", in.Structure)
	}
	return rec, nil
}

// Marshal renders d compactly.
func Marshal(d *Document) ([]byte, error) {
	return json.Marshal(d)
}

// MarshalIndent renders d for human consumption.
func MarshalIndent(d *Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal parses a document.
func Unmarshal(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
