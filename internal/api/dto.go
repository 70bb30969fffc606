package api

import "github.com/mhx/filtcoef/internal/secjson"

type CreateSectionRequest struct {
	Label       string `json:"label,omitempty"`
	Schema      string `json:"schema"`
	Data        string `json:"data"`
	Raw         bool   `json:"raw,omitempty"`
	SectionName string `json:"section_name,omitempty"`
}

type SectionInfo struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Label     string `json:"label,omitempty"`
	Schema    string `json:"schema"`
	Records   int    `json:"records"`
	CreatedAt int64  `json:"created_at"`
}

type SectionList struct {
	Object string        `json:"object"`
	Data   []SectionInfo `json:"data"`
}

type SectionDocument struct {
	ID        string           `json:"id"`
	Object    string           `json:"object"`
	Label     string           `json:"label,omitempty"`
	Schema    string           `json:"schema"`
	CreatedAt int64            `json:"created_at"`
	Records   []secjson.Record `json:"records"`
}

type DeleteSectionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type EncodeResponse struct {
	Object string `json:"object"`
	Schema string `json:"schema"`
	Size   int    `json:"size"`
	Data   string `json:"data"`
}

type ImpulseResponse struct {
	Object  string    `json:"object"`
	Name    string    `json:"name"`
	Samples []float64 `json:"samples"`
}

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
	Code    string `json:"code,omitempty"`
}
