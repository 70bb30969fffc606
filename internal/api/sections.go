// Package api exposes coefficient-section decode and encode over HTTP for
// diagnostics against uploaded section blobs.
package api

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/mhx/filtcoef/internal/archive"
	"github.com/mhx/filtcoef/internal/iir"
	"github.com/mhx/filtcoef/internal/secjson"
	"github.com/mhx/filtcoef/pkg/filtsec"
)

// maxImpulseSamples bounds the impulse endpoint's response length.
const maxImpulseSamples = 1 << 16

type Server struct {
	store *SectionStore
	clock func() time.Time
}

func NewServer(store *SectionStore) *Server {
	if store == nil {
		store = NewSectionStore()
	}
	return &Server{
		store: store,
		clock: time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/sections", s.handleCreateSection)
	e.GET("/v1/sections", s.handleListSections)
	e.GET("/v1/sections/:id", s.handleGetSection)
	e.DELETE("/v1/sections/:id", s.handleDeleteSection)
	e.GET("/v1/sections/:id/records/:name", s.handleGetRecord)
	e.GET("/v1/sections/:id/records/:name/impulse", s.handleRecordImpulse)
	e.POST("/v1/encode", s.handleEncode)
}

func (s *Server) handleCreateSection(c *echo.Context) error {
	req, err := decodeJSON[CreateSectionRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	schema, err := filtsec.ParseSchema(req.Schema)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if req.Data == "" {
		return writeBadRequest(c, "data is required")
	}
	raw, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return writeBadRequest(c, fmt.Sprintf("data: %v", err))
	}

	sec, err := archive.FromBytes(raw, archive.Options{
		Schema:      schema,
		SectionName: req.SectionName,
		Raw:         req.Raw,
	})
	if err != nil {
		return writeDecodeError(c, err)
	}

	info := s.store.Create(req.Label, schema, sec, s.clock())
	return c.JSON(http.StatusOK, info)
}

func (s *Server) handleListSections(c *echo.Context) error {
	return c.JSON(http.StatusOK, SectionList{
		Object: "list",
		Data:   s.store.List(),
	})
}

func (s *Server) handleGetSection(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "section not found")
	}
	doc := secjson.FromSection(rec.Section, rec.Schema)
	out := SectionDocument{
		ID:        rec.Info.ID,
		Object:    "section",
		Label:     rec.Info.Label,
		Schema:    doc.Schema,
		CreatedAt: rec.Info.CreatedAt,
		Records:   doc.Records,
	}
	b, err := json.Marshal(out)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", "")
	}
	return c.JSONBlob(http.StatusOK, b)
}

func (s *Server) handleDeleteSection(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, "section not found")
	}
	return c.JSON(http.StatusOK, DeleteSectionResponse{
		ID:      id,
		Object:  "section",
		Deleted: true,
	})
}

func (s *Server) handleGetRecord(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "section not found")
	}
	idx, ok := rec.Section.Find(c.Param("name"))
	if !ok {
		return writeNotFound(c, "record not found")
	}
	b, err := json.Marshal(secjson.FromRecord(&rec.Section[idx]))
	if err != nil {
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", "")
	}
	return c.JSONBlob(http.StatusOK, b)
}

func (s *Server) handleRecordImpulse(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "section not found")
	}
	idx, ok := rec.Section.Find(c.Param("name"))
	if !ok {
		return writeNotFound(c, "record not found")
	}

	n := 16
	if q := c.QueryParam("n"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v <= 0 || v > maxImpulseSamples {
			return writeBadRequest(c, fmt.Sprintf("n must be between 1 and %d", maxImpulseSamples))
		}
		n = v
	}

	f, err := iir.FromRecord(&rec.Section[idx])
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, ImpulseResponse{
		Object:  "record.impulse",
		Name:    rec.Section[idx].Name,
		Samples: iir.Impulse(f, n),
	})
}

func (s *Server) handleEncode(c *echo.Context) error {
	doc, err := decodeJSON[secjson.Document](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	sec, schema, err := doc.Section()
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	data, err := filtsec.Encode(sec, schema)
	if err != nil {
		return writeEncodeError(c, err)
	}
	return c.JSON(http.StatusOK, EncodeResponse{
		Object: "section.encoding",
		Schema: schema.String(),
		Size:   len(data),
		Data:   base64.StdEncoding.EncodeToString(data),
	})
}
