package api

import (
	"errors"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/mhx/filtcoef/pkg/filtsec"
)

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "", "")
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, "", "")
}

func writeDecodeError(c *echo.Context, err error) error {
	return writeError(c, http.StatusBadRequest, "decode_error", err.Error(), "", errorCode(err))
}

func writeEncodeError(c *echo.Context, err error) error {
	return writeError(c, http.StatusBadRequest, "encode_error", err.Error(), "", errorCode(err))
}

func writeError(c *echo.Context, status int, errType, msg, param, code string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Code:    code,
			Param:   param,
		},
	})
}

// errorCode maps codec failures to stable slugs clients can switch on.
func errorCode(err error) string {
	switch {
	case errors.Is(err, filtsec.ErrUnsupportedByteOrder):
		return "unsupported_byte_order"
	case errors.Is(err, filtsec.ErrInvalidSectionData):
		return "invalid_section_data"
	case errors.Is(err, filtsec.ErrCorruptHeader):
		return "corrupt_header"
	case errors.Is(err, filtsec.ErrUnsupportedVersion):
		return "unsupported_version"
	case errors.Is(err, filtsec.ErrInvalidRecordSize):
		return "invalid_record_size"
	case errors.Is(err, filtsec.ErrUnsupportedValueType):
		return "unsupported_value_type"
	case errors.Is(err, filtsec.ErrUnsupportedStructure):
		return "unsupported_structure"
	case errors.Is(err, filtsec.ErrMisalignedPayload):
		return "misaligned_payload"
	case errors.Is(err, filtsec.ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, filtsec.ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, filtsec.ErrUnknownSchema):
		return "unknown_schema"
	default:
		return ""
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
