package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/rickb777/acceptable/headername"
	"github.com/rickb777/srcsetlint/logger"
	"github.com/rickb777/srcsetlint/srcset"
	"github.com/rickb777/srcsetlint/validator"
)

const applicationJSON = "application/json; charset=utf-8"

// checker handles the endpoints that parse and validate.
type checker struct {
	validator *validator.Validator
}

// parseSrcset parses a single srcset value, given either as the request body or
// as the value query parameter. Invalid values are not an HTTP error: the result
// explains them.
func (c *checker) parseSrcset(w http.ResponseWriter, r *http.Request) {
	var value string

	if r.Method == http.MethodGet {
		value = r.URL.Query().Get("value")
	} else {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		value = string(body)
	}

	writeJSON(w, srcset.Parse(value))
}

// validate checks the posted document, which is HTML, XHTML or CSS according to
// its content type.
func (c *checker) validate(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get(headername.ContentType))
	if err != nil {
		http.Error(w, "Unsupported media type", http.StatusUnsupportedMediaType)
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	source := r.URL.Query().Get("source")
	if source == "" {
		source = "request"
	}

	var report *validator.Report

	switch strings.ToLower(mediaType) {
	case "text/html":
		report, err = c.validator.CheckHTML(source, strings.NewReader(string(body)))
	case "application/xhtml+xml", "application/xml", "text/xml":
		report, err = c.validator.CheckXHTML(source, strings.NewReader(string(body)))
	case "text/css":
		report = c.validator.CheckCSS(source, body)
	default:
		http.Error(w, "Unsupported media type "+mediaType, http.StatusUnsupportedMediaType)
		return
	}

	if err != nil {
		http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, report)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request entity too large", http.StatusRequestEntityTooLarge)
		} else {
			http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		}
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set(headername.ContentType, applicationJSON)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Writing response failed", slog.Any("error", err))
	}
}
