// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/garnix-insights/garnix-insights/lib/codec"
)

// Envelope wraps every build status and logs response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// wantsCBOR reports whether the Accept header names application/cbor
// with a nonzero quality.
func wantsCBOR(request *http.Request) bool {
	for _, accepted := range strings.Split(request.Header.Get("Accept"), ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(accepted))
		if err != nil || mediaType != codec.MediaType {
			continue
		}
		return params["q"] != "0" && params["q"] != "0.0"
	}
	return false
}

// encode renders value in the representation the client asked for and
// returns the body and its Content-Type.
func encode(request *http.Request, value any) ([]byte, string, error) {
	if wantsCBOR(request) {
		data, err := codec.Marshal(value)
		return data, codec.MediaType, err
	}
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, "", err
	}
	return buffer.Bytes(), "application/json", nil
}

// entityTag is a strong ETag over the encoded body.
func entityTag(body []byte) string {
	sum := blake3.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// matchesETag implements the weak comparison If-None-Match requires.
func matchesETag(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// write encodes value and sends it with status. When tagged is set and
// the status is 200, the response carries an ETag and a matching
// If-None-Match short-circuits to 304.
func (h *handler) write(writer http.ResponseWriter, request *http.Request, status int, value any, tagged bool) {
	body, contentType, err := encode(request, value)
	if err != nil {
		h.logger.Error("encoding response", "path", request.URL.Path, "error", err)
		http.Error(writer, "internal encoding error", http.StatusInternalServerError)
		return
	}

	header := writer.Header()
	header.Set("Content-Type", contentType)
	header.Add("Vary", "Accept")

	if tagged && status == http.StatusOK {
		etag := entityTag(body)
		header.Set("ETag", etag)
		header.Set("Cache-Control", "no-cache")
		if match := request.Header.Get("If-None-Match"); match != "" && matchesETag(match, etag) {
			header.Del("Content-Type")
			writer.WriteHeader(http.StatusNotModified)
			return
		}
	}

	writer.WriteHeader(status)
	if _, err := writer.Write(body); err != nil {
		h.logger.Warn("writing response", "path", request.URL.Path, "error", err)
	}
}

func (h *handler) sendError(writer http.ResponseWriter, request *http.Request, status int, body ErrorBody) {
	h.write(writer, request, status, Envelope{Success: false, Error: &body}, false)
}
