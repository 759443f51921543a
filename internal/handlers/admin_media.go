// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"gramsetu/internal/imaging"
)

const (
	// maxUploadSize is the maximum allowed file upload size (20 MB).
	maxUploadSize = 20 << 20

	// thumbMaxWidth is the maximum thumbnail width in pixels.
	thumbMaxWidth = 400
)

// allowedMediaTypes defines MIME types accepted for upload. PDFs carry
// scheme circulars and job notifications.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// thumbableTypes are image types that support thumbnail generation.
// GIF is excluded to preserve animation.
var thumbableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MediaUpload handles multipart file upload to S3. Responds with the
// public URL of the stored file and, for large images, a thumbnail URL.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 20 MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	contentType := http.DetectContentType(data)
	if !allowedMediaTypes[contentType] {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported file type "+contentType)
		return
	}

	// Randomized name preserving the original extension.
	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.NewString() + ext

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}

	url, err := a.storageClient.Upload(r.Context(), folder, name, contentType, data)
	if err != nil {
		slog.Error("media upload failed", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	resp := map[string]string{"url": url}

	if thumbableTypes[contentType] {
		thumb, err := imaging.Thumbnail(bytes.NewReader(data), thumbMaxWidth)
		if err != nil {
			// The original is already stored; a failed thumbnail is not fatal.
			slog.Warn("thumbnail generation failed", "name", name, "error", err)
		} else if thumb != nil {
			thumbURL, err := a.storageClient.Upload(r.Context(), folder+"/thumbs", name+".jpg", "image/jpeg", thumb)
			if err != nil {
				slog.Warn("thumbnail upload failed", "name", name, "error", err)
			} else {
				resp["thumb_url"] = thumbURL
			}
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}
