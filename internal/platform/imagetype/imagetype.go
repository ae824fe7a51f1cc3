// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

/*
Package imagetype decides what kind of image a byte payload actually is.

The media type is always sniffed from content, never trusted from a client
header or filename — the viewer uses it for its advisory pre-flight check and
the photo drop server repeats it as the authoritative check, so a bypassed
client cannot smuggle a non-image past the server.
*/
package imagetype

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/levuhoang/photoring/internal/platform/constants"
)

// Sniff returns the detected media type of data.
//
// SVG needs special handling: it is XML text, so the standard sniffer reports
// text/xml. A payload whose name or content says SVG is promoted to
// image/svg+xml before the generic answer is returned.
func Sniff(filename string, data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}

	detected := http.DetectContentType(head)
	if mime, _, found := strings.Cut(detected, ";"); found {
		detected = mime
	}
	detected = strings.TrimSpace(detected)

	if detected == "text/xml" || detected == "text/plain" || detected == "application/octet-stream" {
		if looksLikeSVG(filename, head) {
			return "image/svg+xml"
		}
	}

	return detected
}

// IsAllowed reports whether mediaType is one of the accepted photo types.
func IsAllowed(mediaType string) bool {
	_, ok := constants.AllowedImageMIMETypes[mediaType]
	return ok
}

// ExtensionFor returns the stored-file extension for an accepted media type.
func ExtensionFor(mediaType string) (string, bool) {
	ext, ok := constants.AllowedImageMIMETypes[mediaType]
	return ext, ok
}

// looksLikeSVG checks the filename extension and the document head for an
// svg root element.
func looksLikeSVG(filename string, head []byte) bool {
	if strings.EqualFold(filepath.Ext(filename), ".svg") {
		return true
	}
	return bytes.Contains(head, []byte("<svg"))
}
