// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package imagetype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/levuhoang/photoring/internal/platform/imagetype"
)

// pngHeader is the magic prefix of a PNG file.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

// jpegHeader is the magic prefix of a JPEG file.
var jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0}

/*
TestSniff_DetectsFromContent verifies detection is content-based: a PNG named
.txt is still a PNG, and plain text named .jpg is still text.
*/
func TestSniff_DetectsFromContent(t *testing.T) {
	assert.Equal(t, "image/png", imagetype.Sniff("note.txt", pngHeader))
	assert.Equal(t, "image/jpeg", imagetype.Sniff("photo.jpg", jpegHeader))
	assert.Equal(t, "text/plain", imagetype.Sniff("fake.jpg", []byte("just some words")))
}

/*
TestSniff_SVG verifies that SVG documents are promoted from text/xml.
*/
func TestSniff_SVG(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)

	assert.Equal(t, "image/svg+xml", imagetype.Sniff("icon.svg", svg))
	assert.Equal(t, "image/svg+xml", imagetype.Sniff("renamed.bin", svg))
}

/*
TestIsAllowed covers the accepted photo type set.
*/
func TestIsAllowed(t *testing.T) {
	for _, mediaType := range []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml"} {
		assert.True(t, imagetype.IsAllowed(mediaType), mediaType)
	}

	assert.False(t, imagetype.IsAllowed("text/plain"))
	assert.False(t, imagetype.IsAllowed("application/pdf"))
	assert.False(t, imagetype.IsAllowed("image/tiff"))
}

/*
TestExtensionFor verifies stored-file extensions follow the sniffed type.
*/
func TestExtensionFor(t *testing.T) {
	ext, ok := imagetype.ExtensionFor("image/jpeg")
	assert.True(t, ok)
	assert.Equal(t, "jpg", ext)

	_, ok = imagetype.ExtensionFor("text/plain")
	assert.False(t, ok)
}
