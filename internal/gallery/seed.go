// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package gallery

import (
	"encoding/json"
	"fmt"
	"os"
)

// seedEntry is one declared image in the seed manifest — the Go stand-in for
// the image slots the original page shipped in its markup.
type seedEntry struct {
	Source  string `json:"src"`
	Caption string `json:"caption"`
}

// LoadSeed reads the seed manifest and snapshots it as embedded Images.
//
// A missing manifest is an empty gallery, not an error; a present but
// unparsable manifest is an error because the page author clearly intended
// content to be there.
func LoadSeed(path string) ([]Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Image{}, nil
		}
		return nil, fmt.Errorf("gallery: read seed manifest: %w", err)
	}

	var entries []seedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("gallery: parse seed manifest: %w", err)
	}

	images := make([]Image, 0, len(entries))
	for i, entry := range entries {
		caption := entry.Caption
		if caption == "" {
			caption = fmt.Sprintf("Photo %d", i+1)
		}
		images = append(images, Image{
			Source:  entry.Source,
			Caption: caption,
			Origin:  OriginEmbedded,
		})
	}

	return images, nil
}
