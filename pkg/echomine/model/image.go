// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import "github.com/aucontraire/echomine/pkg/echomine/errrs"

// ImageRef is a reference to an image attachment extracted from multimodal
// message content (e.g. an OpenAI image_asset_pointer part). ImageRef is
// immutable once constructed via NewImageRef.
type ImageRef struct {
	assetPointer string
	sizeBytes    *int64
	width        *int
	height       *int
	metadata     map[string]any
}

// NewImageRef validates and constructs an ImageRef. assetPointer must be
// non-empty. sizeBytes, width and height are optional (nil means "not
// reported by the provider"); when present, sizeBytes must be >= 0 and
// width/height must each be >= 1.
func NewImageRef(assetPointer string, sizeBytes *int64, width, height *int, metadata map[string]any) (ImageRef, error) {
	if assetPointer == "" {
		return ImageRef{}, errrs.NewValidationError("asset_pointer", "asset_pointer must not be empty")
	}
	if sizeBytes != nil && *sizeBytes < 0 {
		return ImageRef{}, errrs.NewValidationError("size_bytes", "size_bytes must be >= 0")
	}
	if width != nil && *width < 1 {
		return ImageRef{}, errrs.NewValidationError("width", "width must be >= 1")
	}
	if height != nil && *height < 1 {
		return ImageRef{}, errrs.NewValidationError("height", "height must be >= 1")
	}

	return ImageRef{
		assetPointer: assetPointer,
		sizeBytes:    sizeBytes,
		width:        width,
		height:       height,
		metadata:     cloneMetadata(metadata),
	}, nil
}

// AssetPointer is the provider-specific image URI.
func (i ImageRef) AssetPointer() string { return i.assetPointer }

// SizeBytes returns the reported file size and whether it was reported.
func (i ImageRef) SizeBytes() (int64, bool) {
	if i.sizeBytes == nil {
		return 0, false
	}
	return *i.sizeBytes, true
}

// Width returns the reported pixel width and whether it was reported.
func (i ImageRef) Width() (int, bool) {
	if i.width == nil {
		return 0, false
	}
	return *i.width, true
}

// Height returns the reported pixel height and whether it was reported.
func (i ImageRef) Height() (int, bool) {
	if i.height == nil {
		return 0, false
	}
	return *i.height, true
}

// Metadata returns a defensive copy of the provider-specific auxiliary
// fields attached to this image reference.
func (i ImageRef) Metadata() map[string]any {
	return cloneMetadata(i.metadata)
}

func cloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
