package mediatypes

import (
	"path"
	"strings"
)

// AssetKind represents the kind of a stored media asset.
type AssetKind string

const (
	// KindPhoto represents a photo asset.
	KindPhoto AssetKind = "photo"
	// KindVideo represents a video asset.
	KindVideo AssetKind = "video"
	// KindOther represents an unrecognized or unsupported object.
	KindOther AssetKind = "other"
)

// PhotoExtensions maps object-key extensions to whether they are accepted
// photo formats. Uploads produce only these three formats, so the listing
// path treats anything else under the photo prefix as noise.
var PhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// VideoExtensions maps object-key extensions to whether they are accepted
// video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
	".m4v":  true,
	".mkv":  true,
	".avi":  true,
}

// KindForKey returns the asset kind for an object key based on its extension.
func KindForKey(key string) AssetKind {
	ext := strings.ToLower(path.Ext(key))
	if PhotoExtensions[ext] {
		return KindPhoto
	}
	if VideoExtensions[ext] {
		return KindVideo
	}
	return KindOther
}

// BaseName strips the given prefix and the extension from an object key,
// returning the bare filename. Used by the filename-level dedup pass.
func BaseName(key, prefix string) string {
	name := strings.TrimPrefix(key, prefix)
	name = strings.TrimPrefix(name, "/")
	name = path.Base(name)
	return strings.TrimSuffix(name, path.Ext(name))
}

// MimeType returns the MIME type for an object key, or an empty string for
// unsupported extensions.
func MimeType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".mp4", ".m4v":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	case ".mkv":
		return "video/x-matroska"
	case ".avi":
		return "video/x-msvideo"
	default:
		return ""
	}
}
