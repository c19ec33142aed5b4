// Package media classifies media files and resolves the URLs clients load
// them from.
package media

import (
	"path"
	"strings"
)

// Category selects how a media file is delivered.
type Category string

const (
	CategoryImage Category = "image"
	CategoryVideo Category = "video"
	Category3D    Category = "3d"
)

var tagCategories = map[string]Category{
	"image":    CategoryImage,
	"images":   CategoryImage,
	"immagine": CategoryImage,
	"foto":     CategoryImage,
	"photo":    CategoryImage,
	"video":    CategoryVideo,
	"movie":    CategoryVideo,
	"3d":       Category3D,
	"3d_model": Category3D,
	"3dmodel":  Category3D,
	"model":    Category3D,
	"modello":  Category3D,
}

var extCategories = map[string]Category{
	"jpg": CategoryImage, "jpeg": CategoryImage, "png": CategoryImage, "gif": CategoryImage,
	"webp": CategoryImage, "bmp": CategoryImage, "tiff": CategoryImage, "tif": CategoryImage,

	"mp4": CategoryVideo, "webm": CategoryVideo, "avi": CategoryVideo, "mov": CategoryVideo,
	"mkv": CategoryVideo, "wmv": CategoryVideo, "flv": CategoryVideo, "m4v": CategoryVideo,

	"glb": Category3D, "gltf": Category3D, "obj": Category3D, "fbx": Category3D,
	"stl": Category3D, "ply": Category3D, "3ds": Category3D, "dae": Category3D,
}

// Categorize classifies a media item. A recognized category tag wins,
// then the stored file type, then the extension of each filename in turn.
// Anything unrecognized is an image.
func Categorize(tag, filetype string, filenames ...string) Category {
	if c, ok := tagCategories[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return c
	}
	if c, ok := extCategories[normalizeExt(filetype)]; ok {
		return c
	}
	for _, name := range filenames {
		if c, ok := extCategories[normalizeExt(path.Ext(name))]; ok {
			return c
		}
	}
	return CategoryImage
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
