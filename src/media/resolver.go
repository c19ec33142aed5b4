package media

import (
	"fmt"
	"net/url"
	"strings"
)

// CDNHost serves Cloudinary fetch URLs.
const CDNHost = "res.cloudinary.com"

const (
	thumbnailTransform = "c_fill,w_300,h_300,q_auto,f_auto"
	fullTransform      = "c_limit,w_1600,q_auto,f_auto"
)

// Variant names the two stored renditions of a media file.
func Variant(thumbnail bool) string {
	if thumbnail {
		return "thumbnail"
	}
	return "original"
}

// ResolverConfig carries the settings URL resolution depends on.
type ResolverConfig struct {
	StorageURL    string
	PublicBaseURL string
	CDNEnabled    bool
	CDNCloudName  string
}

// Resolver maps stored relative paths to client URLs. It holds no state
// beyond its configuration.
type Resolver struct {
	storageURL string
	publicURL  string
	cdnEnabled bool
	cloudName  string
}

func NewResolver(cfg ResolverConfig) *Resolver {
	return &Resolver{
		storageURL: strings.TrimRight(cfg.StorageURL, "/"),
		publicURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
		cdnEnabled: cfg.CDNEnabled && cfg.CDNCloudName != "",
		cloudName:  cfg.CDNCloudName,
	}
}

// CDNEnabled reports whether image URLs go through the CDN.
func (r *Resolver) CDNEnabled() bool {
	return r.cdnEnabled
}

// DirectURL points straight at the storage server.
func (r *Resolver) DirectURL(filepath string, thumbnail bool) string {
	p := cleanPath(filepath)
	if p == "" {
		return ""
	}
	return fmt.Sprintf("%s/files/%s/%s", r.storageURL, Variant(thumbnail), escapePath(p))
}

// ProxyURL points at this API's proxy route for the stored file. Without a
// public base URL the storage server is addressed directly.
func (r *Resolver) ProxyURL(filepath string, thumbnail bool) string {
	p := cleanPath(filepath)
	if p == "" {
		return ""
	}
	if r.publicURL == "" {
		return r.DirectURL(p, thumbnail)
	}
	return fmt.Sprintf("%s/api/media/file/%s/%s", r.publicURL, Variant(thumbnail), escapePath(p))
}

// CDNURL wraps origin in a Cloudinary fetch URL with resize, format and
// quality transformations.
func (r *Resolver) CDNURL(origin string, thumbnail bool) string {
	if origin == "" {
		return ""
	}
	transform := fullTransform
	if thumbnail {
		transform = thumbnailTransform
	}
	return fmt.Sprintf("https://%s/%s/image/fetch/%s/%s", CDNHost, r.cloudName, transform, url.QueryEscape(origin))
}

// Resolve picks the URL a client should load. Only images are sent
// through the CDN; everything else uses the proxy URL.
func (r *Resolver) Resolve(filepath string, thumbnail bool, category Category) string {
	proxy := r.ProxyURL(filepath, thumbnail)
	if proxy == "" {
		return ""
	}
	if r.cdnEnabled && category == CategoryImage {
		return r.CDNURL(proxy, thumbnail)
	}
	return proxy
}

func cleanPath(p string) string {
	return strings.TrimLeft(strings.TrimSpace(p), "/")
}

func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
