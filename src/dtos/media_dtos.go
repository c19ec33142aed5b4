package dtos

// MediaDTO describes a media file with the URLs a client should load.
type MediaDTO struct {
	IdMedia       int     `json:"id_media"`
	MediaFilename *string `json:"media_filename"`
	Mediatype     *string `json:"mediatype"`
	Filetype      *string `json:"filetype"`
	MediaCategory string  `json:"media_category"`
	Filepath      *string `json:"filepath"`
	PathResize    *string `json:"path_resize"`
	ThumbnailURL  string  `json:"thumbnail_url,omitempty"`
	FullURL       string  `json:"full_url,omitempty"`
}

type MediaListDTO struct {
	Total int64      `json:"total"`
	Items []MediaDTO `json:"items"`
}

type MediaListParams struct {
	Skip      int    `form:"skip,default=0" binding:"min=0"`
	Limit     int    `form:"limit,default=50" binding:"min=1,max=200"`
	Mediatype string `form:"mediatype"`
}
