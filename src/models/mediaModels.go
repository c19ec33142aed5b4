package models

// MediaThumbModel holds the stored paths of a media file. Filepath is the
// thumbnail, PathResize the full-resolution rendition.
type MediaThumbModel struct {
	IdMediaThumb       int     `json:"id_media_thumb" gorm:"column:id_media_thumb;primaryKey;autoIncrement"`
	IdMedia            int     `json:"id_media" gorm:"column:id_media;index"`
	Mediatype          *string `json:"mediatype" gorm:"column:mediatype;type:text"`
	MediaFilename      *string `json:"media_filename" gorm:"column:media_filename;type:text"`
	MediaThumbFilename *string `json:"media_thumb_filename" gorm:"column:media_thumb_filename;type:text"`
	Filetype           *string `json:"filetype" gorm:"column:filetype;type:varchar(10)"`
	Filepath           *string `json:"filepath" gorm:"column:filepath;type:text"`
	PathResize         *string `json:"path_resize" gorm:"column:path_resize;type:text"`
}

func (MediaThumbModel) TableName() string { return "media_thumb_table" }

// MediaToEntityModel links a media file to a US, material, pottery or other record.
type MediaToEntityModel struct {
	IdMediaToEntity int     `json:"id_mediaToEntity" gorm:"column:id_mediaToEntity;primaryKey;autoIncrement"`
	IdEntity        int     `json:"id_entity" gorm:"column:id_entity"`
	EntityType      *string `json:"entity_type" gorm:"column:entity_type;type:text"`
	SourceTable     *string `json:"table_name" gorm:"column:table_name;type:text"`
	IdMedia         int     `json:"id_media" gorm:"column:id_media"`
	Filepath        *string `json:"filepath" gorm:"column:filepath;type:text"`
	MediaName       *string `json:"media_name" gorm:"column:media_name;type:text"`
}

func (MediaToEntityModel) TableName() string { return "media_to_entity_table" }
