package models

// USModel is a stratigraphic unit, identified in the field by (sito, area, us).
type USModel struct {
	IdUS            int      `json:"id_us" gorm:"column:id_us;primaryKey;autoIncrement"`
	Sito            *string  `json:"sito" gorm:"column:sito;type:text"`
	Area            *string  `json:"area" gorm:"column:area;type:text"`
	US              *string  `json:"us" gorm:"column:us;type:text"`
	DStratigrafica  *string  `json:"d_stratigrafica" gorm:"column:d_stratigrafica;type:text"`
	DInterpretativa *string  `json:"d_interpretativa" gorm:"column:d_interpretativa;type:text"`
	Descrizione     *string  `json:"descrizione" gorm:"column:descrizione;type:text"`
	Interpretazione *string  `json:"interpretazione" gorm:"column:interpretazione;type:text"`
	PeriodoIniziale *string  `json:"periodo_iniziale" gorm:"column:periodo_iniziale;type:text"`
	FaseIniziale    *string  `json:"fase_iniziale" gorm:"column:fase_iniziale;type:text"`
	PeriodoFinale   *string  `json:"periodo_finale" gorm:"column:periodo_finale;type:text"`
	FaseFinale      *string  `json:"fase_finale" gorm:"column:fase_finale;type:text"`
	Datazione       *string  `json:"datazione" gorm:"column:datazione;type:text"`
	AnnoScavo       *string  `json:"anno_scavo" gorm:"column:anno_scavo;type:text"`
	Scavato         *string  `json:"scavato" gorm:"column:scavato;type:text"`
	OrderLayer      *int     `json:"order_layer" gorm:"column:order_layer"`
	UnitaTipo       *string  `json:"unita_tipo" gorm:"column:unita_tipo;type:text"`
	Settore         *string  `json:"settore" gorm:"column:settore;type:text"`
	QuotaMinAbs     *float64 `json:"quota_min_abs" gorm:"column:quota_min_abs"`
	QuotaMaxAbs     *float64 `json:"quota_max_abs" gorm:"column:quota_max_abs"`

	// Computed by the query against the geometry layer, never stored.
	HasGeometry *bool `json:"has_geometry,omitempty" gorm:"column:has_geometry;->;-:migration"`
}

func (USModel) TableName() string { return "us_table" }
