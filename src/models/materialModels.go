package models

// MaterialModel is a row of the materials inventory. Peso is in grams.
type MaterialModel struct {
	IdInvmat           int      `json:"id_invmat" gorm:"column:id_invmat;primaryKey;autoIncrement"`
	Sito               *string  `json:"sito" gorm:"column:sito;type:text"`
	NumeroInventario   *int     `json:"numero_inventario" gorm:"column:numero_inventario"`
	TipoReperto        *string  `json:"tipo_reperto" gorm:"column:tipo_reperto;type:text"`
	Definizione        *string  `json:"definizione" gorm:"column:definizione;type:text"`
	Descrizione        *string  `json:"descrizione" gorm:"column:descrizione;type:text"`
	Area               *string  `json:"area" gorm:"column:area;type:text"`
	US                 *string  `json:"us" gorm:"column:us;type:text"`
	NrCassa            *int64   `json:"nr_cassa" gorm:"column:nr_cassa"`
	LuogoConservazione *string  `json:"luogo_conservazione" gorm:"column:luogo_conservazione;type:text"`
	StatoConservazione *string  `json:"stato_conservazione" gorm:"column:stato_conservazione;type:text"`
	DatazioneReperto   *string  `json:"datazione_reperto" gorm:"column:datazione_reperto;type:text"`
	Lavato             *string  `json:"lavato" gorm:"column:lavato;type:varchar(3)"`
	TotaleFrammenti    *int     `json:"totale_frammenti" gorm:"column:totale_frammenti"`
	FormeMinime        *int     `json:"forme_minime" gorm:"column:forme_minime"`
	FormeMassime       *int     `json:"forme_massime" gorm:"column:forme_massime"`
	Peso               *float64 `json:"peso" gorm:"column:peso"`
	Repertato          *string  `json:"repertato" gorm:"column:repertato;type:varchar(3)"`
	Diagnostico        *string  `json:"diagnostico" gorm:"column:diagnostico;type:varchar(3)"`
}

func (MaterialModel) TableName() string { return "inventario_materiali_table" }
