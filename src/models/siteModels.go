package models

// SiteModel is a row of the PyArchInit site table.
type SiteModel struct {
	IdSito          int     `json:"id_sito" gorm:"column:id_sito;primaryKey;autoIncrement"`
	Sito            *string `json:"sito" gorm:"column:sito;type:text"`
	Nazione         *string `json:"nazione" gorm:"column:nazione;type:varchar(255)"`
	Regione         *string `json:"regione" gorm:"column:regione;type:varchar(255)"`
	Comune          *string `json:"comune" gorm:"column:comune;type:varchar(255)"`
	Provincia       *string `json:"provincia" gorm:"column:provincia;type:varchar(255)"`
	Descrizione     *string `json:"descrizione" gorm:"column:descrizione;type:text"`
	DefinizioneSito *string `json:"definizione_sito" gorm:"column:definizione_sito;type:varchar(255)"`
}

func (SiteModel) TableName() string { return "site_table" }
