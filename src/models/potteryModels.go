package models

type PotteryModel struct {
	IdRep             int      `json:"id_rep" gorm:"column:id_rep;primaryKey;autoIncrement"`
	IdNumber          *int     `json:"id_number" gorm:"column:id_number"`
	Sito              *string  `json:"sito" gorm:"column:sito;type:text"`
	Area              *string  `json:"area" gorm:"column:area;type:text"`
	US                *string  `json:"us" gorm:"column:us;type:text"`
	Box               *int     `json:"box" gorm:"column:box"`
	Photo             *string  `json:"photo" gorm:"column:photo;type:text"`
	Drawing           *string  `json:"drawing" gorm:"column:drawing;type:text"`
	Anno              *int     `json:"anno" gorm:"column:anno"`
	Fabric            *string  `json:"fabric" gorm:"column:fabric;type:text"`
	Percent           *string  `json:"percent" gorm:"column:percent;type:text"`
	Material          *string  `json:"material" gorm:"column:material;type:text"`
	Form              *string  `json:"form" gorm:"column:form;type:text"`
	SpecificForm      *string  `json:"specific_form" gorm:"column:specific_form;type:text"`
	Ware              *string  `json:"ware" gorm:"column:ware;type:text"`
	Munsell           *string  `json:"munsell" gorm:"column:munsell;type:text"`
	SurfTrat          *string  `json:"surf_trat" gorm:"column:surf_trat;type:text"`
	Exdeco            *string  `json:"exdeco" gorm:"column:exdeco;type:text"`
	Intdeco           *string  `json:"intdeco" gorm:"column:intdeco;type:text"`
	WheelMade         *string  `json:"wheel_made" gorm:"column:wheel_made;type:text"`
	DescripExDeco     *string  `json:"descrip_ex_deco" gorm:"column:descrip_ex_deco;type:text"`
	DescripInDeco     *string  `json:"descrip_in_deco" gorm:"column:descrip_in_deco;type:text"`
	Note              *string  `json:"note" gorm:"column:note;type:text"`
	DiametroMax       *float64 `json:"diametro_max" gorm:"column:diametro_max"`
	Qty               *int     `json:"qty" gorm:"column:qty"`
	DiametroRim       *float64 `json:"diametro_rim" gorm:"column:diametro_rim"`
	DiametroBottom    *float64 `json:"diametro_bottom" gorm:"column:diametro_bottom"`
	DiametroHeight    *float64 `json:"diametro_height" gorm:"column:diametro_height"`
	DiametroPreserved *float64 `json:"diametro_preserved" gorm:"column:diametro_preserved"`
	SpecificShape     *string  `json:"specific_shape" gorm:"column:specific_shape;type:text"`
	Bag               *int     `json:"bag" gorm:"column:bag"`
	Sector            *string  `json:"sector" gorm:"column:sector;type:text"`
}

func (PotteryModel) TableName() string { return "pottery_table" }
