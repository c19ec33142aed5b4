package dtos

// ListParams is the skip/limit window of the plain list endpoints. The upper
// bound on Limit is checked per collection.
type ListParams struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=1"`
}

// PageParams selects one page of a paginated endpoint.
type PageParams struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"page_size,default=20" binding:"min=1,max=100"`
}

// Offset is the number of rows before the page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type SiteFilter struct {
	Sito   string `form:"sito"`
	Search string `form:"search"`
}

type USFilter struct {
	Sito    string `form:"sito"`
	Area    string `form:"area"`
	Periodo string `form:"periodo"`
	Search  string `form:"search"`
}

// MaterialFilter narrows the materials inventory. A zero NrCassa is no filter.
type MaterialFilter struct {
	Sito               string `form:"sito"`
	Area               string `form:"area"`
	US                 string `form:"us"`
	NrCassa            int64  `form:"nr_cassa"`
	LuogoConservazione string `form:"luogo_conservazione"`
	TipoReperto        string `form:"tipo_reperto"`
	Search             string `form:"search"`
}

type PotteryFilter struct {
	Sito   string `form:"sito"`
	Area   string `form:"area"`
	US     string `form:"us"`
	Form   string `form:"form"`
	Fabric string `form:"fabric"`
	Ware   string `form:"ware"`
	Search string `form:"search"`
}
