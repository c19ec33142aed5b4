package dtos

// BoxSummaryDTO aggregates the materials stored in one box. A box number of
// 0 collects materials with no box recorded.
type BoxSummaryDTO struct {
	NrCassa            int64    `json:"nr_cassa"`
	LuogoConservazione string   `json:"luogo_conservazione"`
	TotalItems         int      `json:"total_items"`
	Types              []string `json:"types"`
	TotalWeight        float64  `json:"total_weight"`
	TotalFragments     int      `json:"total_fragments"`
}

type StorageSummaryDTO struct {
	LuogoConservazione string          `json:"luogo_conservazione"`
	TotalBoxes         int             `json:"total_boxes"`
	TotalItems         int             `json:"total_items"`
	TotalWeight        float64         `json:"total_weight"`
	TotalFragments     int             `json:"total_fragments"`
	Boxes              []BoxSummaryDTO `json:"boxes"`
}

type MaterialsSummaryDTO struct {
	TotalMaterials   int                 `json:"total_materials"`
	TotalBoxes       int                 `json:"total_boxes"`
	TotalWeight      float64             `json:"total_weight"`
	TotalFragments   int                 `json:"total_fragments"`
	StorageLocations []StorageSummaryDTO `json:"storage_locations"`
	ByType           map[string]int      `json:"by_type"`
	BySite           map[string]int      `json:"by_site"`
}

type USStatisticsDTO struct {
	Total    int64            `json:"total"`
	ByArea   map[string]int64 `json:"by_area"`
	ByPeriod map[string]int64 `json:"by_period"`
	ByType   map[string]int64 `json:"by_type"`
}

type MaterialStatisticsDTO struct {
	Total          int64            `json:"total"`
	TotalWeightKg  float64          `json:"total_weight_kg"`
	TotalFragments int64            `json:"total_fragments"`
	ByType         map[string]int64 `json:"by_type"`
	ByStorage      map[string]int64 `json:"by_storage"`
}

type PotteryStatisticsDTO struct {
	Total    int64            `json:"total"`
	TotalQty int64            `json:"total_qty"`
	ByForm   map[string]int64 `json:"by_form"`
	ByFabric map[string]int64 `json:"by_fabric"`
	ByWare   map[string]int64 `json:"by_ware"`
}

type MediaStatisticsDTO struct {
	TotalMedia   int64            `json:"total_media"`
	ByType       map[string]int64 `json:"by_type"`
	ByEntityType map[string]int64 `json:"by_entity_type"`
}
