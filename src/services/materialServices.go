package services

import (
	"context"
	"math"
	"sort"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/models"
	"gorm.io/gorm"
)

type MaterialService struct {
	db *gorm.DB
}

// NewMaterialService creates a new instance of MaterialService
func NewMaterialService(db *gorm.DB) *MaterialService {
	return &MaterialService{db: db}
}

func (s *MaterialService) filtered(ctx context.Context, f dtos.MaterialFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.MaterialModel{})
	q = eqFilter(q, "sito", f.Sito)
	q = eqFilter(q, "area", f.Area)
	q = eqFilter(q, "us", f.US)
	if f.NrCassa != 0 {
		q = q.Where("nr_cassa = ?", f.NrCassa)
	}
	q = eqFilter(q, "luogo_conservazione", f.LuogoConservazione)
	q = eqFilter(q, "tipo_reperto", f.TipoReperto)
	return searchFilter(q, f.Search, "descrizione", "definizione")
}

func orderedMaterials(q *gorm.DB) *gorm.DB {
	return q.Order("sito").Order("numero_inventario").Order("id_invmat")
}

// GetMaterials retrieves a window of inventory records
func (s *MaterialService) GetMaterials(ctx context.Context, f dtos.MaterialFilter, params dtos.ListParams) ([]models.MaterialModel, error) {
	materials := []models.MaterialModel{}
	if err := orderedMaterials(s.filtered(ctx, f)).Offset(params.Skip).Limit(params.Limit).Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

// GetMaterialsPage retrieves one page of inventory records with the total match count
func (s *MaterialService) GetMaterialsPage(ctx context.Context, f dtos.MaterialFilter, params dtos.PageParams) (dtos.PageDTO[models.MaterialModel], error) {
	var total int64
	if err := s.filtered(ctx, f).Count(&total).Error; err != nil {
		return dtos.PageDTO[models.MaterialModel]{}, err
	}
	var materials []models.MaterialModel
	if err := orderedMaterials(s.filtered(ctx, f)).Offset(params.Offset()).Limit(params.PageSize).Find(&materials).Error; err != nil {
		return dtos.PageDTO[models.MaterialModel]{}, err
	}
	return dtos.NewPage(materials, total, params), nil
}

// GetMaterialByID retrieves an inventory record by its primary key
func (s *MaterialService) GetMaterialByID(ctx context.Context, id int) (*models.MaterialModel, error) {
	var material models.MaterialModel
	if err := s.db.WithContext(ctx).First(&material, "id_invmat = ?", id).Error; err != nil {
		return nil, notFound(err, "material")
	}
	return &material, nil
}

// GetMaterialsForExport retrieves every inventory record matching the filter
func (s *MaterialService) GetMaterialsForExport(ctx context.Context, f dtos.MaterialFilter) ([]models.MaterialModel, error) {
	var materials []models.MaterialModel
	if err := orderedMaterials(s.filtered(ctx, f)).Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

// GetSummary groups the inventory by storage location and box
func (s *MaterialService) GetSummary(ctx context.Context, sito string) (*dtos.MaterialsSummaryDTO, error) {
	var materials []models.MaterialModel
	if err := s.filtered(ctx, dtos.MaterialFilter{Sito: sito}).Find(&materials).Error; err != nil {
		return nil, err
	}
	return SummarizeMaterials(materials), nil
}

// GetBoxes lists the numbered boxes with their contents. Materials with no
// box recorded are left out.
func (s *MaterialService) GetBoxes(ctx context.Context, sito, luogo string) ([]dtos.BoxSummaryDTO, error) {
	var materials []models.MaterialModel
	err := s.filtered(ctx, dtos.MaterialFilter{Sito: sito, LuogoConservazione: luogo}).
		Where("nr_cassa IS NOT NULL AND nr_cassa <> 0").
		Find(&materials).Error
	if err != nil {
		return nil, err
	}

	boxes := []dtos.BoxSummaryDTO{}
	for _, loc := range SummarizeMaterials(materials).StorageLocations {
		boxes = append(boxes, loc.Boxes...)
	}
	sort.SliceStable(boxes, func(i, j int) bool {
		if boxes[i].NrCassa != boxes[j].NrCassa {
			return boxes[i].NrCassa < boxes[j].NrCassa
		}
		return boxes[i].LuogoConservazione < boxes[j].LuogoConservazione
	})
	return boxes, nil
}

// GetStorageLocations lists the distinct storage locations
func (s *MaterialService) GetStorageLocations(ctx context.Context, sito string) ([]string, error) {
	return distinctValues(s.filtered(ctx, dtos.MaterialFilter{Sito: sito}), "luogo_conservazione")
}

// GetTypes lists the distinct find types
func (s *MaterialService) GetTypes(ctx context.Context, sito string) ([]string, error) {
	return distinctValues(s.filtered(ctx, dtos.MaterialFilter{Sito: sito}), "tipo_reperto")
}

// GetStatistics computes totals and per-type and per-storage counts
func (s *MaterialService) GetStatistics(ctx context.Context, sito string) (*dtos.MaterialStatisticsDTO, error) {
	f := dtos.MaterialFilter{Sito: sito}
	stats := &dtos.MaterialStatisticsDTO{}
	if err := s.filtered(ctx, f).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var totalWeight float64
	if err := s.filtered(ctx, f).Select("COALESCE(SUM(peso), 0)").Scan(&totalWeight).Error; err != nil {
		return nil, err
	}
	stats.TotalWeightKg = math.Round(totalWeight/1000*100) / 100

	if err := s.filtered(ctx, f).Select("COALESCE(SUM(totale_frammenti), 0)").Scan(&stats.TotalFragments).Error; err != nil {
		return nil, err
	}

	var err error
	if stats.ByType, err = countBy(s.filtered(ctx, f), "tipo_reperto", "N/A"); err != nil {
		return nil, err
	}
	if stats.ByStorage, err = countBy(s.filtered(ctx, f), "luogo_conservazione", "N/A"); err != nil {
		return nil, err
	}
	return stats, nil
}

// SummarizeMaterials builds the storage location and box breakdown. Missing
// weight and fragment counts add zero; a missing box is reported as box 0 and
// a missing location as "Non specificato". Locations are sorted by name and
// boxes by number.
func SummarizeMaterials(materials []models.MaterialModel) *dtos.MaterialsSummaryDTO {
	type boxAcc struct {
		summary dtos.BoxSummaryDTO
		types   map[string]struct{}
	}
	locations := map[string]map[int64]*boxAcc{}

	summary := &dtos.MaterialsSummaryDTO{
		TotalMaterials:   len(materials),
		StorageLocations: []dtos.StorageSummaryDTO{},
		ByType:           map[string]int{},
		BySite:           map[string]int{},
	}

	for _, m := range materials {
		loc := stringOr(m.LuogoConservazione, unspecified)
		var box int64
		if m.NrCassa != nil {
			box = *m.NrCassa
		}
		if locations[loc] == nil {
			locations[loc] = map[int64]*boxAcc{}
		}
		acc := locations[loc][box]
		if acc == nil {
			acc = &boxAcc{
				summary: dtos.BoxSummaryDTO{NrCassa: box, LuogoConservazione: loc},
				types:   map[string]struct{}{},
			}
			locations[loc][box] = acc
		}

		weight := valueOr(m.Peso)
		fragments := valueOr(m.TotaleFrammenti)
		acc.summary.TotalItems++
		acc.summary.TotalWeight += weight
		acc.summary.TotalFragments += fragments
		if m.TipoReperto != nil && *m.TipoReperto != "" {
			acc.types[*m.TipoReperto] = struct{}{}
		}

		summary.TotalWeight += weight
		summary.TotalFragments += fragments
		summary.ByType[stringOr(m.TipoReperto, unspecified)]++
		summary.BySite[stringOr(m.Sito, unspecified)]++
	}

	for loc, boxes := range locations {
		storage := dtos.StorageSummaryDTO{LuogoConservazione: loc, Boxes: make([]dtos.BoxSummaryDTO, 0, len(boxes))}
		for _, acc := range boxes {
			acc.summary.Types = make([]string, 0, len(acc.types))
			for t := range acc.types {
				acc.summary.Types = append(acc.summary.Types, t)
			}
			sort.Strings(acc.summary.Types)
			// Location totals add the unrounded box weights.
			storage.TotalWeight += acc.summary.TotalWeight
			acc.summary.TotalWeight = round2(acc.summary.TotalWeight)

			storage.Boxes = append(storage.Boxes, acc.summary)
			storage.TotalItems += acc.summary.TotalItems
			storage.TotalFragments += acc.summary.TotalFragments
		}
		sort.Slice(storage.Boxes, func(i, j int) bool { return storage.Boxes[i].NrCassa < storage.Boxes[j].NrCassa })
		storage.TotalBoxes = len(storage.Boxes)
		storage.TotalWeight = round2(storage.TotalWeight)

		summary.TotalBoxes += storage.TotalBoxes
		summary.StorageLocations = append(summary.StorageLocations, storage)
	}
	sort.Slice(summary.StorageLocations, func(i, j int) bool {
		return summary.StorageLocations[i].LuogoConservazione < summary.StorageLocations[j].LuogoConservazione
	})
	summary.TotalWeight = round2(summary.TotalWeight)
	return summary
}

func valueOr[T int | int64 | float64](v *T) T {
	if v == nil {
		return 0
	}
	return *v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
