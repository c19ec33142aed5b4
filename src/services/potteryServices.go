package services

import (
	"context"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/models"
	"gorm.io/gorm"
)

type PotteryService struct {
	db *gorm.DB
}

// NewPotteryService creates a new instance of PotteryService
func NewPotteryService(db *gorm.DB) *PotteryService {
	return &PotteryService{db: db}
}

func (s *PotteryService) filtered(ctx context.Context, f dtos.PotteryFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.PotteryModel{})
	q = eqFilter(q, "sito", f.Sito)
	q = eqFilter(q, "area", f.Area)
	q = eqFilter(q, "us", f.US)
	q = eqFilter(q, "form", f.Form)
	q = eqFilter(q, "fabric", f.Fabric)
	q = eqFilter(q, "ware", f.Ware)
	return searchFilter(q, f.Search, "note", "specific_form", "descrip_ex_deco")
}

func orderedPottery(q *gorm.DB) *gorm.DB {
	return q.Order("sito").Order("id_number").Order("id_rep")
}

// GetPottery retrieves a window of pottery records
func (s *PotteryService) GetPottery(ctx context.Context, f dtos.PotteryFilter, params dtos.ListParams) ([]models.PotteryModel, error) {
	pottery := []models.PotteryModel{}
	if err := orderedPottery(s.filtered(ctx, f)).Offset(params.Skip).Limit(params.Limit).Find(&pottery).Error; err != nil {
		return nil, err
	}
	return pottery, nil
}

// GetPotteryPage retrieves one page of pottery records with the total match count
func (s *PotteryService) GetPotteryPage(ctx context.Context, f dtos.PotteryFilter, params dtos.PageParams) (dtos.PageDTO[models.PotteryModel], error) {
	var total int64
	if err := s.filtered(ctx, f).Count(&total).Error; err != nil {
		return dtos.PageDTO[models.PotteryModel]{}, err
	}
	var pottery []models.PotteryModel
	if err := orderedPottery(s.filtered(ctx, f)).Offset(params.Offset()).Limit(params.PageSize).Find(&pottery).Error; err != nil {
		return dtos.PageDTO[models.PotteryModel]{}, err
	}
	return dtos.NewPage(pottery, total, params), nil
}

func (s *PotteryService) GetForms(ctx context.Context, sito string) ([]string, error) {
	return distinctValues(s.filtered(ctx, dtos.PotteryFilter{Sito: sito}), "form")
}

func (s *PotteryService) GetFabrics(ctx context.Context, sito string) ([]string, error) {
	return distinctValues(s.filtered(ctx, dtos.PotteryFilter{Sito: sito}), "fabric")
}

func (s *PotteryService) GetWares(ctx context.Context, sito string) ([]string, error) {
	return distinctValues(s.filtered(ctx, dtos.PotteryFilter{Sito: sito}), "ware")
}

// GetStatistics counts records and sherds, overall and by form, fabric and ware
func (s *PotteryService) GetStatistics(ctx context.Context, sito string) (*dtos.PotteryStatisticsDTO, error) {
	f := dtos.PotteryFilter{Sito: sito}
	stats := &dtos.PotteryStatisticsDTO{}
	if err := s.filtered(ctx, f).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := s.filtered(ctx, f).Select("COALESCE(SUM(qty), 0)").Scan(&stats.TotalQty).Error; err != nil {
		return nil, err
	}
	var err error
	if stats.ByForm, err = countBy(s.filtered(ctx, f), "form", "N/A"); err != nil {
		return nil, err
	}
	if stats.ByFabric, err = countBy(s.filtered(ctx, f), "fabric", "N/A"); err != nil {
		return nil, err
	}
	if stats.ByWare, err = countBy(s.filtered(ctx, f), "ware", "N/A"); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetPotteryByID retrieves a pottery record by its primary key
func (s *PotteryService) GetPotteryByID(ctx context.Context, id int) (*models.PotteryModel, error) {
	var pottery models.PotteryModel
	if err := s.db.WithContext(ctx).First(&pottery, "id_rep = ?", id).Error; err != nil {
		return nil, notFound(err, "pottery")
	}
	return &pottery, nil
}

// GetPotteryForExport retrieves every pottery record matching the filter
func (s *PotteryService) GetPotteryForExport(ctx context.Context, f dtos.PotteryFilter) ([]models.PotteryModel, error) {
	var pottery []models.PotteryModel
	if err := orderedPottery(s.filtered(ctx, f)).Find(&pottery).Error; err != nil {
		return nil, err
	}
	return pottery, nil
}
