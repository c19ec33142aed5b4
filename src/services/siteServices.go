package services

import (
	"context"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/models"
	"gorm.io/gorm"
)

type SiteService struct {
	db *gorm.DB
}

// NewSiteService creates a new instance of SiteService
func NewSiteService(db *gorm.DB) *SiteService {
	return &SiteService{db: db}
}

func (s *SiteService) filtered(ctx context.Context, f dtos.SiteFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.SiteModel{})
	q = eqFilter(q, "sito", f.Sito)
	return searchFilter(q, f.Search, "sito")
}

// GetSites retrieves a window of sites ordered by name
func (s *SiteService) GetSites(ctx context.Context, f dtos.SiteFilter, params dtos.ListParams) ([]models.SiteModel, error) {
	sites := []models.SiteModel{}
	err := s.filtered(ctx, f).Order("sito").Order("id_sito").
		Offset(params.Skip).Limit(params.Limit).
		Find(&sites).Error
	if err != nil {
		return nil, err
	}
	return sites, nil
}

// GetSitesPage retrieves one page of sites with the total match count
func (s *SiteService) GetSitesPage(ctx context.Context, f dtos.SiteFilter, params dtos.PageParams) (dtos.PageDTO[models.SiteModel], error) {
	var total int64
	if err := s.filtered(ctx, f).Count(&total).Error; err != nil {
		return dtos.PageDTO[models.SiteModel]{}, err
	}
	var sites []models.SiteModel
	err := s.filtered(ctx, f).Order("sito").Order("id_sito").
		Offset(params.Offset()).Limit(params.PageSize).
		Find(&sites).Error
	if err != nil {
		return dtos.PageDTO[models.SiteModel]{}, err
	}
	return dtos.NewPage(sites, total, params), nil
}

// GetSiteNames lists the distinct site names
func (s *SiteService) GetSiteNames(ctx context.Context) ([]string, error) {
	return distinctValues(s.db.WithContext(ctx).Model(&models.SiteModel{}), "sito")
}

// GetSiteByID retrieves a site by its primary key
func (s *SiteService) GetSiteByID(ctx context.Context, id int) (*models.SiteModel, error) {
	var site models.SiteModel
	if err := s.db.WithContext(ctx).First(&site, "id_sito = ?", id).Error; err != nil {
		return nil, notFound(err, "site")
	}
	return &site, nil
}

// GetSiteByName retrieves a site by its exact name
func (s *SiteService) GetSiteByName(ctx context.Context, name string) (*models.SiteModel, error) {
	var site models.SiteModel
	if err := s.db.WithContext(ctx).Where("sito = ?", name).Order("id_sito").First(&site).Error; err != nil {
		return nil, notFound(err, "site")
	}
	return &site, nil
}

// GetSitesForExport retrieves every site matching the filter
func (s *SiteService) GetSitesForExport(ctx context.Context, f dtos.SiteFilter) ([]models.SiteModel, error) {
	var sites []models.SiteModel
	if err := s.filtered(ctx, f).Order("sito").Order("id_sito").Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}
