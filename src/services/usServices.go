package services

import (
	"context"
	"fmt"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type USService struct {
	db            *gorm.DB
	geometryTable string
}

// NewUSService creates a new instance of USService. geometryTable names the
// spatial layer used to flag units that have been drawn; empty disables the flag.
// A layer the database cannot read also disables it.
func NewUSService(db *gorm.DB, geometryTable string) *USService {
	if geometryTable != "" {
		if err := checkGeometryTable(db, geometryTable); err != nil {
			log.Warn().Err(err).Str("table", geometryTable).Msg("geometry layer unavailable, has_geometry disabled")
			geometryTable = ""
		}
	}
	return &USService{db: db, geometryTable: geometryTable}
}

// checkGeometryTable reads zero rows of the columns the has_geometry join uses.
func checkGeometryTable(db *gorm.DB, table string) error {
	return db.Exec(fmt.Sprintf("SELECT scavo_s, area_s, us_s FROM %s WHERE 1 = 0", table)).Error
}

func (s *USService) filtered(ctx context.Context, f dtos.USFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.USModel{})
	q = eqFilter(q, "us_table.sito", f.Sito)
	q = eqFilter(q, "us_table.area", f.Area)
	q = eqFilter(q, "us_table.periodo_iniziale", f.Periodo)
	return searchFilter(q, f.Search, "us_table.descrizione", "us_table.interpretazione", "us_table.d_stratigrafica")
}

// ordered selects the unit columns plus has_geometry, in (sito, area, us) order.
func (s *USService) ordered(q *gorm.DB) *gorm.DB {
	if s.geometryTable != "" {
		q = q.Select(fmt.Sprintf(
			"us_table.*, EXISTS (SELECT 1 FROM %s g WHERE g.scavo_s = us_table.sito"+
				" AND CAST(g.area_s AS TEXT) = us_table.area AND CAST(g.us_s AS TEXT) = us_table.us) AS has_geometry",
			s.geometryTable))
	}
	return q.Order("us_table.sito").Order("us_table.area").Order("us_table.us")
}

// GetUSList retrieves a window of stratigraphic units
func (s *USService) GetUSList(ctx context.Context, f dtos.USFilter, params dtos.ListParams) ([]models.USModel, error) {
	units := []models.USModel{}
	err := s.ordered(s.filtered(ctx, f)).Offset(params.Skip).Limit(params.Limit).Find(&units).Error
	if err != nil {
		return nil, err
	}
	return units, nil
}

// GetUSPage retrieves one page of stratigraphic units with the total match count
func (s *USService) GetUSPage(ctx context.Context, f dtos.USFilter, params dtos.PageParams) (dtos.PageDTO[models.USModel], error) {
	var total int64
	if err := s.filtered(ctx, f).Count(&total).Error; err != nil {
		return dtos.PageDTO[models.USModel]{}, err
	}
	var units []models.USModel
	err := s.ordered(s.filtered(ctx, f)).Offset(params.Offset()).Limit(params.PageSize).Find(&units).Error
	if err != nil {
		return dtos.PageDTO[models.USModel]{}, err
	}
	return dtos.NewPage(units, total, params), nil
}

// GetAreas lists the distinct excavation areas, optionally within one site
func (s *USService) GetAreas(ctx context.Context, sito string) ([]string, error) {
	return distinctValues(s.filtered(ctx, dtos.USFilter{Sito: sito}), "area")
}

// GetPeriods lists the distinct initial periods, optionally within one site
func (s *USService) GetPeriods(ctx context.Context, sito string) ([]string, error) {
	return distinctValues(s.filtered(ctx, dtos.USFilter{Sito: sito}), "periodo_iniziale")
}

// GetStatistics counts units overall and by area, period and stratigraphic type
func (s *USService) GetStatistics(ctx context.Context, sito string) (*dtos.USStatisticsDTO, error) {
	f := dtos.USFilter{Sito: sito}
	stats := &dtos.USStatisticsDTO{}
	if err := s.filtered(ctx, f).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	var err error
	if stats.ByArea, err = countBy(s.filtered(ctx, f), "area", "N/A"); err != nil {
		return nil, err
	}
	if stats.ByPeriod, err = countBy(s.filtered(ctx, f), "periodo_iniziale", "N/A"); err != nil {
		return nil, err
	}
	if stats.ByType, err = countBy(s.filtered(ctx, f), "d_stratigrafica", "N/A"); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetUSByID retrieves a unit by its primary key
func (s *USService) GetUSByID(ctx context.Context, id int) (*models.USModel, error) {
	var unit models.USModel
	err := s.ordered(s.db.WithContext(ctx).Model(&models.USModel{})).
		Where("us_table.id_us = ?", id).
		Take(&unit).Error
	if err != nil {
		return nil, notFound(err, "US")
	}
	return &unit, nil
}

// GetUSByNumber retrieves a unit by its field identifier
func (s *USService) GetUSByNumber(ctx context.Context, sito, area, us string) (*models.USModel, error) {
	var unit models.USModel
	err := s.ordered(s.db.WithContext(ctx).Model(&models.USModel{})).
		Where("us_table.sito = ? AND us_table.area = ? AND us_table.us = ?", sito, area, us).
		Take(&unit).Error
	if err != nil {
		return nil, notFound(err, "US")
	}
	return &unit, nil
}

// GetUSForExport retrieves every unit matching the filter
func (s *USService) GetUSForExport(ctx context.Context, f dtos.USFilter) ([]models.USModel, error) {
	var units []models.USModel
	if err := s.ordered(s.filtered(ctx, f)).Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}
