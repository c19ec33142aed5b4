package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/models"
	excelize "github.com/xuri/excelize/v2"
)

// Format selects the export file type.
type Format string

const (
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"

	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF   = "application/pdf"
)

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

var usColumns = []column[models.USModel]{
	{"Sito", func(u models.USModel) any { return str(u.Sito) }},
	{"Area", func(u models.USModel) any { return str(u.Area) }},
	{"US", func(u models.USModel) any { return str(u.US) }},
	{"Def. Stratigrafica", func(u models.USModel) any { return str(u.DStratigrafica) }},
	{"Def. Interpretativa", func(u models.USModel) any { return str(u.DInterpretativa) }},
	{"Periodo", func(u models.USModel) any { return str(u.PeriodoIniziale) }},
	{"Fase", func(u models.USModel) any { return str(u.FaseIniziale) }},
	{"Datazione", func(u models.USModel) any { return str(u.Datazione) }},
	{"Descrizione", func(u models.USModel) any { return str(u.Descrizione) }},
	{"Interpretazione", func(u models.USModel) any { return str(u.Interpretazione) }},
}

var materialColumns = []column[models.MaterialModel]{
	{"Sito", func(m models.MaterialModel) any { return str(m.Sito) }},
	{"N. Inventario", func(m models.MaterialModel) any { return num(m.NumeroInventario) }},
	{"Tipo", func(m models.MaterialModel) any { return str(m.TipoReperto) }},
	{"Definizione", func(m models.MaterialModel) any { return str(m.Definizione) }},
	{"Area", func(m models.MaterialModel) any { return str(m.Area) }},
	{"US", func(m models.MaterialModel) any { return str(m.US) }},
	{"N. Cassa", func(m models.MaterialModel) any { return num(m.NrCassa) }},
	{"Luogo Conserv.", func(m models.MaterialModel) any { return str(m.LuogoConservazione) }},
	{"Stato Conserv.", func(m models.MaterialModel) any { return str(m.StatoConservazione) }},
	{"Datazione", func(m models.MaterialModel) any { return str(m.DatazioneReperto) }},
	{"Tot. Framm.", func(m models.MaterialModel) any { return num(m.TotaleFrammenti) }},
	{"Peso (g)", func(m models.MaterialModel) any { return num(m.Peso) }},
}

var potteryColumns = []column[models.PotteryModel]{
	{"Sito", func(p models.PotteryModel) any { return str(p.Sito) }},
	{"ID", func(p models.PotteryModel) any { return num(p.IdNumber) }},
	{"Area", func(p models.PotteryModel) any { return str(p.Area) }},
	{"US", func(p models.PotteryModel) any { return str(p.US) }},
	{"Forma", func(p models.PotteryModel) any { return str(p.Form) }},
	{"Forma Specifica", func(p models.PotteryModel) any { return str(p.SpecificForm) }},
	{"Impasto", func(p models.PotteryModel) any { return str(p.Fabric) }},
	{"Classe", func(p models.PotteryModel) any { return str(p.Ware) }},
	{"Cassa", func(p models.PotteryModel) any { return num(p.Box) }},
	{"Q.tà", func(p models.PotteryModel) any { return num(p.Qty) }},
	{"Note", func(p models.PotteryModel) any { return str(p.Note) }},
}

var siteColumns = []column[models.SiteModel]{
	{"Sito", func(s models.SiteModel) any { return str(s.Sito) }},
	{"Nazione", func(s models.SiteModel) any { return str(s.Nazione) }},
	{"Regione", func(s models.SiteModel) any { return str(s.Regione) }},
	{"Provincia", func(s models.SiteModel) any { return str(s.Provincia) }},
	{"Comune", func(s models.SiteModel) any { return str(s.Comune) }},
	{"Definizione", func(s models.SiteModel) any { return str(s.DefinizioneSito) }},
	{"Descrizione", func(s models.SiteModel) any { return str(s.Descrizione) }},
}

// PDF pages are narrower than spreadsheets; only the leading columns are printed.
const (
	usPDFColumns       = 8
	materialPDFColumns = 10
	potteryPDFColumns  = 10
)

type ExportService struct {
	sites     *SiteService
	us        *USService
	materials *MaterialService
	pottery   *PotteryService
	now       func() time.Time
}

// NewExportService creates a new instance of ExportService
func NewExportService(sites *SiteService, us *USService, materials *MaterialService, pottery *PotteryService) *ExportService {
	return &ExportService{sites: sites, us: us, materials: materials, pottery: pottery, now: time.Now}
}

func (s *ExportService) filename(prefix, sito string, format Format) string {
	if sito == "" {
		sito = "all"
	}
	ext := "xlsx"
	if format == FormatPDF {
		ext = "pdf"
	}
	return fmt.Sprintf("%s_%s_%s.%s", prefix, sanitizeFilename(sito), s.now().Format("20060102"), ext)
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}

func siteLabel(sito string) string {
	if sito == "" {
		return "Tutti i siti"
	}
	return sito
}

func render[T any](s *ExportService, records []T, cols []column[T], pdfCols int, format Format, prefix, pdfTitle, sito string) (*ExportFile, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	filename := s.filename(prefix, sito, format)

	switch format {
	case FormatExcel:
		data, err := writeExcel(strings.TrimSuffix(filename, ".xlsx"), labels(cols), tabulate(records, cols))
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", filename, err)
		}
		return &ExportFile{Filename: filename, ContentType: ContentTypeExcel, Data: data}, nil
	case FormatPDF:
		if pdfCols > 0 && pdfCols < len(cols) {
			cols = cols[:pdfCols]
		}
		data, err := writePDF(pdfTitle+" - "+siteLabel(sito), s.now(), labels(cols), tabulate(records, cols))
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", filename, err)
		}
		return &ExportFile{Filename: filename, ContentType: ContentTypePDF, Data: data}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// ExportUS renders the stratigraphic units matching the filter
func (s *ExportService) ExportUS(ctx context.Context, f dtos.USFilter, format Format) (*ExportFile, error) {
	records, err := s.us.GetUSForExport(ctx, f)
	if err != nil {
		return nil, err
	}
	return render(s, records, usColumns, usPDFColumns, format, "US", "Unità Stratigrafiche", f.Sito)
}

// ExportMaterials renders the inventory records matching the filter
func (s *ExportService) ExportMaterials(ctx context.Context, f dtos.MaterialFilter, format Format) (*ExportFile, error) {
	records, err := s.materials.GetMaterialsForExport(ctx, f)
	if err != nil {
		return nil, err
	}
	return render(s, records, materialColumns, materialPDFColumns, format, "Materiali", "Inventario Materiali", f.Sito)
}

// ExportPottery renders the pottery records matching the filter
func (s *ExportService) ExportPottery(ctx context.Context, f dtos.PotteryFilter, format Format) (*ExportFile, error) {
	records, err := s.pottery.GetPotteryForExport(ctx, f)
	if err != nil {
		return nil, err
	}
	return render(s, records, potteryColumns, potteryPDFColumns, format, "Ceramica", "Ceramica", f.Sito)
}

// ExportSites renders the sites matching the filter
func (s *ExportService) ExportSites(ctx context.Context, f dtos.SiteFilter, format Format) (*ExportFile, error) {
	records, err := s.sites.GetSitesForExport(ctx, f)
	if err != nil {
		return nil, err
	}
	return render(s, records, siteColumns, 0, format, "Siti", "Siti Archeologici", f.Sito)
}

// ExportMaterialsSummary renders the storage and box breakdown as a workbook
func (s *ExportService) ExportMaterialsSummary(ctx context.Context, sito string) (*ExportFile, error) {
	summary, err := s.materials.GetSummary(ctx, sito)
	if err != nil {
		return nil, err
	}
	if summary.TotalMaterials == 0 {
		return nil, ErrNoData
	}
	filename := s.filename("Riepilogo_Magazzino", sito, FormatExcel)
	data, err := writeSummaryExcel(summary, sito)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", filename, err)
	}
	return &ExportFile{Filename: filename, ContentType: ContentTypeExcel, Data: data}, nil
}

func writeSummaryExcel(summary *dtos.MaterialsSummaryDTO, sito string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Riepilogo Magazzino"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	headerStyle, _, err := excelStyles(f)
	if err != nil {
		return nil, err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	storageStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9E2F3"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	set := func(col, row int, v any) error {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		return f.SetCellValue(sheet, cell, v)
	}

	row := 1
	if err := set(1, row, "Riepilogo Magazzino Materiali - "+siteLabel(sito)); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}
	row += 2

	headers := []string{"N. Cassa", "Tot. Reperti", "Tipi", "Peso Tot. (g)", "Tot. Frammenti"}
	for _, loc := range summary.StorageLocations {
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(len(headers), row)
		if err := set(1, row, "Luogo: "+loc.LuogoConservazione); err != nil {
			return nil, err
		}
		if err := f.MergeCell(sheet, start, end); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, start, end, storageStyle); err != nil {
			return nil, err
		}
		row++

		for i, h := range headers {
			if err := set(i+1, row, h); err != nil {
				return nil, err
			}
		}
		start, _ = excelize.CoordinatesToCellName(1, row)
		end, _ = excelize.CoordinatesToCellName(len(headers), row)
		if err := f.SetCellStyle(sheet, start, end, headerStyle); err != nil {
			return nil, err
		}
		row++

		for _, box := range loc.Boxes {
			values := []any{box.NrCassa, box.TotalItems, strings.Join(box.Types, ", "), box.TotalWeight, box.TotalFragments}
			for i, v := range values {
				if err := set(i+1, row, v); err != nil {
					return nil, err
				}
			}
			row++
		}
		row++
	}

	if err := f.SetColWidth(sheet, "A", "E", 20); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
