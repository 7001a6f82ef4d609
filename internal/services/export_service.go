package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/leadlab/inventory-service/internal/inventories"
	"github.com/leadlab/inventory-service/internal/models"
	"github.com/leadlab/inventory-service/internal/repositories"
	"github.com/leadlab/inventory-service/internal/validator"
)

// inventoryKeys is the frozen export column layout: inventories in
// registry order, metric keys in their declared order. Column layout
// is part of the download contract, so changes here break consumers.
// VIA is excluded; its per-strength sums are not exported.
var inventoryKeys = []struct {
	ID   int
	Code string
	Keys []string
}{
	{inventories.BigFiveID, "BigFive", []string{
		"extraversion", "agreeableness", "conscientiousness", "emotional_stability", "openness",
	}},
	{inventories.CoreSelfID, "CoreSelf", []string{"score"}},
	{inventories.CareerCommitmentID, "CareerCommitment", []string{"identity", "planning"}},
	{inventories.AmbiguityID, "Ambiguity", []string{"score"}},
	{inventories.FiroBID, "FiroB", []string{
		"expressed_inclusion", "expressed_control", "expressed_affection",
		"wanted_inclusion", "wanted_control", "wanted_affection",
		"total_expressed", "total_wanted",
		"total_inclusion", "total_control", "total_affection",
		"social_interaction_index",
	}},
}

const (
	ExportFormatXLSX = "xlsx"
	ExportFormatJSON = "json"
)

// ExportService flattens per-user metrics into tabular downloads.
type ExportService interface {
	Export(ctx context.Context, req *ExportRequest, userID string) (*ExportResult, error)
}

type ExportRequest struct {
	OrganizationID *uint  `json:"organization_id" form:"organization_id"`
	SessionID      *uint  `json:"session_id" form:"session_id"`
	Format         string `json:"format" form:"format" validate:"omitempty,export_format"`
}

type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

type exportService struct {
	repo       repositories.Repository
	registry   *inventories.Registry
	statistics StatisticsService
	logger     *slog.Logger
	validator  *validator.Validator
}

func NewExportService(
	repo repositories.Repository,
	registry *inventories.Registry,
	statistics StatisticsService,
	logger *slog.Logger,
	v *validator.Validator,
) ExportService {
	return &exportService{
		repo:       repo,
		registry:   registry,
		statistics: statistics,
		logger:     logger,
		validator:  v,
	}
}

func (s *exportService) Export(ctx context.Context, req *ExportRequest, userID string) (*ExportResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	scope, err := s.statistics.ResolveScope(ctx, userID, req.OrganizationID, req.SessionID)
	if err != nil {
		return nil, err
	}
	sessionIDs, staff := scope.SessionIDs, scope.Staff
	if len(sessionIDs) == 0 {
		return nil, ErrNoData
	}

	// Non-staff downloads honor the same sample-size floor as the
	// statistics view: suppressed inventories export as blank cells.
	suppressed := make(map[int]bool)
	if !staff {
		for _, entry := range inventoryKeys {
			count, err := s.repo.Submission().CountCompleted(ctx, entry.ID, sessionIDs)
			if err != nil {
				return nil, fmt.Errorf("failed to count submissions: %w", err)
			}
			if count < MinimumSubmissions {
				suppressed[entry.ID] = true
			}
		}
	}

	users, err := s.repo.User().ListBySessions(ctx, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoData
	}

	header := exportHeader()
	rows := make([][]interface{}, 0, len(users))
	for _, user := range users {
		rows = append(rows, exportRow(user, suppressed))
	}

	s.logger.Info("Exporting statistics",
		"user_id", userID,
		"format", req.Format,
		"rows", len(rows))

	switch req.Format {
	case ExportFormatJSON:
		data, err := encodeJSON(header, rows)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    "inventory-data.json",
			ContentType: "application/json",
			Data:        data,
		}, nil
	default:
		data, err := encodeXLSX(header, rows)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    "inventory-data.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	}
}

func exportHeader() []string {
	header := []string{"User ID", "Organization", "Session"}
	for _, entry := range inventoryKeys {
		for _, key := range entry.Keys {
			header = append(header, fmt.Sprintf("%s - %s", entry.Code, key))
		}
	}
	return header
}

// exportRow flattens one user into the fixed column layout. Cells for
// incomplete or suppressed inventories stay empty.
func exportRow(user *models.User, suppressed map[int]bool) []interface{} {
	byInventory := make(map[int]map[string]float64)
	for _, submission := range user.Submissions {
		if !submission.IsComplete() {
			continue
		}
		metrics := make(map[string]float64, len(submission.Metrics))
		for _, metric := range submission.Metrics {
			metrics[metric.Key] = metric.Value
		}
		byInventory[submission.InventoryID] = metrics
	}

	row := []interface{}{user.ID, user.Organization.Name, user.Session.Name}
	for _, entry := range inventoryKeys {
		metrics := byInventory[entry.ID]
		for _, key := range entry.Keys {
			if suppressed[entry.ID] || metrics == nil {
				row = append(row, "")
				continue
			}
			if value, ok := metrics[key]; ok {
				row = append(row, value)
			} else {
				row = append(row, "")
			}
		}
	}
	return row
}

func encodeJSON(header []string, rows [][]interface{}) ([]byte, error) {
	records := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]interface{}, len(header))
		for i, column := range header {
			record[column] = row[i]
		}
		records = append(records, record)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON export: %w", err)
	}
	return data, nil
}

func encodeXLSX(header []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Data"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, column := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, column)
	}

	for rowIndex, row := range rows {
		for colIndex, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address data cell: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
