package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/leadlab/inventory-service/internal/cache"
	"github.com/leadlab/inventory-service/internal/identity"
	"github.com/leadlab/inventory-service/internal/inventories"
	"github.com/leadlab/inventory-service/internal/validator"
)

type exportFixture struct {
	repo    *fakeRepository
	service ExportService
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()

	registry, err := inventories.NewRegistry()
	require.NoError(t, err)

	repo := newFakeRepository()
	repo.addOrganization(1, "Goodnight Scholars")
	repo.addSession(1, 1, "Fall 2026")
	repo.addUser("staff", 1, 1, true)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	statistics := NewStatisticsService(repo, registry, identity.NewLocalDirectory(repo.User()), cache.NewNoopCache(), logger)
	service := NewExportService(repo, registry, statistics, logger, validator.New())

	return &exportFixture{repo: repo, service: service}
}

func (f *exportFixture) seedUserWithMetrics(id string, coreSelfScore float64) {
	f.repo.addUser(id, 1, 1, false)
	f.repo.addCompletedSubmission(id, inventories.CoreSelfID, map[string]float64{
		"score": coreSelfScore,
	})
	f.repo.addCompletedSubmission(id, inventories.CareerCommitmentID, map[string]float64{
		"identity": 3.5,
		"planning": 2.75,
	})
}

func TestExportHeaderLayout(t *testing.T) {
	header := exportHeader()

	require.Equal(t, 24, len(header))
	assert.Equal(t, []string{"User ID", "Organization", "Session"}, header[:3])
	assert.Equal(t, "BigFive - extraversion", header[3])
	assert.Equal(t, "BigFive - openness", header[7])
	assert.Equal(t, "CoreSelf - score", header[8])
	assert.Equal(t, "CareerCommitment - identity", header[9])
	assert.Equal(t, "CareerCommitment - planning", header[10])
	assert.Equal(t, "Ambiguity - score", header[11])
	assert.Equal(t, "FiroB - expressed_inclusion", header[12])
	assert.Equal(t, "FiroB - social_interaction_index", header[23])
}

func TestExportJSON(t *testing.T) {
	f := newExportFixture(t)
	f.seedUserWithMetrics("alice", 3.25)

	result, err := f.service.Export(context.Background(), &ExportRequest{Format: ExportFormatJSON}, "staff")
	require.NoError(t, err)
	assert.Equal(t, "application/json", result.ContentType)
	assert.Equal(t, "inventory-data.json", result.Filename)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(result.Data, &records))

	// staff has no submissions but is still a scoped user row
	require.Len(t, records, 2)

	var alice map[string]interface{}
	for _, record := range records {
		if record["User ID"] == "alice" {
			alice = record
		}
	}
	require.NotNil(t, alice)

	assert.Equal(t, "Goodnight Scholars", alice["Organization"])
	assert.Equal(t, "Fall 2026", alice["Session"])
	assert.Equal(t, 3.25, alice["CoreSelf - score"])
	assert.Equal(t, 3.5, alice["CareerCommitment - identity"])
	assert.Equal(t, 2.75, alice["CareerCommitment - planning"])

	// Inventories never completed stay blank.
	assert.Equal(t, "", alice["BigFive - extraversion"])
	assert.Equal(t, "", alice["FiroB - social_interaction_index"])
}

func TestExportXLSX(t *testing.T) {
	f := newExportFixture(t)
	f.seedUserWithMetrics("alice", 3.25)

	result, err := f.service.Export(context.Background(), &ExportRequest{Format: ExportFormatXLSX}, "staff")
	require.NoError(t, err)
	assert.Equal(t, "inventory-data.xlsx", result.Filename)

	workbook, err := excelize.OpenReader(bytes.NewReader(result.Data))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per user")

	assert.Equal(t, "User ID", rows[0][0])
	assert.Equal(t, "CoreSelf - score", rows[0][8])

	// Rows are ordered by user ID.
	assert.Equal(t, "alice", rows[1][0])
	assert.Equal(t, "3.25", rows[1][8])
	assert.Equal(t, "staff", rows[2][0])
}

func TestExportSuppressionForMembers(t *testing.T) {
	f := newExportFixture(t)
	for i := 0; i < MinimumSubmissions; i++ {
		f.repo.addUser(fmt.Sprintf("u-%02d", i), 1, 1, false)
		f.repo.addCompletedSubmission(fmt.Sprintf("u-%02d", i), inventories.CoreSelfID, map[string]float64{
			"score": float64(i),
		})
	}
	// Career commitment stays below the floor.
	f.repo.addCompletedSubmission("u-00", inventories.CareerCommitmentID, map[string]float64{
		"identity": 4, "planning": 4,
	})

	result, err := f.service.Export(context.Background(), &ExportRequest{Format: ExportFormatJSON}, "u-00")
	require.NoError(t, err)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(result.Data, &records))

	var row map[string]interface{}
	for _, record := range records {
		if record["User ID"] == "u-00" {
			row = record
		}
	}
	require.NotNil(t, row)

	assert.Equal(t, 0.0, row["CoreSelf - score"])
	assert.Equal(t, "", row["CareerCommitment - identity"], "suppressed inventory exports blank")
}

func TestExportRejectsBadFormat(t *testing.T) {
	f := newExportFixture(t)

	_, err := f.service.Export(context.Background(), &ExportRequest{Format: "csv"}, "staff")

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
}
