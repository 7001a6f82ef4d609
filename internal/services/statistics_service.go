package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/leadlab/inventory-service/internal/cache"
	"github.com/leadlab/inventory-service/internal/identity"
	"github.com/leadlab/inventory-service/internal/inventories"
	"github.com/leadlab/inventory-service/internal/models"
	"github.com/leadlab/inventory-service/internal/repositories"
)

// MinimumSubmissions is the sample-size floor for non-staff viewers:
// an inventory with fewer completed submissions in scope is withheld
// so small groups cannot be de-anonymized.
const MinimumSubmissions = 10

const statisticsCacheTTL = 15 * time.Minute

// StatisticsService aggregates completed submission metrics across
// organizational sessions.
type StatisticsService interface {
	// ResolveScope validates the requested organization/session
	// selection against the requester's visibility and returns the
	// resolved scope.
	ResolveScope(ctx context.Context, userID string, organizationID, sessionID *uint) (*StatisticsScope, error)

	// Generate produces the per-inventory statistics for the scope.
	Generate(ctx context.Context, req *StatisticsRequest, userID string) ([]*InventoryStatistics, error)
}

// StatisticsScope is the resolved visibility of a statistics request.
// For non-staff requesters OrganizationID is always their own
// organization, regardless of what the request carried; it is nil only
// for staff viewing all organizations. Cache keys and data loads must
// derive from this, never from the raw request.
type StatisticsScope struct {
	OrganizationID *uint
	SessionID      *uint
	SessionIDs     []uint
	Staff          bool
}

type StatisticsRequest struct {
	OrganizationID *uint `json:"organization_id" form:"organization_id"`
	SessionID      *uint `json:"session_id" form:"session_id"`
}

// MetricPoint is one anonymized metric value. For VIA entries Value is
// the number of users carrying the strength as a signature strength
// and Name is the virtue category.
type MetricPoint struct {
	Name  string  `json:"name"`
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// MetricAnalysis is the descriptive statistics row staff viewers get
// per metric key.
type MetricAnalysis struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Stdev float64 `json:"stdev"`
}

type InventoryStatistics struct {
	Inventory string           `json:"inventory"`
	Data      []MetricPoint    `json:"data"`
	Analysis  []MetricAnalysis `json:"analysis,omitempty"`
}

type statisticsService struct {
	repo      repositories.Repository
	registry  *inventories.Registry
	directory identity.Directory
	cache     cache.CacheService
	logger    *slog.Logger
}

func NewStatisticsService(
	repo repositories.Repository,
	registry *inventories.Registry,
	directory identity.Directory,
	cacheService cache.CacheService,
	logger *slog.Logger,
) StatisticsService {
	return &statisticsService{
		repo:      repo,
		registry:  registry,
		directory: directory,
		cache:     cacheService,
		logger:    logger,
	}
}

// inventoryCode returns the stable short name used for statistics
// grouping and export column prefixes. The set is closed; extending
// the registry requires extending this switch.
func inventoryCode(id int) string {
	switch id {
	case inventories.BigFiveID:
		return "BigFive"
	case inventories.CoreSelfID:
		return "CoreSelf"
	case inventories.CareerCommitmentID:
		return "CareerCommitment"
	case inventories.AmbiguityID:
		return "Ambiguity"
	case inventories.FiroBID:
		return "FiroB"
	case inventories.ViaID:
		return "Via"
	}
	return fmt.Sprintf("Inventory-%d", id)
}

func (s *statisticsService) ResolveScope(ctx context.Context, userID string, organizationID, sessionID *uint) (*StatisticsScope, error) {
	staff, err := s.directory.IsStaff(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve staff status: %w", err)
	}

	// Non-staff visibility is pinned to the requester's organization.
	var ownOrg uint
	if !staff {
		ownOrg, err = s.directory.OrganizationOf(ctx, userID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to resolve organization: %w", err)
		}
		if organizationID == nil {
			organizationID = &ownOrg
		} else if *organizationID != ownOrg {
			return nil, ErrInvalidOrganization
		}
	}

	scope := &StatisticsScope{
		OrganizationID: organizationID,
		SessionID:      sessionID,
		Staff:          staff,
	}

	if sessionID != nil {
		session, err := s.repo.Session().GetByID(ctx, *sessionID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrInvalidSession
			}
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		if organizationID != nil && session.OrganizationID != *organizationID {
			return nil, ErrInvalidSession
		}
		scope.SessionIDs = []uint{session.ID}
		return scope, nil
	}

	var sessions []*models.Session
	if organizationID != nil {
		if _, err := s.repo.Organization().GetByID(ctx, *organizationID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrInvalidOrganization
			}
			return nil, fmt.Errorf("failed to load organization: %w", err)
		}
		sessions, err = s.repo.Session().ListByOrganization(ctx, *organizationID)
	} else {
		sessions, err = s.repo.Session().List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	for _, session := range sessions {
		scope.SessionIDs = append(scope.SessionIDs, session.ID)
	}
	return scope, nil
}

func (s *statisticsService) Generate(ctx context.Context, req *StatisticsRequest, userID string) ([]*InventoryStatistics, error) {
	scope, err := s.ResolveScope(ctx, userID, req.OrganizationID, req.SessionID)
	if err != nil {
		return nil, err
	}
	sessionIDs, staff := scope.SessionIDs, scope.Staff
	if len(sessionIDs) == 0 {
		return nil, ErrNoData
	}

	cacheKey := s.cacheKey(scope)
	var cached []*InventoryStatistics
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Statistics cache read failed", "key", cacheKey, "error", err)
	}

	suppressed := make(map[int]bool)
	for _, inv := range s.registry.All() {
		count, err := s.repo.Submission().CountCompleted(ctx, inv.ID(), sessionIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to count submissions for %s: %w", inv.Name(), err)
		}
		if !staff && count < MinimumSubmissions {
			suppressed[inv.ID()] = true
		}
	}

	excluded := []int{inventories.ViaID}
	for id := range suppressed {
		if id != inventories.ViaID {
			excluded = append(excluded, id)
		}
	}

	metrics, err := s.repo.Metric().GetForSessions(ctx, sessionIDs, excluded)
	if err != nil {
		return nil, fmt.Errorf("failed to load metrics: %w", err)
	}

	grouped := make(map[string][]MetricPoint)
	for i, metric := range metrics {
		code := inventoryCode(metric.Submission.InventoryID)
		grouped[code] = append(grouped[code], MetricPoint{
			Name:  fmt.Sprintf("Metric-%d", i),
			Key:   metric.Key,
			Value: metric.Value,
		})
	}

	if !suppressed[inventories.ViaID] {
		viaPoints, err := s.viaStatistics(ctx, sessionIDs)
		if err != nil {
			return nil, err
		}
		if len(viaPoints) > 0 {
			grouped[inventoryCode(inventories.ViaID)] = viaPoints
		}
	}

	if len(grouped) == 0 {
		return nil, ErrNoData
	}

	result := make([]*InventoryStatistics, 0, len(grouped))
	for code, points := range grouped {
		entry := &InventoryStatistics{Inventory: code, Data: points}
		if staff && code != inventoryCode(inventories.ViaID) {
			entry.Analysis = analyze(points)
		}
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Inventory < result[j].Inventory
	})

	if err := s.cache.Set(ctx, cacheKey, result, statisticsCacheTTL); err != nil {
		s.logger.Warn("Statistics cache write failed", "key", cacheKey, "error", err)
	}

	return result, nil
}

// viaStatistics tallies, per strength, how many users in scope carry
// it as a signature strength.
func (s *statisticsService) viaStatistics(ctx context.Context, sessionIDs []uint) ([]MetricPoint, error) {
	via := s.registry.Via()

	submissions, err := s.repo.Submission().GetCompleted(ctx, inventories.ViaID, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load via submissions: %w", err)
	}

	counts := make(map[string]int)
	for _, submission := range submissions {
		metrics := make(map[string]float64, len(submission.Metrics))
		for _, metric := range submission.Metrics {
			metrics[metric.Key] = metric.Value
		}

		for _, strength := range via.SignatureStrengths(metrics, inventories.SignatureCount) {
			if strength.IsSignature {
				counts[strength.Key]++
			}
		}
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	points := make([]MetricPoint, 0, len(keys))
	for _, key := range keys {
		// Name carries the virtue category for display grouping.
		label := via.Label(key)
		points = append(points, MetricPoint{
			Name:  inventories.ViaCategoryOf[label],
			Key:   key,
			Value: float64(counts[key]),
		})
	}
	return points, nil
}

// analyze computes per-key descriptive statistics over the metric
// points. Stdev is the population standard deviation.
func analyze(points []MetricPoint) []MetricAnalysis {
	byKey := make(map[string][]float64)
	for _, point := range points {
		byKey[point.Key] = append(byKey[point.Key], point.Value)
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	analysis := make([]MetricAnalysis, 0, len(keys))
	for _, key := range keys {
		values := byKey[key]

		min, max := values[0], values[0]
		sum := 0.0
		for _, v := range values {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			sum += v
		}
		mean := sum / float64(len(values))

		variance := 0.0
		for _, v := range values {
			variance += (v - mean) * (v - mean)
		}
		variance /= float64(len(values))

		analysis = append(analysis, MetricAnalysis{
			Key:   key,
			Count: len(values),
			Min:   min,
			Max:   max,
			Mean:  mean,
			Stdev: math.Sqrt(variance),
		})
	}
	return analysis
}

// cacheKey derives the cache key from the resolved scope. Keying off
// the raw request would let a member's pinned-organization view share
// an entry with every other organization's.
func (s *statisticsService) cacheKey(scope *StatisticsScope) string {
	org := "all"
	if scope.OrganizationID != nil {
		org = fmt.Sprintf("org:%d", *scope.OrganizationID)
	}

	session := "all"
	if scope.SessionID != nil {
		session = fmt.Sprintf("%d", *scope.SessionID)
	}

	audience := "member"
	if scope.Staff {
		audience = "staff"
	}
	return fmt.Sprintf("statistics:%s:session:%s:%s", org, session, audience)
}
