package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadlab/inventory-service/internal/cache"
	"github.com/leadlab/inventory-service/internal/identity"
	"github.com/leadlab/inventory-service/internal/inventories"
)

func uintPtr(v uint) *uint { return &v }

// memoryCache stores entries for real so tests can observe which keys
// the service reads and writes.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

type statisticsFixture struct {
	repo    *fakeRepository
	service StatisticsService
}

func newStatisticsFixture(t *testing.T) *statisticsFixture {
	t.Helper()

	registry, err := inventories.NewRegistry()
	require.NoError(t, err)

	repo := newFakeRepository()
	repo.addOrganization(1, "Goodnight Scholars")
	repo.addOrganization(2, "Lead Lab")
	repo.addSession(1, 1, "Fall 2026")
	repo.addSession(2, 1, "Spring 2027")
	repo.addSession(3, 2, "Pilot")

	repo.addUser("staff", 1, 1, true)
	repo.addUser("member", 1, 1, false)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewStatisticsService(repo, registry, identity.NewLocalDirectory(repo.User()), cache.NewNoopCache(), logger)

	return &statisticsFixture{repo: repo, service: service}
}

// seedCoreSelf creates n completed CoreSelf submissions in the given
// session with scores 1..n.
func (f *statisticsFixture) seedCoreSelf(sessionID uint, n int) {
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("cs-%d-%d", sessionID, i)
		f.repo.addUser(id, f.repo.sessions[sessionID].OrganizationID, sessionID, false)
		f.repo.addCompletedSubmission(id, inventories.CoreSelfID, map[string]float64{
			"score": float64(i),
		})
	}
}

func TestResolveScope(t *testing.T) {
	f := newStatisticsFixture(t)
	ctx := context.Background()

	t.Run("member defaults to own organization", func(t *testing.T) {
		scope, err := f.service.ResolveScope(ctx, "member", nil, nil)
		require.NoError(t, err)
		assert.False(t, scope.Staff)
		assert.ElementsMatch(t, []uint{1, 2}, scope.SessionIDs)
		require.NotNil(t, scope.OrganizationID, "member scope is pinned to their organization")
		assert.Equal(t, uint(1), *scope.OrganizationID)
	})

	t.Run("member cannot request another organization", func(t *testing.T) {
		_, err := f.service.ResolveScope(ctx, "member", uintPtr(2), nil)
		assert.ErrorIs(t, err, ErrInvalidOrganization)
	})

	t.Run("session outside organization is rejected", func(t *testing.T) {
		_, err := f.service.ResolveScope(ctx, "member", uintPtr(1), uintPtr(3))
		assert.ErrorIs(t, err, ErrInvalidSession)

		_, err = f.service.ResolveScope(ctx, "member", nil, uintPtr(3))
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("unknown requester", func(t *testing.T) {
		_, err := f.service.ResolveScope(ctx, "ghost", nil, nil)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("unknown session is rejected", func(t *testing.T) {
		_, err := f.service.ResolveScope(ctx, "staff", nil, uintPtr(99))
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("staff sees everything", func(t *testing.T) {
		scope, err := f.service.ResolveScope(ctx, "staff", nil, nil)
		require.NoError(t, err)
		assert.True(t, scope.Staff)
		assert.ElementsMatch(t, []uint{1, 2, 3}, scope.SessionIDs)
		assert.Nil(t, scope.OrganizationID)
	})

	t.Run("staff can scope to any organization", func(t *testing.T) {
		scope, err := f.service.ResolveScope(ctx, "staff", uintPtr(2), nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint{3}, scope.SessionIDs)
	})

	t.Run("explicit session narrows to one", func(t *testing.T) {
		scope, err := f.service.ResolveScope(ctx, "member", uintPtr(1), uintPtr(2))
		require.NoError(t, err)
		assert.Equal(t, []uint{2}, scope.SessionIDs)
	})
}

func TestGenerateSuppression(t *testing.T) {
	f := newStatisticsFixture(t)
	ctx := context.Background()

	// Nine completed submissions: below the floor for members.
	f.seedCoreSelf(1, MinimumSubmissions-1)

	_, err := f.service.Generate(ctx, &StatisticsRequest{}, "member")
	assert.ErrorIs(t, err, ErrNoData)

	// Staff bypass the floor.
	result, err := f.service.Generate(ctx, &StatisticsRequest{}, "staff")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "CoreSelf", result[0].Inventory)
	assert.Len(t, result[0].Data, MinimumSubmissions-1)

	// The tenth submission lifts the suppression.
	f.repo.addUser("cs-tenth", 1, 1, false)
	f.repo.addCompletedSubmission("cs-tenth", inventories.CoreSelfID, map[string]float64{"score": 10})

	result, err = f.service.Generate(ctx, &StatisticsRequest{}, "member")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "CoreSelf", result[0].Inventory)
	assert.Len(t, result[0].Data, MinimumSubmissions)
	assert.Empty(t, result[0].Analysis, "members never get the analysis rows")
}

func TestGenerateCacheIsScopedToOrganization(t *testing.T) {
	f := newStatisticsFixture(t)
	ctx := context.Background()

	registry, err := inventories.NewRegistry()
	require.NoError(t, err)

	memCache := newMemoryCache()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewStatisticsService(f.repo, registry, identity.NewLocalDirectory(f.repo.User()), memCache, logger)

	f.repo.addUser("outsider", 2, 3, false)
	f.seedCoreSelf(1, MinimumSubmissions)

	result, err := service.Generate(ctx, &StatisticsRequest{}, "member")
	require.NoError(t, err)
	require.Len(t, result, 1)

	// The entry is keyed by the member's resolved organization, not the
	// empty request, so completion invalidation by org pattern finds it.
	_, ok := memCache.entries["statistics:org:1:session:all:member"]
	assert.True(t, ok, "cache keys carry the resolved organization")

	// A member of another organization issuing the same empty request
	// must not be served the first member's cached entry.
	_, err = service.Generate(ctx, &StatisticsRequest{}, "outsider")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestGenerateGroupingAndAnalysis(t *testing.T) {
	f := newStatisticsFixture(t)
	ctx := context.Background()

	f.seedCoreSelf(1, 10)
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("bf-%d", i)
		f.repo.addUser(id, 1, 2, false)
		f.repo.addCompletedSubmission(id, inventories.BigFiveID, map[string]float64{
			"extraversion":        float64(i + 1),
			"agreeableness":       4,
			"conscientiousness":   4,
			"emotional_stability": 4,
			"openness":            4,
		})
	}

	result, err := f.service.Generate(ctx, &StatisticsRequest{}, "staff")
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Ordered by inventory name.
	assert.Equal(t, "BigFive", result[0].Inventory)
	assert.Equal(t, "CoreSelf", result[1].Inventory)

	assert.Len(t, result[0].Data, 15, "3 submissions x 5 metrics")
	assert.Len(t, result[1].Data, 10)

	// Anonymous metric names are unique across the whole result.
	seen := make(map[string]bool)
	for _, entry := range result {
		for _, point := range entry.Data {
			assert.False(t, seen[point.Name], "duplicate name %s", point.Name)
			seen[point.Name] = true
		}
	}

	// Staff analysis: CoreSelf scores are 1..10.
	require.NotEmpty(t, result[1].Analysis)
	var score *MetricAnalysis
	for i := range result[1].Analysis {
		if result[1].Analysis[i].Key == "score" {
			score = &result[1].Analysis[i]
		}
	}
	require.NotNil(t, score)
	assert.Equal(t, 10, score.Count)
	assert.Equal(t, 1.0, score.Min)
	assert.Equal(t, 10.0, score.Max)
	assert.InDelta(t, 5.5, score.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(8.25), score.Stdev, 1e-9)
}

var viaStrengthKeys = []string{
	"creativity", "curiosity", "open_mindedness", "love_of_learning", "perspective",
	"bravery", "perserverance", "integrity", "vitality",
	"love", "kindness", "social_intelligence",
	"citizenship", "fairness", "leadership",
	"forgiveness", "humility", "prudence", "self_regulation",
	"appreciation_of_beauty", "gratitude", "hopefulness", "humour", "spirituality",
}

func TestGenerateViaTally(t *testing.T) {
	f := newStatisticsFixture(t)
	ctx := context.Background()

	// Every user shares curiosity and kindness; the third signature
	// strength differs between the two groups.
	for i := 0; i < 6; i++ {
		metrics := make(map[string]float64, len(viaStrengthKeys))
		for _, key := range viaStrengthKeys {
			metrics[key] = 10
		}
		metrics["curiosity"] = 25
		metrics["kindness"] = 24
		if i < 4 {
			metrics["bravery"] = 23
		} else {
			metrics["prudence"] = 23
		}

		id := fmt.Sprintf("via-%d", i)
		f.repo.addUser(id, 1, 1, false)
		f.repo.addCompletedSubmission(id, inventories.ViaID, metrics)
	}

	result, err := f.service.Generate(ctx, &StatisticsRequest{}, "staff")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Via", result[0].Inventory)

	counts := make(map[string]float64)
	names := make(map[string]string)
	for _, point := range result[0].Data {
		counts[point.Key] = point.Value
		names[point.Key] = point.Name
	}

	assert.Equal(t, 6.0, counts["curiosity"])
	assert.Equal(t, 6.0, counts["kindness"])
	assert.Equal(t, 4.0, counts["bravery"])
	assert.Equal(t, 2.0, counts["prudence"])

	// Via rows carry the virtue category as their display name.
	assert.Equal(t, "Wisdom and Knowledge", names["curiosity"])
	assert.Equal(t, "Courage", names["bravery"])
	assert.Equal(t, "Temperance", names["prudence"])
}
