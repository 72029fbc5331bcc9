package ticketing

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeGuildConfigDal is an in-memory stand-in for the Mongo guild config DAL.
// It reproduces the real DAL's behaviour of wrapping mongo.ErrNoDocuments and
// serialising counter increments.
type fakeGuildConfigDal struct {
	mtx     sync.Mutex
	configs map[string]entities.GuildConfig
}

func newFakeGuildConfigDal() *fakeGuildConfigDal {
	return &fakeGuildConfigDal{
		configs: make(map[string]entities.GuildConfig),
	}
}

func (f *fakeGuildConfigDal) SaveGuildConfig(_ context.Context, config *entities.GuildConfig) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.configs[config.GuildID] = *config
	return nil
}

func (f *fakeGuildConfigDal) GetGuildConfig(_ context.Context, guildID string) (*entities.GuildConfig, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	config, ok := f.configs[guildID]
	if !ok {
		return nil, fmt.Errorf("error getting guild config: %w", mongo.ErrNoDocuments)
	}
	return &config, nil
}

func (f *fakeGuildConfigDal) IncrementTicketCounter(_ context.Context, guildID string) (int, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	config := f.configs[guildID]
	config.GuildID = guildID
	config.TicketCounter++
	f.configs[guildID] = config
	return config.TicketCounter, nil
}

func newTestGuildConfigManager(t *testing.T) (*GuildConfigManager, *fakeGuildConfigDal) {
	t.Helper()
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")
	dal := newFakeGuildConfigDal()
	return NewGuildConfigManager(l, dal), dal
}

func TestGetOrCreateGuildConfig(t *testing.T) {
	m, dal := newTestGuildConfigManager(t)
	ctx := context.Background()

	// First access creates a default configuration.
	config, err := m.GetOrCreate(ctx, "guild-1")
	require.NoError(t, err)
	require.Equal(t, "guild-1", config.GuildID)
	require.Empty(t, config.AdminRoleID)
	require.Zero(t, config.TicketCounter)
	require.False(t, config.Configured())

	// The default was persisted.
	_, err = dal.GetGuildConfig(ctx, "guild-1")
	require.NoError(t, err)

	// Second access returns the existing configuration.
	dal.configs["guild-1"] = entities.GuildConfig{GuildID: "guild-1", TicketCounter: 7}
	config, err = m.GetOrCreate(ctx, "guild-1")
	require.NoError(t, err)
	require.Equal(t, 7, config.TicketCounter)
}

func TestUpdateGuildConfig(t *testing.T) {
	m, _ := newTestGuildConfigManager(t)
	ctx := context.Background()

	config, err := m.Update(ctx, "guild-1", GuildConfigUpdate{
		AdminRoleID:       strPtr("role-1"),
		TicketCategoryID:  strPtr("cat-1"),
		ArchiveCategoryID: strPtr("cat-2"),
	})
	require.NoError(t, err)
	require.Equal(t, "role-1", config.AdminRoleID)
	require.Equal(t, "cat-1", config.TicketCategoryID)
	require.Equal(t, "cat-2", config.ArchiveCategoryID)
	require.True(t, config.Configured())

	// A later partial update leaves unrelated fields alone.
	config, err = m.Update(ctx, "guild-1", GuildConfigUpdate{
		TicketMessageID: strPtr("msg-1"),
	})
	require.NoError(t, err)
	require.Equal(t, "role-1", config.AdminRoleID)
	require.Equal(t, "msg-1", config.TicketMessageID)
}

func TestAllocateNextTicketNumber(t *testing.T) {
	m, _ := newTestGuildConfigManager(t)
	ctx := context.Background()

	// Sequential allocations yield distinct, strictly increasing numbers
	// starting from 1.
	for want := 1; want <= 3; want++ {
		got, err := m.AllocateNextTicketNumber(ctx, "guild-a")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	// Counters are independent per guild.
	got, err := m.AllocateNextTicketNumber(ctx, "guild-b")
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestAllocateNextTicketNumberConcurrent(t *testing.T) {
	m, _ := newTestGuildConfigManager(t)
	ctx := context.Background()

	const n = 50
	results := make(chan int, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := m.AllocateNextTicketNumber(ctx, "guild-a")
			require.NoError(t, err)
			results <- got
		}()
	}
	wg.Wait()
	close(results)

	// Every allocation is unique.
	seen := make(map[int]bool, n)
	for got := range results {
		require.False(t, seen[got], "ticket number %d allocated twice", got)
		seen[got] = true
	}
	require.Len(t, seen, n)
}
