package ticketing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-tiger/mc-launcher-bot/pkg/dataaccess"
	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
	"go.mongodb.org/mongo-driver/mongo"
)

// GuildConfigUpdate is a partial update to a guild configuration. Nil fields
// are left untouched. Overlapping concurrent updates are last-write-wins.
type GuildConfigUpdate struct {
	AdminRoleID       *string
	TicketCategoryID  *string
	ArchiveCategoryID *string
	TicketChannelID   *string
	TicketMessageID   *string
}

// GuildConfigManager manages the per guild configuration and the guild's
// ticket counter.
type GuildConfigManager struct {
	// l is the logger.
	l *slog.Logger

	// dal is the guild configuration data access layer.
	dal dataaccess.GuildConfigDal
}

// NewGuildConfigManager creates a new guild configuration manager.
func NewGuildConfigManager(l *slog.Logger, dal dataaccess.GuildConfigDal) *GuildConfigManager {
	return &GuildConfigManager{
		l:   l.With(slog.String(logging.KeyComponent, "guild_config_manager")),
		dal: dal,
	}
}

// GetOrCreate returns the guild's configuration, creating a default one if the
// guild has never been seen. Concurrent first access can race; the upsert save
// makes a duplicate creation attempt harmless.
func (m *GuildConfigManager) GetOrCreate(ctx context.Context, guildID string) (*entities.GuildConfig, error) {
	config, err := m.dal.GetGuildConfig(ctx, guildID)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error getting guild config: %w", err)
	}

	config = &entities.GuildConfig{
		GuildID: guildID,
	}
	if err := m.dal.SaveGuildConfig(ctx, config); err != nil {
		return nil, fmt.Errorf("error creating guild config: %w", err)
	}
	return config, nil
}

// Update merges the given fields into the guild's configuration and saves it.
func (m *GuildConfigManager) Update(ctx context.Context, guildID string, update GuildConfigUpdate) (*entities.GuildConfig, error) {
	config, err := m.GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if update.AdminRoleID != nil {
		config.AdminRoleID = *update.AdminRoleID
	}
	if update.TicketCategoryID != nil {
		config.TicketCategoryID = *update.TicketCategoryID
	}
	if update.ArchiveCategoryID != nil {
		config.ArchiveCategoryID = *update.ArchiveCategoryID
	}
	if update.TicketChannelID != nil {
		config.TicketChannelID = *update.TicketChannelID
	}
	if update.TicketMessageID != nil {
		config.TicketMessageID = *update.TicketMessageID
	}

	if err := m.dal.SaveGuildConfig(ctx, config); err != nil {
		return nil, fmt.Errorf("error saving guild config: %w", err)
	}
	return config, nil
}

// AllocateNextTicketNumber returns the next ticket number for the guild. The
// counter starts at 1 and never repeats; the increment is serialised at the
// storage layer so two simultaneous submissions cannot share a number.
func (m *GuildConfigManager) AllocateNextTicketNumber(ctx context.Context, guildID string) (int, error) {
	n, err := m.dal.IncrementTicketCounter(ctx, guildID)
	if err != nil {
		return 0, fmt.Errorf("error allocating ticket number: %w", err)
	}
	return n, nil
}
