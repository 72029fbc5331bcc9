package dataaccess

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-tiger/mc-launcher-bot/pkg/custom"
	"github.com/go-tiger/mc-launcher-bot/pkg/dataaccess/monitoring"
	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	guildConfigDalName    = "guild_config_dal"
	guildConfigCollection = "guild_configs"
)

// GuildConfigDal is the data access layer for guild configurations.
type GuildConfigDal interface {
	// SaveGuildConfig saves a guild configuration.
	SaveGuildConfig(ctx context.Context, config *entities.GuildConfig) error

	// GetGuildConfig gets a guild configuration by guild ID.
	GetGuildConfig(ctx context.Context, guildID string) (*entities.GuildConfig, error)

	// IncrementTicketCounter atomically increments the guild's ticket counter
	// and returns the new value, creating the configuration if it does not
	// exist. The increment is serialised by the database, so two concurrent
	// callers can never receive the same number.
	IncrementTicketCounter(ctx context.Context, guildID string) (int, error)
}

type guildConfigDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewGuildConfigDal creates a new guild configuration data access layer.
func NewGuildConfigDal() GuildConfigDal {
	l := slog.Default().With(slog.String(logging.KeyDal, guildConfigDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &guildConfigDalImpl{
		l:      l,
		client: MongoDB,
	}
}

func (g *guildConfigDalImpl) SaveGuildConfig(ctx context.Context, config *entities.GuildConfig) error {
	collection := g.client.Database(mongoDatabase).Collection(guildConfigCollection)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(guildConfigDalName, "save_guild_config", mongoDatabase, guildConfigCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(guildConfigDalName, "save_guild_config", mongoDatabase, guildConfigCollection))
	defer t.ObserveDuration()

	if config.CreatedAt.IsZero() {
		config.CreatedAt = custom.Now()
	}
	config.UpdatedAt = custom.Now()

	opts := options.Update().SetUpsert(true)
	_, err := collection.UpdateOne(ctx, bson.M{"guild_id": config.GuildID}, bson.M{"$set": config}, opts)
	if err != nil {
		return fmt.Errorf("error updating guild config: %w", err)
	}
	return nil
}

func (g *guildConfigDalImpl) GetGuildConfig(ctx context.Context, guildID string) (*entities.GuildConfig, error) {
	collection := g.client.Database(mongoDatabase).Collection(guildConfigCollection)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(guildConfigDalName, "get_guild_config", mongoDatabase, guildConfigCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(guildConfigDalName, "get_guild_config", mongoDatabase, guildConfigCollection))
	defer t.ObserveDuration()

	config := new(entities.GuildConfig)
	if err := collection.FindOne(ctx, bson.M{"guild_id": guildID}).Decode(config); err != nil {
		return nil, fmt.Errorf("error getting guild config: %w", err)
	}
	return config, nil
}

func (g *guildConfigDalImpl) IncrementTicketCounter(ctx context.Context, guildID string) (int, error) {
	collection := g.client.Database(mongoDatabase).Collection(guildConfigCollection)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(guildConfigDalName, "increment_ticket_counter", mongoDatabase, guildConfigCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(guildConfigDalName, "increment_ticket_counter", mongoDatabase, guildConfigCollection))
	defer t.ObserveDuration()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	update := bson.M{
		"$inc": bson.M{"ticket_counter": 1},
		"$set": bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)},
		"$setOnInsert": bson.M{
			"created_at": time.Now().UTC().Format(time.RFC3339),
		},
	}

	config := new(entities.GuildConfig)
	if err := collection.FindOneAndUpdate(ctx, bson.M{"guild_id": guildID}, update, opts).Decode(config); err != nil {
		return 0, fmt.Errorf("error incrementing ticket counter: %w", err)
	}
	return config.TicketCounter, nil
}
