package dataaccess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-tiger/mc-launcher-bot/pkg/custom"
	"github.com/go-tiger/mc-launcher-bot/pkg/dataaccess/monitoring"
	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	commissionDalName    = "commission_dal"
	commissionCollection = "commissions"
)

// CommissionDal is the data access layer for commissions.
type CommissionDal interface {
	// SaveCommission saves a commission, creating it if it does not exist.
	SaveCommission(ctx context.Context, commission *entities.Commission) error

	// GetCommissionByID gets a commission by ID.
	GetCommissionByID(ctx context.Context, id primitive.ObjectID) (*entities.Commission, error)

	// GetCommissionByChannelID gets the commission for a ticket channel.
	GetCommissionByChannelID(ctx context.Context, channelID string) (*entities.Commission, error)
}

type commissionDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewCommissionDal creates a new commission data access layer.
func NewCommissionDal() CommissionDal {
	l := slog.Default().With(slog.String(logging.KeyDal, commissionDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &commissionDalImpl{
		l:      l,
		client: MongoDB,
	}
}

func (d *commissionDalImpl) SaveCommission(ctx context.Context, commission *entities.Commission) error {
	collection := d.client.Database(mongoDatabase).Collection(commissionCollection)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(commissionDalName, "save_commission", mongoDatabase, commissionCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(commissionDalName, "save_commission", mongoDatabase, commissionCollection))
	defer t.ObserveDuration()

	if commission.ID.IsZero() {
		commission.ID = primitive.NewObjectID()
	}
	if commission.CreatedAt.IsZero() {
		commission.CreatedAt = custom.Now()
	}
	commission.UpdatedAt = custom.Now()

	opts := options.Update().SetUpsert(true)
	_, err := collection.UpdateOne(ctx, bson.M{"_id": commission.ID}, bson.M{"$set": commission}, opts)
	if err != nil {
		return fmt.Errorf("error updating commission: %w", err)
	}
	return nil
}

func (d *commissionDalImpl) GetCommissionByID(ctx context.Context, id primitive.ObjectID) (*entities.Commission, error) {
	collection := d.client.Database(mongoDatabase).Collection(commissionCollection)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(commissionDalName, "get_commission_by_id", mongoDatabase, commissionCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(commissionDalName, "get_commission_by_id", mongoDatabase, commissionCollection))
	defer t.ObserveDuration()

	commission := new(entities.Commission)
	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(commission); err != nil {
		return nil, fmt.Errorf("error getting commission: %w", err)
	}
	return commission, nil
}

func (d *commissionDalImpl) GetCommissionByChannelID(ctx context.Context, channelID string) (*entities.Commission, error) {
	collection := d.client.Database(mongoDatabase).Collection(commissionCollection)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(commissionDalName, "get_commission_by_channel_id", mongoDatabase, commissionCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(commissionDalName, "get_commission_by_channel_id", mongoDatabase, commissionCollection))
	defer t.ObserveDuration()

	commission := new(entities.Commission)
	if err := collection.FindOne(ctx, bson.M{"ticket_channel_id": channelID}).Decode(commission); err != nil {
		return nil, fmt.Errorf("error getting commission: %w", err)
	}
	return commission, nil
}
