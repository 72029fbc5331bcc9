package ticketing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-tiger/mc-launcher-bot/pkg/dataaccess"
	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// closeGracePeriod is how long a closed ticket channel survives after the
// closing message, so the message has a chance to render.
const closeGracePeriod = 2 * time.Second

// ChannelDeleter deletes a channel on the hosting platform. Failures are
// logged, never escalated; the channel may already be gone.
type ChannelDeleter interface {
	DeleteChannel(channelID string) error
}

// CreateCommissionParams is everything needed to materialise a commission
// from a completed wizard selection.
type CreateCommissionParams struct {
	GuildID          string
	RequesterID      string
	RequesterTag     string
	TicketChannelID  string
	LauncherName     string
	FolderName       string
	MinecraftVersion string
	ModLoader        entities.ModLoader
	LoaderVersion    string
	AdditionalNotes  string
}

// Lifecycle manages commission records through the status workflow. Status
// transitions are unrestricted; admins may move a commission backwards to
// correct a mistake. Side effects such as notifications and the archive move
// are sequenced by the caller after the record mutation returns.
type Lifecycle struct {
	// l is the logger.
	l *slog.Logger

	// dal is the commission data access layer.
	dal dataaccess.CommissionDal

	// deleter tears down ticket channels.
	deleter ChannelDeleter

	// deletions holds the pending channel deletions so a close can be undone
	// during the grace period.
	deletions *DeferredTasks
}

// NewLifecycle creates a new commission lifecycle manager.
func NewLifecycle(l *slog.Logger, dal dataaccess.CommissionDal, deleter ChannelDeleter) *Lifecycle {
	return &Lifecycle{
		l:         l.With(slog.String(logging.KeyComponent, "commission_lifecycle")),
		dal:       dal,
		deleter:   deleter,
		deletions: NewDeferredTasks(),
	}
}

// CreateCommission creates a new commission in the PENDING status.
func (lc *Lifecycle) CreateCommission(ctx context.Context, params CreateCommissionParams) (*entities.Commission, error) {
	if !params.ModLoader.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLoader, params.ModLoader)
	}

	commission := &entities.Commission{
		GuildID:          params.GuildID,
		RequesterID:      params.RequesterID,
		RequesterTag:     params.RequesterTag,
		TicketChannelID:  params.TicketChannelID,
		LauncherName:     params.LauncherName,
		FolderName:       params.FolderName,
		MinecraftVersion: params.MinecraftVersion,
		ModLoader:        params.ModLoader,
		LoaderVersion:    params.LoaderVersion,
		AdditionalNotes:  params.AdditionalNotes,
		Status:           entities.StatusPending,
	}

	if err := lc.dal.SaveCommission(ctx, commission); err != nil {
		return nil, fmt.Errorf("error creating commission: %w", err)
	}
	return commission, nil
}

// GetByChannel returns the commission for a ticket channel.
func (lc *Lifecycle) GetByChannel(ctx context.Context, channelID string) (*entities.Commission, error) {
	commission, err := lc.dal.GetCommissionByChannelID(ctx, channelID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting commission: %w", err)
	}
	return commission, nil
}

// SetStatus sets the commission's workflow status and returns the updated
// record.
func (lc *Lifecycle) SetStatus(ctx context.Context, id primitive.ObjectID, status entities.CommissionStatus) (*entities.Commission, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	commission, err := lc.get(ctx, id)
	if err != nil {
		return nil, err
	}

	commission.Status = status
	if err := lc.dal.SaveCommission(ctx, commission); err != nil {
		return nil, fmt.Errorf("error saving commission: %w", err)
	}
	return commission, nil
}

// SetPrice sets the commission's price and returns the updated record. A
// negative price is rejected before the record is loaded, so the store is
// never touched.
func (lc *Lifecycle) SetPrice(ctx context.Context, id primitive.ObjectID, price int) (*entities.Commission, error) {
	if price < 0 {
		return nil, ErrNegativePrice
	}

	commission, err := lc.get(ctx, id)
	if err != nil {
		return nil, err
	}

	commission.Price = &price
	if err := lc.dal.SaveCommission(ctx, commission); err != nil {
		return nil, fmt.Errorf("error saving commission: %w", err)
	}
	return commission, nil
}

// Assign records the admin handling the commission. The first assignee
// sticks; later calls are no-ops.
func (lc *Lifecycle) Assign(ctx context.Context, id primitive.ObjectID, adminID string) (*entities.Commission, error) {
	commission, err := lc.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if commission.AssignedAdminID != "" {
		return commission, nil
	}

	commission.AssignedAdminID = adminID
	if err := lc.dal.SaveCommission(ctx, commission); err != nil {
		return nil, fmt.Errorf("error saving commission: %w", err)
	}
	return commission, nil
}

// SetInfoMessage records the ID of the info embed message posted in the
// ticket channel, so later actions can refresh it in place.
func (lc *Lifecycle) SetInfoMessage(ctx context.Context, id primitive.ObjectID, messageID string) (*entities.Commission, error) {
	commission, err := lc.get(ctx, id)
	if err != nil {
		return nil, err
	}

	commission.InfoMessageID = messageID
	if err := lc.dal.SaveCommission(ctx, commission); err != nil {
		return nil, fmt.Errorf("error saving commission: %w", err)
	}
	return commission, nil
}

// Close completes the commission and schedules the ticket channel for
// deletion after a short grace period. The deletion is best effort and can be
// undone with CancelPendingDeletion until the grace period elapses.
func (lc *Lifecycle) Close(ctx context.Context, id primitive.ObjectID) (*entities.Commission, error) {
	commission, err := lc.SetStatus(ctx, id, entities.StatusCompleted)
	if err != nil {
		return nil, err
	}

	channelID := commission.TicketChannelID
	lc.deletions.Schedule(channelID, closeGracePeriod, func() {
		if err := lc.deleter.DeleteChannel(channelID); err != nil {
			lc.l.Error("Error deleting ticket channel",
				slog.String("channel_id", channelID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	})

	return commission, nil
}

// CancelPendingDeletion stops a scheduled ticket channel deletion, reporting
// whether one was pending.
func (lc *Lifecycle) CancelPendingDeletion(channelID string) bool {
	return lc.deletions.Cancel(channelID)
}

func (lc *Lifecycle) get(ctx context.Context, id primitive.ObjectID) (*entities.Commission, error) {
	commission, err := lc.dal.GetCommissionByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting commission: %w", err)
	}
	return commission, nil
}
