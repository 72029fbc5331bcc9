package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/go-tiger/mc-launcher-bot/cmd/bot/monitoring"
	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
	"github.com/go-tiger/mc-launcher-bot/pkg/messages"
	"github.com/go-tiger/mc-launcher-bot/pkg/ticketing"
)

const (
	// CommissionStatusButtonID is the ID for the change status button.
	CommissionStatusButtonID = "commission_status_button"

	// SelectCommissionStatusID is the ID for the status select menu.
	SelectCommissionStatusID = "select_commission_status"

	// CommissionPriceButtonID is the ID for the set price button.
	CommissionPriceButtonID = "commission_price_button"

	// CommissionPriceModalID is the ID for the price modal.
	CommissionPriceModalID = "commission_price_modal"

	// InputPriceID is the modal input for the price.
	InputPriceID = "price"

	// CommissionCloseButtonID is the ID for the close ticket button.
	CommissionCloseButtonID = "commission_close_button"

	// CloseConfirmButtonID is the ID for the close confirmation button.
	CloseConfirmButtonID = "close_confirm_button"

	// CloseCancelButtonID is the ID for the close cancellation button. It
	// serves both the confirmation prompt and the grace period undo.
	CloseCancelButtonID = "close_cancel_button"
)

const (
	// StatusEmoji is the emoji for the status button. (Clipboard)
	StatusEmoji = "\U0001F4CB"

	// PriceEmoji is the emoji for the price button. (Money bag)
	PriceEmoji = "\U0001F4B0"

	// CloseEmoji is the emoji for the close button. (Padlock)
	CloseEmoji = "\U0001F510"
)

// statusColours maps each workflow status to its embed colour.
var statusColours = map[entities.CommissionStatus]int{
	entities.StatusPending:        0x95a5a6,
	entities.StatusAccepted:       0x3498db,
	entities.StatusInProgress:     0xe67e22,
	entities.StatusPaymentPending: 0xf1c40f,
	entities.StatusReview:         0x9b59b6,
	entities.StatusCompleted:      0x2ecc71,
}

// commissionStatusHandler offers the admin a status select for the channel's
// commission.
func commissionStatusHandler(a IApp, i *discordgo.InteractionCreate) error {
	_, ok, err := commissionAdminGate(a, i)
	if err != nil || !ok {
		return err
	}

	commission, ok, err := commissionForChannel(a, i)
	if err != nil || !ok {
		return err
	}

	options := make([]discordgo.SelectMenuOption, 0, len(entities.AllStatuses))
	for _, status := range entities.AllStatuses {
		options = append(options, discordgo.SelectMenuOption{
			Label:   status.Label(),
			Value:   string(status),
			Default: status == commission.Status,
		})
	}

	return respondEphemeralComponents(a, i, "Select the new status.", []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType: discordgo.StringSelectMenu,
					CustomID: SelectCommissionStatusID,
					Options:  options,
				},
			},
		},
	})
}

func selectCommissionStatusHandler(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	config, ok, err := commissionAdminGate(a, i)
	if err != nil || !ok {
		return err
	}

	commission, ok, err := commissionForChannel(a, i)
	if err != nil || !ok {
		return err
	}

	status := entities.CommissionStatus(selectedValue(i))
	commission, err = a.Lifecycle().SetStatus(ctx, commission.ID, status)
	if err != nil {
		return fmt.Errorf("error setting status: %w", err)
	}
	monitoring.TotalStatusChanges.WithLabelValues(string(status)).Inc()

	// The first admin to act on a commission becomes its assignee.
	commission, err = a.Lifecycle().Assign(ctx, commission.ID, i.Member.User.ID)
	if err != nil {
		return fmt.Errorf("error assigning commission: %w", err)
	}

	if err := refreshInfoMessage(a, commission); err != nil {
		a.Log().Warn("Error refreshing commission info", slog.String(logging.KeyError, err.Error()))
	}

	notifyChannel(a, commission.TicketChannelID,
		fmt.Sprintf("<@%s>, your commission is now **%s**.", commission.RequesterID, commission.Status.Label()))

	// Completed commissions move out of the active category, when the guild
	// has one.
	if commission.Status == entities.StatusCompleted {
		archiveChannel(a, commission.TicketChannelID, config.ArchiveCategoryID)
	}

	return updateComponentMessage(a, i,
		fmt.Sprintf("Status updated to **%s**.", commission.Status.Label()), []discordgo.MessageComponent{})
}

// commissionPriceHandler opens the price modal.
func commissionPriceHandler(a IApp, i *discordgo.InteractionCreate) error {
	_, ok, err := commissionAdminGate(a, i)
	if err != nil || !ok {
		return err
	}

	if _, ok, err := commissionForChannel(a, i); err != nil || !ok {
		return err
	}

	return respondModal(a, i, CommissionPriceModalID, "Set Price", []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    InputPriceID,
					Label:       "Price (whole number)",
					Style:       discordgo.TextInputShort,
					Placeholder: "e.g. 50",
					Required:    true,
					MaxLength:   10,
				},
			},
		},
	})
}

func commissionPriceModalHandler(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	_, ok, err := commissionAdminGate(a, i)
	if err != nil || !ok {
		return err
	}

	commission, ok, err := commissionForChannel(a, i)
	if err != nil || !ok {
		return err
	}

	raw := strings.TrimSpace(modalInputValue(i.ModalSubmitData(), InputPriceID))
	price, err := strconv.Atoi(raw)
	if err != nil {
		return respondEphemeral(a, i, messages.ErrInvalidPrice)
	}

	commission, err = a.Lifecycle().SetPrice(ctx, commission.ID, price)
	if err != nil {
		if errors.Is(err, ticketing.ErrNegativePrice) {
			return respondEphemeral(a, i, messages.ErrInvalidPrice)
		}
		return fmt.Errorf("error setting price: %w", err)
	}

	if err := refreshInfoMessage(a, commission); err != nil {
		a.Log().Warn("Error refreshing commission info", slog.String(logging.KeyError, err.Error()))
	}

	notifyChannel(a, commission.TicketChannelID,
		fmt.Sprintf("<@%s>, the price has been set to **%s**.", commission.RequesterID, commission.PriceLabel()))

	return respondEphemeral(a, i, fmt.Sprintf("Price set to %s.", commission.PriceLabel()))
}

// commissionCloseHandler asks for confirmation before closing the ticket.
func commissionCloseHandler(a IApp, i *discordgo.InteractionCreate) error {
	_, ok, err := commissionAdminGate(a, i)
	if err != nil || !ok {
		return err
	}

	if _, ok, err := commissionForChannel(a, i); err != nil || !ok {
		return err
	}

	return respondEphemeralComponents(a, i,
		"This will complete the commission and delete the ticket channel. Are you sure?",
		[]discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Close Ticket",
						Style:    discordgo.DangerButton,
						CustomID: CloseConfirmButtonID,
					},
					discordgo.Button{
						Label:    "Cancel",
						Style:    discordgo.SecondaryButton,
						CustomID: CloseCancelButtonID,
					},
				},
			},
		})
}

// closeConfirmHandler completes the commission and starts the channel
// deletion countdown. The reply keeps a cancel button live for the grace
// period.
func closeConfirmHandler(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	_, ok, err := commissionAdminGate(a, i)
	if err != nil || !ok {
		return err
	}

	commission, ok, err := commissionForChannel(a, i)
	if err != nil || !ok {
		return err
	}

	commission, err = a.Lifecycle().Close(ctx, commission.ID)
	if err != nil {
		return fmt.Errorf("error closing commission: %w", err)
	}
	monitoring.TotalStatusChanges.WithLabelValues(string(entities.StatusCompleted)).Inc()

	notifyChannel(a, commission.TicketChannelID, messages.ClosingTicket)

	return updateComponentMessage(a, i, messages.ClosingTicket, []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					CustomID: CloseCancelButtonID,
				},
			},
		},
	})
}

// closeCancelHandler stops a pending channel deletion, or simply dismisses
// the confirmation prompt when nothing has been scheduled yet.
func closeCancelHandler(a IApp, i *discordgo.InteractionCreate) error {
	if a.Lifecycle().CancelPendingDeletion(i.ChannelID) {
		notifyChannel(a, i.ChannelID, messages.CloseCancelled)
	}
	return updateComponentMessage(a, i, messages.CloseCancelled, []discordgo.MessageComponent{})
}

// commissionAdminGate loads the guild configuration and rejects actors
// without the admin role. A false return means the interaction has already
// been answered.
func commissionAdminGate(a IApp, i *discordgo.InteractionCreate) (*entities.GuildConfig, bool, error) {
	config, err := a.GuildConfig().GetOrCreate(context.Background(), i.GuildID)
	if err != nil {
		return nil, false, fmt.Errorf("error getting guild config: %w", err)
	}

	if !isGuildAdmin(i, config.AdminRoleID) {
		if err := respondEphemeral(a, i, messages.ErrAdminRoleRequired); err != nil {
			return nil, false, fmt.Errorf("error responding to interaction: %w", err)
		}
		return nil, false, nil
	}
	return config, true, nil
}

// commissionForChannel loads the commission backing the interaction's
// channel. A false return means the interaction has already been answered.
func commissionForChannel(a IApp, i *discordgo.InteractionCreate) (*entities.Commission, bool, error) {
	commission, err := a.Lifecycle().GetByChannel(context.Background(), i.ChannelID)
	if err != nil {
		if errors.Is(err, ticketing.ErrNotFound) {
			if err := respondEphemeral(a, i, messages.ErrCommissionNotFound); err != nil {
				return nil, false, fmt.Errorf("error responding to interaction: %w", err)
			}
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error getting commission: %w", err)
	}
	return commission, true, nil
}

// refreshInfoMessage re-renders the pinned info embed in place.
func refreshInfoMessage(a IApp, commission *entities.Commission) error {
	if commission.InfoMessageID == "" {
		return nil
	}

	if _, err := a.Session().ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: commission.TicketChannelID,
		ID:      commission.InfoMessageID,
		Embed:   commissionInfoEmbed(commission),
		Components: []discordgo.MessageComponent{
			commissionActionRow(),
		},
	}); err != nil {
		return fmt.Errorf("error editing info message: %w", err)
	}
	return nil
}

// archiveChannel moves the ticket channel under the archive category, keeping
// its permission overwrites. Best effort; a failed move leaves the channel
// where it is.
func archiveChannel(a IApp, channelID, archiveCategoryID string) {
	if archiveCategoryID == "" {
		return
	}
	if _, err := a.Session().ChannelEditComplex(channelID, &discordgo.ChannelEdit{
		ParentID: archiveCategoryID,
	}); err != nil {
		a.Log().Warn("Error archiving ticket channel",
			slog.String("channel_id", channelID),
			slog.String(logging.KeyError, err.Error()),
		)
	}
}

// notifyChannel posts a best effort public message into the ticket channel.
func notifyChannel(a IApp, channelID, content string) {
	if _, err := a.Session().ChannelMessageSend(channelID, content); err != nil {
		a.Log().Warn("Error notifying ticket channel",
			slog.String("channel_id", channelID),
			slog.String(logging.KeyError, err.Error()),
		)
	}
}

func commissionInfoEmbed(commission *entities.Commission) *discordgo.MessageEmbed {
	assigned := "Unassigned"
	if commission.AssignedAdminID != "" {
		assigned = fmt.Sprintf("<@%s>", commission.AssignedAdminID)
	}

	notes := commission.AdditionalNotes
	if notes == "" {
		notes = "None"
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Launcher Commission: %s", commission.LauncherName),
		Description: fmt.Sprintf("Requested by <@%s>", commission.RequesterID),
		Color:       statusColours[commission.Status],
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Status",
				Value:  commission.Status.Label(),
				Inline: true,
			},
			{
				Name:   "Price",
				Value:  commission.PriceLabel(),
				Inline: true,
			},
			{
				Name:   "Assigned To",
				Value:  assigned,
				Inline: true,
			},
			{
				Name:   "Minecraft Version",
				Value:  commission.MinecraftVersion,
				Inline: true,
			},
			{
				Name:   "Mod Loader",
				Value:  string(commission.ModLoader),
				Inline: true,
			},
			{
				Name:   "Loader Version",
				Value:  commission.LoaderVersion,
				Inline: true,
			},
			{
				Name:   "Install Folder",
				Value:  commission.FolderName,
				Inline: true,
			},
			{
				Name:  "Notes",
				Value: notes,
			},
		},
	}
}

func commissionActionRow() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    fmt.Sprintf("%s Status", StatusEmoji),
				Style:    discordgo.PrimaryButton,
				CustomID: CommissionStatusButtonID,
			},
			discordgo.Button{
				Label:    fmt.Sprintf("%s Price", PriceEmoji),
				Style:    discordgo.SecondaryButton,
				CustomID: CommissionPriceButtonID,
			},
			discordgo.Button{
				Label:    fmt.Sprintf("%s Close", CloseEmoji),
				Style:    discordgo.DangerButton,
				CustomID: CommissionCloseButtonID,
			},
		},
	}
}
