package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
	"github.com/go-tiger/mc-launcher-bot/pkg/messages"
	"github.com/go-tiger/mc-launcher-bot/pkg/ticketing"
)

const (
	// SetupCmdName is the command for setting up the commission system.
	SetupCmdName = "setup"

	// OptionAdminRole is the option carrying the admin role.
	OptionAdminRole = "admin_role"

	// OptionTicketCategory is the option carrying the category that new ticket
	// channels are created under.
	OptionTicketCategory = "ticket_category"

	// OptionArchiveCategory is the option carrying the category completed
	// tickets are moved to.
	OptionArchiveCategory = "archive_category"
)

// setupCmd is the command for setting up the commission system in a guild.
var setupCmd = &discordgo.ApplicationCommand{
	Name:        SetupCmdName,
	Type:        discordgo.ChatApplicationCommand,
	Description: "Set up the launcher commission system for this server.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Name:        OptionAdminRole,
			Type:        discordgo.ApplicationCommandOptionRole,
			Description: "The role allowed to manage commissions.",
			Required:    true,
		},
		{
			Name:        OptionTicketCategory,
			Type:        discordgo.ApplicationCommandOptionChannel,
			Description: "The category that new ticket channels are created under.",
			Required:    true,
		},
		{
			Name:        OptionArchiveCategory,
			Type:        discordgo.ApplicationCommandOptionChannel,
			Description: "The category completed tickets are moved to.",
			Required:    false,
		},
	},
}

// setupCmdController gates the setup command: guild only, administrators only.
func setupCmdController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	if i.GuildID == "" || i.Member == nil {
		if err := respondEphemeral(a, i, messages.ErrGuildOnly); err != nil {
			return nil, fmt.Errorf("error responding to interaction: %w", err)
		}
		return nil, nil
	}

	if i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		if err := respondEphemeral(a, i, messages.ErrAdminOnly); err != nil {
			return nil, fmt.Errorf("error responding to interaction: %w", err)
		}
		return nil, nil
	}

	return setupProcessor, nil
}

func setupProcessor(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	update := ticketing.GuildConfigUpdate{}
	for _, option := range i.ApplicationCommandData().Options {
		switch option.Name {
		case OptionAdminRole:
			role := option.RoleValue(a.Session(), i.GuildID)
			if role == nil {
				return fmt.Errorf("error resolving role option %s", OptionAdminRole)
			}
			update.AdminRoleID = &role.ID
		case OptionTicketCategory:
			channel := option.ChannelValue(a.Session())
			if channel == nil || channel.Type != discordgo.ChannelTypeGuildCategory {
				return respondEphemeral(a, i, messages.ErrCategoryChannelRequired)
			}
			update.TicketCategoryID = &channel.ID
		case OptionArchiveCategory:
			channel := option.ChannelValue(a.Session())
			if channel == nil || channel.Type != discordgo.ChannelTypeGuildCategory {
				return respondEphemeral(a, i, messages.ErrCategoryChannelRequired)
			}
			update.ArchiveCategoryID = &channel.ID
		}
	}

	config, err := a.GuildConfig().Update(ctx, i.GuildID, update)
	if err != nil {
		return fmt.Errorf("error updating guild config: %w", err)
	}

	// Post the request message in the channel the command was run in, reusing
	// the previous one when it still exists so the guild never carries two.
	msg, err := sendRequestMessage(a, config, i.ChannelID)
	if err != nil {
		return fmt.Errorf("error sending request message: %w", err)
	}

	if _, err := a.GuildConfig().Update(ctx, i.GuildID, ticketing.GuildConfigUpdate{
		TicketChannelID: &msg.ChannelID,
		TicketMessageID: &msg.ID,
	}); err != nil {
		return fmt.Errorf("error saving request message location: %w", err)
	}

	if err := respondEphemeral(a, i, fmt.Sprintf("Setup complete. The request message has been posted in <#%s>.", msg.ChannelID)); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	return nil
}

func sendRequestMessage(a IApp, config *entities.GuildConfig, channelID string) (*discordgo.Message, error) {
	const messageText = `Want a custom modded launcher?
Click the button below to start a commission request. You will be asked for the Minecraft version, mod loader and loader version, then a private ticket channel will be opened for you.`

	// Envelope with arrow.
	const requestEmoji = "\U0001F4E9"

	message := &discordgo.MessageSend{
		Content: messageText,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    fmt.Sprintf("%s Request Launcher", requestEmoji),
						Style:    discordgo.PrimaryButton,
						CustomID: CreateTicketButtonID,
					},
				},
			},
		},
	}

	// Reuse the existing message if it is still around.
	if config.TicketChannelID != "" && config.TicketMessageID != "" {
		edited, err := a.Session().ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    config.TicketChannelID,
			ID:         config.TicketMessageID,
			Content:    &message.Content,
			Components: message.Components,
		})
		if err == nil {
			return edited, nil
		}
		a.Log().Warn("Previous request message is gone, posting a new one",
			slog.String("channel_id", config.TicketChannelID),
			slog.String(logging.KeyError, err.Error()),
		)
	}

	msg, err := a.Session().ChannelMessageSendComplex(channelID, message)
	if err != nil {
		return nil, fmt.Errorf("error sending message: %w", err)
	}
	return msg, nil
}
