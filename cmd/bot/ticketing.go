package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/go-tiger/mc-launcher-bot/cmd/bot/monitoring"
	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
	"github.com/go-tiger/mc-launcher-bot/pkg/messages"
	"github.com/go-tiger/mc-launcher-bot/pkg/ticketing"
)

const (
	// CreateTicketButtonID is the ID for the request launcher button.
	CreateTicketButtonID = "create_ticket_button"

	// SelectGameVersionID is the ID for the game version select menu.
	SelectGameVersionID = "select_game_version"

	// SelectLoaderKindID is the ID for the mod loader select menu.
	SelectLoaderKindID = "select_mod_loader"

	// SelectLoaderVersionID is the ID for the loader version select menu.
	SelectLoaderVersionID = "select_loader_version"

	// WizardNextButtonID is the ID for the button that advances the wizard to
	// the details modal.
	WizardNextButtonID = "ticket_next_button"

	// TicketModalID is the ID for the launcher details modal.
	TicketModalID = "ticket_details_modal"
)

const (
	// InputLauncherNameID is the modal input for the launcher name.
	InputLauncherNameID = "launcher_name"

	// InputFolderNameID is the modal input for the install folder name.
	InputFolderNameID = "folder_name"

	// InputAdditionalNotesID is the modal input for free-form notes.
	InputAdditionalNotesID = "additional_notes"
)

const wizardPrompt = "Pick the Minecraft version, mod loader and loader version for your launcher."

// createTicketHandler starts a fresh selection wizard for the user. The reply
// is ephemeral, so two users never share a wizard message.
func createTicketHandler(a IApp, i *discordgo.InteractionCreate) error {
	view, err := a.Wizard().Start(context.Background(), i.Member.User.ID)
	if err != nil {
		a.Log().Error("Error starting selection wizard", slog.String(logging.KeyError, err.Error()))
		return respondEphemeral(a, i, messages.ErrUserErrorProcessing)
	}

	return respondEphemeralComponents(a, i, wizardPrompt, renderWizard(view))
}

func selectGameVersionHandler(a IApp, i *discordgo.InteractionCreate) error {
	view, err := a.Wizard().SelectGameVersion(context.Background(), i.Member.User.ID, selectedValue(i))
	if err != nil {
		return fmt.Errorf("error selecting game version: %w", err)
	}
	return updateComponentMessage(a, i, wizardPrompt, renderWizard(view))
}

func selectLoaderKindHandler(a IApp, i *discordgo.InteractionCreate) error {
	view, err := a.Wizard().SelectLoaderKind(context.Background(), i.Member.User.ID, entities.ModLoader(selectedValue(i)))
	if err != nil {
		return fmt.Errorf("error selecting mod loader: %w", err)
	}
	return updateComponentMessage(a, i, wizardPrompt, renderWizard(view))
}

func selectLoaderVersionHandler(a IApp, i *discordgo.InteractionCreate) error {
	view, err := a.Wizard().SelectLoaderVersion(context.Background(), i.Member.User.ID, selectedValue(i))
	if err != nil {
		return fmt.Errorf("error selecting loader version: %w", err)
	}
	return updateComponentMessage(a, i, wizardPrompt, renderWizard(view))
}

// wizardNextHandler opens the details modal once all three selections exist.
func wizardNextHandler(a IApp, i *discordgo.InteractionCreate) error {
	if _, err := a.Wizard().Selection(i.Member.User.ID); err != nil {
		if errors.Is(err, ticketing.ErrSelectionIncomplete) {
			return respondEphemeral(a, i, messages.ErrSelectionIncomplete)
		}
		return fmt.Errorf("error getting selection: %w", err)
	}

	return respondModal(a, i, TicketModalID, "Launcher Details", []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  InputLauncherNameID,
					Label:     "Launcher name",
					Style:     discordgo.TextInputShort,
					Required:  true,
					MaxLength: 50,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  InputFolderNameID,
					Label:     "Install folder name",
					Style:     discordgo.TextInputShort,
					Required:  true,
					MaxLength: 50,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  InputAdditionalNotesID,
					Label:     "Anything else we should know?",
					Style:     discordgo.TextInputParagraph,
					Required:  false,
					MaxLength: 1000,
				},
			},
		},
	})
}

// ticketModalHandler turns a completed wizard and modal into a commission: it
// allocates the next ticket number, opens the private channel and persists the
// record. The selection is only cleared once the commission exists, so a
// failure leaves the user able to retry.
func ticketModalHandler(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	userID := i.Member.User.ID

	config, err := a.GuildConfig().GetOrCreate(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}
	if !config.Configured() {
		return respondEphemeral(a, i, messages.ErrNotConfigured)
	}

	selection, err := a.Wizard().Selection(userID)
	if err != nil {
		if errors.Is(err, ticketing.ErrSelectionIncomplete) {
			return respondEphemeral(a, i, messages.ErrSelectionExpired)
		}
		return fmt.Errorf("error getting selection: %w", err)
	}

	data := i.ModalSubmitData()

	ticketNumber, err := a.GuildConfig().AllocateNextTicketNumber(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error allocating ticket number: %w", err)
	}

	channel, err := a.Session().GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:  fmt.Sprintf("ticket-%s-%03d", strings.ToLower(i.Member.User.Username), ticketNumber),
		Type:  discordgo.ChannelTypeGuildText,
		Topic: fmt.Sprintf("Launcher commission for %s", i.Member.User.Username),
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			// Deny @everyone from seeing the ticket.
			{
				ID:    i.GuildID,
				Type:  discordgo.PermissionOverwriteTypeRole,
				Allow: 0,
				Deny:  discordgo.PermissionAll,
			},
			// The requester can see the ticket.
			{
				ID:    userID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionAllText,
				Deny:  discordgo.PermissionMentionEveryone,
			},
			// The admin role can see the ticket.
			{
				ID:    config.AdminRoleID,
				Type:  discordgo.PermissionOverwriteTypeRole,
				Allow: discordgo.PermissionAllText,
				Deny:  discordgo.PermissionMentionEveryone,
			},
		},
		ParentID: config.TicketCategoryID,
	})
	if err != nil {
		return fmt.Errorf("error creating ticket channel: %w", err)
	}

	commission, err := a.Lifecycle().CreateCommission(ctx, ticketing.CreateCommissionParams{
		GuildID:          i.GuildID,
		RequesterID:      userID,
		RequesterTag:     i.Member.User.Username,
		TicketChannelID:  channel.ID,
		LauncherName:     modalInputValue(data, InputLauncherNameID),
		FolderName:       modalInputValue(data, InputFolderNameID),
		MinecraftVersion: selection.GameVersion,
		ModLoader:        selection.LoaderKind,
		LoaderVersion:    selection.LoaderVersion,
		AdditionalNotes:  modalInputValue(data, InputAdditionalNotesID),
	})
	if err != nil {
		// The channel is already visible to the requester; tear it down rather
		// than leaving an orphan with no record behind it.
		if _, delErr := a.Session().ChannelDelete(channel.ID); delErr != nil {
			a.Log().Error("Error deleting orphaned ticket channel",
				slog.String("channel_id", channel.ID),
				slog.String(logging.KeyError, delErr.Error()),
			)
		}
		return fmt.Errorf("error creating commission: %w", err)
	}

	a.Wizard().ClearSelection(userID)
	monitoring.TotalCommissionsCreated.Inc()

	go func() {
		if err := sendCommissionInfo(a, commission, config.AdminRoleID); err != nil {
			a.Log().Error("Error setting up ticket channel", slog.String(logging.KeyError, err.Error()))
		}
	}()

	if err := respondEphemeral(a, i, fmt.Sprintf("Your commission request has been created in <#%s>.", channel.ID)); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	return nil
}

// sendCommissionInfo posts the info embed with the admin action buttons into
// the ticket channel and records the message so it can be refreshed in place.
func sendCommissionInfo(a IApp, commission *entities.Commission, adminRoleID string) error {
	msg, err := a.Session().ChannelMessageSendComplex(commission.TicketChannelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s> <@&%s>", commission.RequesterID, adminRoleID),
		Embed:   commissionInfoEmbed(commission),
		Components: []discordgo.MessageComponent{
			commissionActionRow(),
		},
	})
	if err != nil {
		return fmt.Errorf("error sending commission info: %w", err)
	}

	if err := a.Session().ChannelMessagePin(commission.TicketChannelID, msg.ID); err != nil {
		return fmt.Errorf("error pinning commission info: %w", err)
	}

	if _, err := a.Lifecycle().SetInfoMessage(context.Background(), commission.ID, msg.ID); err != nil {
		return fmt.Errorf("error saving info message ID: %w", err)
	}
	return nil
}

func renderWizard(view *ticketing.WizardView) []discordgo.MessageComponent {
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    SelectGameVersionID,
					Placeholder: "Minecraft version",
					Options:     stepOptions(view.GameVersions),
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    SelectLoaderKindID,
					Placeholder: "Mod loader",
					Disabled:    !view.LoaderKindsEnabled,
					Options:     stepOptions(view.LoaderKinds),
				},
			},
		},
	}

	if view.LoaderVersions != nil {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    SelectLoaderVersionID,
					Placeholder: "Loader version",
					Options:     stepOptions(view.LoaderVersions),
				},
			},
		})
	}

	components = append(components, discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Next",
				Style:    discordgo.SuccessButton,
				Disabled: !view.CanSubmit,
				CustomID: WizardNextButtonID,
			},
		},
	})

	return components
}

func stepOptions(options []ticketing.StepOption) []discordgo.SelectMenuOption {
	out := make([]discordgo.SelectMenuOption, 0, len(options))
	for _, option := range options {
		out = append(out, discordgo.SelectMenuOption{
			Label:   option.Value,
			Value:   option.Value,
			Default: option.Selected,
		})
	}
	return out
}

// selectedValue returns the single selected value of a select menu
// interaction.
func selectedValue(i *discordgo.InteractionCreate) string {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
