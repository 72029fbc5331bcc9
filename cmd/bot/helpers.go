package main

import (
	"github.com/Jacobbrewer1/discordgo"
	"github.com/go-tiger/mc-launcher-bot/pkg/messages"
)

func respondSlashError(a IApp, i *discordgo.InteractionCreate) error {
	return respondEphemeral(a, i, messages.ErrUserErrorProcessing)
}

func respondEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondEphemeralComponents sends an ephemeral reply carrying message
// components, such as the selection wizard or a confirmation prompt.
func respondEphemeralComponents(a IApp, i *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Flags:      discordgo.MessageFlagsEphemeral,
			Components: components,
		},
	})
}

// updateComponentMessage replaces the message the component interaction came
// from, keeping the reply in place rather than stacking new ones.
func updateComponentMessage(a IApp, i *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
		},
	})
}

func respondModal(a IApp, i *discordgo.InteractionCreate, customID, title string, components []discordgo.MessageComponent) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	})
}

// hasRole reports whether the member carries the given role.
func hasRole(member *discordgo.Member, roleID string) bool {
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// isGuildAdmin reports whether the interaction member may administer
// commissions: either the guild's configured admin role or the Administrator
// permission.
func isGuildAdmin(i *discordgo.InteractionCreate, adminRoleID string) bool {
	if i.Member == nil {
		return false
	}
	if adminRoleID != "" && hasRole(i.Member, adminRoleID) {
		return true
	}
	return i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// modalInputValue digs the value of a text input out of a modal submission.
// Missing inputs come back empty.
func modalInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			input, ok := component.(*discordgo.TextInput)
			if !ok {
				continue
			}
			if input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
