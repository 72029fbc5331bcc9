package entities

import "github.com/go-tiger/mc-launcher-bot/pkg/custom"

// GuildConfig is the per guild configuration for the commission system. One
// exists per guild, created lazily on first access and never deleted.
type GuildConfig struct {
	// GuildID is the ID of the guild.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// AdminRoleID is the ID of the role allowed to act on commissions.
	AdminRoleID string `json:"admin_role_id,omitempty" bson:"admin_role_id,omitempty"`

	// TicketCategoryID is the ID of the category that new ticket channels are
	// created under.
	TicketCategoryID string `json:"ticket_category_id,omitempty" bson:"ticket_category_id,omitempty"`

	// ArchiveCategoryID is the ID of the category that completed tickets are
	// moved to.
	ArchiveCategoryID string `json:"archive_category_id,omitempty" bson:"archive_category_id,omitempty"`

	// TicketChannelID is the ID of the channel holding the request message.
	TicketChannelID string `json:"ticket_channel_id,omitempty" bson:"ticket_channel_id,omitempty"`

	// TicketMessageID is the ID of the request message.
	TicketMessageID string `json:"ticket_message_id,omitempty" bson:"ticket_message_id,omitempty"`

	// TicketCounter is the number of tickets ever created in the guild. Only
	// ever increases; each created commission consumes exactly one value.
	TicketCounter int `json:"ticket_counter" bson:"ticket_counter"`

	// CreatedAt is the time the configuration was created.
	CreatedAt custom.Datetime `json:"created_at" bson:"created_at"`

	// UpdatedAt is the time the configuration was last mutated.
	UpdatedAt custom.Datetime `json:"updated_at" bson:"updated_at"`
}

// Configured reports whether the guild has everything required to create
// tickets.
func (g *GuildConfig) Configured() bool {
	return g.TicketCategoryID != "" && g.AdminRoleID != ""
}
