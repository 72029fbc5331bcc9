package entities

import (
	"fmt"

	"github.com/go-tiger/mc-launcher-bot/pkg/custom"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Commission is a persisted request for a custom launcher build, tracked
// through the status workflow. Exactly one commission exists per ticket
// channel; the record outlives the channel.
type Commission struct {
	// ID is the generated ID of the commission.
	ID primitive.ObjectID `json:"id" bson:"_id"`

	// GuildID is the ID of the guild that the commission was requested in.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// RequesterID is the ID of the user that requested the commission.
	RequesterID string `json:"requester_id" bson:"requester_id"`

	// RequesterTag is the tag of the user that requested the commission.
	RequesterTag string `json:"requester_tag" bson:"requester_tag"`

	// TicketChannelID is the ID of the private ticket channel.
	TicketChannelID string `json:"ticket_channel_id" bson:"ticket_channel_id"`

	// InfoMessageID is the ID of the commission info message in the ticket
	// channel. Used to refresh the embed after status or price changes.
	InfoMessageID string `json:"info_message_id" bson:"info_message_id"`

	// LauncherName is the requested name of the launcher.
	LauncherName string `json:"launcher_name" bson:"launcher_name"`

	// FolderName is the requested install folder name.
	FolderName string `json:"folder_name" bson:"folder_name"`

	// MinecraftVersion is the Minecraft version to build against.
	MinecraftVersion string `json:"minecraft_version" bson:"minecraft_version"`

	// ModLoader is the mod loader family.
	ModLoader ModLoader `json:"mod_loader" bson:"mod_loader"`

	// LoaderVersion is the mod loader version.
	LoaderVersion string `json:"loader_version" bson:"loader_version"`

	// AdditionalNotes are free-form notes from the requester.
	AdditionalNotes string `json:"additional_notes,omitempty" bson:"additional_notes,omitempty"`

	// Status is the workflow status of the commission.
	Status CommissionStatus `json:"status" bson:"status"`

	// AssignedAdminID is the ID of the admin handling the commission.
	AssignedAdminID string `json:"assigned_admin_id,omitempty" bson:"assigned_admin_id,omitempty"`

	// Price is the agreed price. Nil until an admin sets it.
	Price *int `json:"price,omitempty" bson:"price,omitempty"`

	// CreatedAt is the time the commission was created.
	CreatedAt custom.Datetime `json:"created_at" bson:"created_at"`

	// UpdatedAt is the time the commission was last mutated.
	UpdatedAt custom.Datetime `json:"updated_at" bson:"updated_at"`
}

// PriceLabel returns the display text for the price field.
func (c *Commission) PriceLabel() string {
	if c.Price == nil {
		return "TBD"
	}
	return fmt.Sprintf("%d", *c.Price)
}
