package messages

// User facing messages for interaction replies. These are all short, ephemeral
// strings; anything longer lives with the embed that renders it.
const (
	// ErrUserErrorProcessing is the generic error shown when an interaction
	// fails for a reason the user cannot fix.
	ErrUserErrorProcessing = "Something went wrong while processing your request. Please try again."

	// ErrGuildOnly is shown when a command is used outside of a guild.
	ErrGuildOnly = "This command can only be used in a server."

	// ErrAdminOnly is shown when a non-administrator uses the setup command.
	ErrAdminOnly = "You must be an administrator to use this command."

	// ErrAdminRoleRequired is shown when an actor without the configured admin
	// role tries to act on a commission.
	ErrAdminRoleRequired = "Only members with the admin role can do that."

	// ErrNotConfigured is shown when a commission is requested before the
	// ticket system has been set up.
	ErrNotConfigured = "The ticket system has not been set up yet. Please contact an administrator."

	// ErrCommissionNotFound is shown when no commission exists for the channel
	// an action was taken in.
	ErrCommissionNotFound = "No commission was found for this channel."

	// ErrSelectionIncomplete is shown when the wizard is submitted without all
	// three selections present.
	ErrSelectionIncomplete = "Please select a Minecraft version, mod loader and loader version first."

	// ErrSelectionExpired is shown when the final details modal arrives after
	// the selection session has gone away.
	ErrSelectionExpired = "Your selections have expired. Please start the request again."

	// ErrInvalidPrice is shown when the price modal contains anything other
	// than a non-negative whole number.
	ErrInvalidPrice = "Please enter a valid non-negative price."

	// ErrCategoryChannelRequired is shown when a setup option is not a
	// category channel.
	ErrCategoryChannelRequired = "Both the ticket and archive options must be category channels."

	// ClosingTicket is shown while a ticket channel is being torn down.
	ClosingTicket = "Closing this ticket..."

	// CloseCancelled is shown when a close confirmation is cancelled.
	CloseCancelled = "Ticket close cancelled."
)
