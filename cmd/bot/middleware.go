package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/go-tiger/mc-launcher-bot/cmd/bot/monitoring"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
	"github.com/go-tiger/mc-launcher-bot/pkg/request"
	"github.com/gorilla/mux"
)

// commandProcessor handles a single interaction.
type commandProcessor func(a IApp, i *discordgo.InteractionCreate) error

// commandController resolves the processor for a slash command, performing any
// shared precondition checks before the processor runs.
type commandController func(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error)

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(handler Controller, a IApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprintf("%v", rec)),
					slog.String("stack", string(debug.Stack())),
				)
				cw.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(cw).Encode(request.NewMessage(request.ErrInternalServer.Error())); err != nil {
					a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Log().Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path // If the route does not define a path, use the URL path.
			}
		} else {
			path = r.URL.Path // If the route is nil, use the URL path.
		}

		defer func() {
			// Run the deferred function after the request has been handled, as the status code will not be available until then.
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// interactionHandler routes interactions to their processors: slash commands
// by command name, message components and modal submissions by custom ID.
func interactionHandler(
	a IApp,
	slashControllers map[string]commandController,
	componentProcessors map[string]commandProcessor,
	modalProcessors map[string]commandProcessor,
) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			name := i.ApplicationCommandData().Name
			defer observeInteraction(name, time.Now().UTC())

			controller, ok := slashControllers[name]
			if !ok {
				a.Log().Error("No controller found for command", slog.String("command", name))
				replyInteractionError(a, i)
				return
			}

			processor, err := controller(a, i)
			if err != nil {
				a.Log().Error(fmt.Sprintf("Error getting processor for command %s", name),
					slog.String(logging.KeyError, err.Error()))
				replyInteractionError(a, i)
				return
			} else if processor == nil {
				// The controller handled the interaction itself, usually by
				// rejecting it with an ephemeral message.
				return
			}

			runProcessor(a, i, name, processor)
		case discordgo.InteractionMessageComponent:
			customID := i.MessageComponentData().CustomID
			defer observeInteraction(customID, time.Now().UTC())

			processor, ok := componentProcessors[customID]
			if !ok {
				a.Log().Error("No processor found for component", slog.String("custom_id", customID))
				replyInteractionError(a, i)
				return
			}

			runProcessor(a, i, customID, processor)
		case discordgo.InteractionModalSubmit:
			customID := i.ModalSubmitData().CustomID
			defer observeInteraction(customID, time.Now().UTC())

			processor, ok := modalProcessors[customID]
			if !ok {
				a.Log().Error("No processor found for modal", slog.String("custom_id", customID))
				replyInteractionError(a, i)
				return
			}

			runProcessor(a, i, customID, processor)
		default:
			a.Log().Debug("Ignoring interaction", slog.String("type", fmt.Sprintf("%d", i.Type)))
		}
	}
}

func runProcessor(a IApp, i *discordgo.InteractionCreate, name string, processor commandProcessor) {
	if err := processor(a, i); err != nil {
		a.Log().Error(fmt.Sprintf("Error processing interaction %s", name),
			slog.String(logging.KeyError, err.Error()))
		replyInteractionError(a, i)
	}
}

func replyInteractionError(a IApp, i *discordgo.InteractionCreate) {
	if err := respondSlashError(a, i); err != nil {
		a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
	}
}

func observeInteraction(name string, start time.Time) {
	monitoring.DiscordInteractionDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}
