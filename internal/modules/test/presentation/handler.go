package presentation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/sgrhook/internal/bot"
	"github.com/sglre6355/sgrhook/internal/modules/test/application"
	"github.com/sglre6355/sgrhook/internal/modules/test/domain"
)

// PongButtonPattern is the custom ID pattern of the rally button.
const PongButtonPattern = "pong:{count}"

func pongButton(next int) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Return 🏓",
				Style:    discordgo.PrimaryButton,
				CustomID: "pong:" + strconv.Itoa(next),
			},
		},
	}
}

// PingHandler handles the /ping command.
type PingHandler struct {
	interactor *application.PingInteractor
}

// NewPingHandler creates a new PingHandler.
func NewPingHandler() *PingHandler {
	return &PingHandler{
		interactor: application.NewPingInteractor(),
	}
}

// Handle processes the ping command and sends the response.
func (h *PingHandler) Handle(_ context.Context, i *bot.Interaction) error {
	result, err := h.interactor.Execute(i.ID)
	if err != nil {
		return err
	}

	return i.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    result.Message,
			Components: []discordgo.MessageComponent{pongButton(1)},
		},
	})
}

// PongHandler handles presses of the rally button.
type PongHandler struct {
	interactor *application.PongInteractor
}

// NewPongHandler creates a new PongHandler.
func NewPongHandler() *PongHandler {
	return &PongHandler{
		interactor: application.NewPongInteractor(),
	}
}

// HandleButton updates the message with the next rally count.
func (h *PongHandler) HandleButton(_ context.Context, i *bot.Interaction) error {
	result, err := h.interactor.Execute(i.Params.Get("count"))
	if err != nil {
		return err
	}

	return i.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    result.Response,
			Components: []discordgo.MessageComponent{pongButton(result.Next)},
		},
	})
}

// EchoHandler handles the /echo command.
type EchoHandler struct{}

// NewEchoHandler creates a new EchoHandler.
func NewEchoHandler() *EchoHandler {
	return &EchoHandler{}
}

// Handle repeats the text option back to the user.
func (h *EchoHandler) Handle(_ context.Context, i *bot.Interaction) error {
	var text string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "text" {
			text = opt.StringValue()
		}
	}

	return i.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// Autocomplete suggests phrases for the text option.
func (h *EchoHandler) Autocomplete(_ context.Context, i *bot.Interaction) error {
	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "text" && opt.Focused {
			query = opt.StringValue()
			break
		}
	}

	suggestions := domain.Suggest(query)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(suggestions))
	for _, s := range suggestions {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  s,
			Value: s,
		})
	}

	return i.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
}

// authorization is the data of an APPLICATION_AUTHORIZED event.
type authorization struct {
	IntegrationType *int `json:"integration_type"`
	User            struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	Guild *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"guild"`
}

// AuthorizationHandler handles APPLICATION_AUTHORIZED events.
type AuthorizationHandler struct{}

// NewAuthorizationHandler creates a new AuthorizationHandler.
func NewAuthorizationHandler() *AuthorizationHandler {
	return &AuthorizationHandler{}
}

// Handle logs who installed the application and where.
func (h *AuthorizationHandler) Handle(_ context.Context, e *bot.Event) error {
	var data authorization
	if err := e.Decode(&data); err != nil {
		return fmt.Errorf("failed to decode %s event: %w", e.Name, err)
	}

	attrs := []any{"user_id", data.User.ID, "username", data.User.Username}
	if data.Guild != nil {
		attrs = append(attrs, "guild_id", data.Guild.ID)
	}
	if data.IntegrationType != nil {
		attrs = append(attrs, "integration_type", *data.IntegrationType)
	}
	slog.Info("application authorized", attrs...)

	return nil
}
