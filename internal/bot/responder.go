package bot

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// ErrNoResponder is returned when a Dispatcher has no way to reply.
var ErrNoResponder = errors.New("no responder configured")

// Responder provides an abstraction for responding to Discord interactions.
// This interface enables testing handlers without a live Discord connection.
type Responder interface {
	// Respond sends a response to an interaction.
	Respond(response *discordgo.InteractionResponse) error
}

// DiscordResponder implements Responder using the Discord REST API.
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

// NewDiscordResponder creates a new DiscordResponder.
func NewDiscordResponder(s *discordgo.Session, i *discordgo.Interaction) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Respond sends a response to the interaction via Discord API.
func (r *DiscordResponder) Respond(response *discordgo.InteractionResponse) error {
	return r.session.InteractionRespond(r.interaction, response)
}

// SessionResponders returns a ResponderFactory replying through s.
func SessionResponders(s *discordgo.Session) ResponderFactory {
	return func(i *discordgo.Interaction) Responder {
		return NewDiscordResponder(s, i)
	}
}

type noopResponder struct{}

func (noopResponder) Respond(*discordgo.InteractionResponse) error {
	return ErrNoResponder
}

// MockResponder is a test double for Responder.
type MockResponder struct {
	LastResponse *discordgo.InteractionResponse
	Err          error
}

// Respond records the response for testing.
func (m *MockResponder) Respond(response *discordgo.InteractionResponse) error {
	m.LastResponse = response
	return m.Err
}

// NewTestInteraction wraps i for handler tests, replying through r.
func NewTestInteraction(i *discordgo.Interaction, r Responder) *Interaction {
	return &Interaction{Interaction: i, responder: r}
}
