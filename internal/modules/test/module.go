package test

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/sgrhook/internal/bot"
	"github.com/sglre6355/sgrhook/internal/command"
	"github.com/sglre6355/sgrhook/internal/modules/test/presentation"
)

func init() {
	bot.Register(&TestModule{})
}

// TestModule provides test commands like /ping.
type TestModule struct {
	pingHandler          *presentation.PingHandler
	pongHandler          *presentation.PongHandler
	echoHandler          *presentation.EchoHandler
	authorizationHandler *presentation.AuthorizationHandler
}

// Name returns the module name.
func (m *TestModule) Name() string {
	return "test"
}

// Commands returns the slash commands for this module.
func (m *TestModule) Commands() []command.Data {
	return []command.Data{
		{
			Name:            "ping",
			Description:     "Replies with Pong!",
			Contexts:        []string{"Guild", "BotDM", "PrivateChannel"},
			IntegrationType: "Guild",
		},
		{
			Name:        "echo",
			Description: "Repeats what you say",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "text",
					Description:  "Text to repeat",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
	}
}

// CommandHandlers returns the command handlers for this module.
func (m *TestModule) CommandHandlers() []bot.Command {
	return []bot.Command{
		{Name: "ping", Handle: m.pingHandler.Handle},
		{Name: "echo", Handle: m.echoHandler.Handle, Autocomplete: m.echoHandler.Autocomplete},
	}
}

// ComponentHandlers returns the component handlers for this module.
func (m *TestModule) ComponentHandlers() []bot.Component {
	return []bot.Component{
		{CustomID: presentation.PongButtonPattern, Handle: m.pongHandler.HandleButton},
	}
}

// EventHandlers returns the event handlers for this module.
func (m *TestModule) EventHandlers() []bot.EventListener {
	return []bot.EventListener{
		{Name: "APPLICATION_AUTHORIZED", Handle: m.authorizationHandler.Handle},
	}
}

// Init initializes the module.
func (m *TestModule) Init(deps bot.ModuleDependencies) error {
	m.pingHandler = presentation.NewPingHandler()
	m.pongHandler = presentation.NewPongHandler()
	m.echoHandler = presentation.NewEchoHandler()
	m.authorizationHandler = presentation.NewAuthorizationHandler()
	return nil
}

// Shutdown cleans up module resources.
func (m *TestModule) Shutdown() error {
	return nil
}
