package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/sgrhook/internal/command"
)

// ModuleDependencies provides dependencies that modules may need during initialization.
type ModuleDependencies struct {
	Config  *Config
	Session *discordgo.Session
}

// Module defines the interface that all bot modules must implement.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Commands returns the declarations of the commands this module provides.
	Commands() []command.Data

	// CommandHandlers returns the handlers for this module's commands.
	CommandHandlers() []Command

	// ComponentHandlers returns handlers for message components and modals.
	// Patterns are tried in the order returned.
	ComponentHandlers() []Component

	// EventHandlers returns webhook event handlers for this module.
	EventHandlers() []EventListener

	// Init initializes the module with the provided dependencies.
	Init(deps ModuleDependencies) error

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that need configuration.
// Modules implementing this interface will have LoadConfig called before Init.
type ConfigurableModule interface {
	// LoadConfig loads and validates module-specific configuration.
	// Should return an error if required configuration is missing or invalid.
	LoadConfig() error
}
