package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/sgrhook/internal/command"
	"github.com/sglre6355/sgrhook/internal/verify"
)

// Bot manages the webhook server lifecycle and module coordination.
type Bot struct {
	config     *Config
	session    *discordgo.Session
	modules    []Module
	middleware []Middleware
	dispatcher *Dispatcher
	server     *http.Server
	serveErr   chan error
}

// NewBot creates a new Bot instance with the given configuration.
func NewBot(cfg *Config) *Bot {
	return &Bot{
		config:  cfg,
		modules: make([]Module, 0),
	}
}

// LoadModules loads modules from the global registry.
func (b *Bot) LoadModules() {
	b.modules = Modules()
}

// Use adds middleware around command, component and event handlers. It must
// be called before Start.
func (b *Bot) Use(mws ...Middleware) {
	b.middleware = append(b.middleware, mws...)
}

// Start initializes modules, builds the dispatcher and starts serving
// webhook requests.
func (b *Bot) Start() error {
	if err := b.connect(); err != nil {
		return err
	}

	if err := b.initModules(); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	dispatcher, err := b.buildDispatcher()
	if err != nil {
		return err
	}
	b.dispatcher = dispatcher

	ln, err := net.Listen("tcp", b.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", b.config.ListenAddress, err)
	}

	b.server = &http.Server{
		Handler: NewGateway(b.config.InteractionsPath, b.dispatcher),
	}
	b.serveErr = make(chan error, 1)
	go func() {
		if err := b.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.serveErr <- err
		}
		close(b.serveErr)
	}()

	slog.Info("started bot",
		"address", ln.Addr().String(),
		"path", b.config.InteractionsPath,
	)

	return nil
}

// Errors reports a failure of the HTTP server after Start. The channel is
// closed when the server stops.
func (b *Bot) Errors() <-chan error {
	return b.serveErr
}

// Stop gracefully shuts down the bot: the listener is closed first, then
// running handlers are awaited, then modules are shut down.
func (b *Bot) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), b.config.ShutdownTimeout)
	defer cancel()

	var errs []error

	if b.server != nil {
		if err := b.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown server: %w", err))
		}
	}

	if b.dispatcher != nil {
		if err := b.dispatcher.Wait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to wait for handlers: %w", err))
		}
	}

	for _, mod := range b.modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	return errors.Join(errs...)
}

// RegisterCommands overwrites the application's commands with those
// declared by loaded modules.
func (b *Bot) RegisterCommands(ctx context.Context) error {
	if err := b.connect(); err != nil {
		return err
	}

	if err := command.Install(ctx, b.session, b.config.ApplicationID, b.collectCommands()); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	return nil
}

// connect creates the REST session used for replies and registration. No
// gateway connection is opened.
func (b *Bot) connect() error {
	if b.session != nil {
		return nil
	}

	session, err := discordgo.New("Bot " + b.config.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	b.session = session

	return nil
}

// initModules loads configuration for and initializes all loaded modules.
func (b *Bot) initModules() error {
	deps := ModuleDependencies{
		Config:  b.config,
		Session: b.session,
	}

	for _, mod := range b.modules {
		if cm, ok := mod.(ConfigurableModule); ok {
			if err := cm.LoadConfig(); err != nil {
				return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
			}
		}
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
	}

	moduleNames := make([]string, len(b.modules))
	for i, mod := range b.modules {
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// collectHandlers gathers all handlers from loaded modules.
func (b *Bot) collectHandlers() Handlers {
	var h Handlers
	for _, mod := range b.modules {
		h.Commands = append(h.Commands, mod.CommandHandlers()...)
		h.Components = append(h.Components, mod.ComponentHandlers()...)
		h.Events = append(h.Events, mod.EventHandlers()...)
	}
	return h
}

// collectCommands gathers all command declarations from loaded modules.
func (b *Bot) collectCommands() []command.Data {
	var commands []command.Data
	for _, mod := range b.modules {
		commands = append(commands, mod.Commands()...)
	}
	return commands
}

func (b *Bot) buildDispatcher() (*Dispatcher, error) {
	if err := b.config.RequirePublicKey(); err != nil {
		return nil, err
	}
	verifier, err := verify.NewVerifier(b.config.PublicKey)
	if err != nil {
		return nil, err
	}

	handlers := b.collectHandlers()
	dispatcher, err := NewDispatcher(
		verifier,
		handlers,
		WithMiddleware(b.middleware...),
		WithResponderFactory(SessionResponders(b.session)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build dispatcher: %w", err)
	}

	slog.Info("built handler tables",
		"commands", len(handlers.Commands),
		"components", len(handlers.Components),
		"events", len(handlers.Events),
	)

	return dispatcher, nil
}
