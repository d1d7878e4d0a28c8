package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/sgrhook/internal/route"
	"github.com/sglre6355/sgrhook/internal/verify"
	"github.com/tidwall/gjson"
)

var (
	// ErrUnauthorized is reported when a request signature does not verify.
	ErrUnauthorized = errors.New("invalid request signature")

	// ErrMalformedPayload is reported when a request body cannot be decoded.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrUnknownType is reported for interaction or event types that are not routed.
	ErrUnknownType = errors.New("unknown type")

	// ErrNoHandler is reported when a recognized request has no registered handler.
	ErrNoHandler = errors.New("no handler")

	// ErrShuttingDown is reported for requests arriving after Wait was called.
	ErrShuttingDown = errors.New("dispatcher is shutting down")
)

// Event webhook payload types.
const (
	eventTypePing  = 0
	eventTypeEvent = 1
)

// pongBody acknowledges pings.
var pongBody = []byte(`{"type":1}`)

// Result is the outcome of routing a single request.
type Result struct {
	// Status is the HTTP status to answer with.
	Status int

	// Body is the response body, if any.
	Body []byte

	// Err describes why the request was not routed to a handler. It is for
	// logging only and is never sent to Discord.
	Err error
}

func pong() Result {
	return Result{Status: http.StatusOK, Body: pongBody}
}

func accepted(err error) Result {
	return Result{Status: http.StatusAccepted, Err: err}
}

func closing() Result {
	return Result{Status: http.StatusServiceUnavailable, Err: ErrShuttingDown}
}

// Handlers lists everything a Dispatcher can route to.
type Handlers struct {
	Commands   []Command
	Components []Component
	Events     []EventListener
}

// ResponderFactory creates the Responder handed to interaction handlers.
type ResponderFactory func(i *discordgo.Interaction) Responder

// CompletionFunc is called after every handler invocation finishes. err is
// the handler, middleware or recovered panic error.
type CompletionFunc func(req *Request, err error)

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithMiddleware wraps command, component and event handlers. Middleware run
// in the given order, first outermost.
func WithMiddleware(mws ...Middleware) DispatcherOption {
	return func(d *Dispatcher) {
		d.middleware = Chain(mws...)
	}
}

// WithResponderFactory sets how handlers reply to interactions.
func WithResponderFactory(f ResponderFactory) DispatcherOption {
	return func(d *Dispatcher) {
		d.responders = f
	}
}

// WithOnComplete sets a callback run after each handler finishes.
func WithOnComplete(f CompletionFunc) DispatcherOption {
	return func(d *Dispatcher) {
		d.onComplete = f
	}
}

// Dispatcher verifies, classifies and routes webhook requests. Handlers run
// in their own goroutine; routing returns as soon as a handler is started.
//
// A Dispatcher is immutable after construction and safe for concurrent use.
type Dispatcher struct {
	verifier   *verify.Verifier
	commands   *route.Table[Command]
	components *route.Table[Component]
	events     *route.Table[EventListener]
	middleware Middleware
	responders ResponderFactory
	onComplete CompletionFunc

	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
}

// NewDispatcher builds the handler tables for h.
func NewDispatcher(v *verify.Verifier, h Handlers, opts ...DispatcherOption) (*Dispatcher, error) {
	commands, err := route.New(h.Commands, func(c Command) string { return c.Name })
	if err != nil {
		return nil, fmt.Errorf("failed to build command table: %w", err)
	}

	components, err := route.New(
		h.Components,
		func(c Component) string { return c.CustomID },
		route.WithPatterns(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build component table: %w", err)
	}

	events, err := route.New(h.Events, func(e EventListener) string { return e.Name })
	if err != nil {
		return nil, fmt.Errorf("failed to build event table: %w", err)
	}

	d := &Dispatcher{
		verifier:   v,
		commands:   commands,
		components: components,
		events:     events,
		responders: func(*discordgo.Interaction) Responder { return noopResponder{} },
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Handle verifies the request signature and routes body as an interaction
// when it carries a token, or as an event otherwise.
func (d *Dispatcher) Handle(ctx context.Context, body []byte, header http.Header) Result {
	if !d.verifier.Request(body, header) {
		return Result{Status: http.StatusUnauthorized, Err: ErrUnauthorized}
	}

	if !gjson.ValidBytes(body) {
		return Result{Status: http.StatusInternalServerError, Err: ErrMalformedPayload}
	}

	if gjson.GetBytes(body, "token").Exists() {
		return d.HandleInteraction(ctx, body)
	}
	return d.HandleEvent(ctx, body)
}

// HandleInteraction routes an interaction payload. It does not verify
// signatures.
func (d *Dispatcher) HandleInteraction(ctx context.Context, body []byte) Result {
	if !gjson.ValidBytes(body) {
		return Result{Status: http.StatusInternalServerError, Err: ErrMalformedPayload}
	}

	typ := gjson.GetBytes(body, "type")
	if typ.Type != gjson.Number {
		return d.unknown("interaction", typ.Raw)
	}

	switch typ.Int() {
	case int64(discordgo.InteractionPing):
		slog.Info("received ping interaction")
		return pong()
	case int64(discordgo.InteractionApplicationCommand),
		int64(discordgo.InteractionApplicationCommandAutocomplete),
		int64(discordgo.InteractionMessageComponent),
		int64(discordgo.InteractionModalSubmit):
	default:
		return d.unknown("interaction", typ.Raw)
	}

	i, err := decodeInteraction(body)
	if err != nil {
		return Result{
			Status: http.StatusInternalServerError,
			Err:    fmt.Errorf("%w: %w", ErrMalformedPayload, err),
		}
	}
	raw := json.RawMessage(gjson.GetBytes(body, "data").Raw)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return d.dispatchCommand(ctx, i, raw)
	case discordgo.InteractionApplicationCommandAutocomplete:
		return d.dispatchAutocomplete(ctx, i, raw)
	default:
		customID := gjson.GetBytes(body, "data.custom_id").String()
		return d.dispatchComponent(ctx, i, raw, customID)
	}
}

// decodeInteraction decodes body, falling back to a copy without nested
// components and resolved entities when discordgo cannot decode them. Such
// interactions still route; handlers read the raw data instead.
func decodeInteraction(body []byte) (*discordgo.Interaction, error) {
	var i discordgo.Interaction
	err := json.Unmarshal(body, &i)
	if err == nil {
		return &i, nil
	}

	stripped, serr := stripNested(body)
	if serr != nil {
		return nil, err
	}

	var partial discordgo.Interaction
	if json.Unmarshal(stripped, &partial) != nil {
		return nil, err
	}

	slog.Debug("decoded interaction without nested components", "error", err)
	return &partial, nil
}

func stripNested(body []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	delete(fields, "message")

	if raw, ok := fields["data"]; ok {
		var data map[string]json.RawMessage
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
		delete(data, "components")
		delete(data, "resolved")

		stripped, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		fields["data"] = stripped
	}

	return json.Marshal(fields)
}

// HandleEvent routes an event webhook payload. It does not verify
// signatures.
func (d *Dispatcher) HandleEvent(ctx context.Context, body []byte) Result {
	if !gjson.ValidBytes(body) {
		return Result{Status: http.StatusInternalServerError, Err: ErrMalformedPayload}
	}

	typ := gjson.GetBytes(body, "type")
	if typ.Type != gjson.Number {
		return d.unknown("event", typ.Raw)
	}

	switch typ.Int() {
	case eventTypePing:
		slog.Info("received ping event")
		return pong()
	case eventTypeEvent:
	default:
		return d.unknown("event", typ.Raw)
	}

	event := &Event{
		Name:          gjson.GetBytes(body, "event.type").String(),
		Timestamp:     gjson.GetBytes(body, "event.timestamp").String(),
		ApplicationID: gjson.GetBytes(body, "application_id").String(),
	}
	if data := gjson.GetBytes(body, "event.data"); data.Exists() {
		event.Data = json.RawMessage(data.Raw)
	}

	listener, _, ok := d.events.Find(event.Name)
	if !ok {
		return d.missing(fmt.Errorf("%w: event %q", ErrNoHandler, event.Name))
	}

	req := &Request{Kind: KindEvent, Key: listener.Name, Event: event}
	if !d.invoke(ctx, req, func(ctx context.Context) error {
		return listener.Handle(ctx, event)
	}, d.middleware) {
		return closing()
	}

	return accepted(nil)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, i *discordgo.Interaction, raw json.RawMessage) Result {
	name := i.ApplicationCommandData().Name

	cmd, _, ok := d.commands.Find(name)
	if !ok {
		return d.missing(fmt.Errorf("%w: command %q", ErrNoHandler, name))
	}

	interaction := d.wrap(i, raw, nil)
	req := &Request{Kind: KindCommand, Key: cmd.Name, Interaction: interaction}
	if !d.invoke(ctx, req, func(ctx context.Context) error {
		return cmd.Handle(ctx, interaction)
	}, d.middleware) {
		return closing()
	}

	return accepted(nil)
}

func (d *Dispatcher) dispatchAutocomplete(ctx context.Context, i *discordgo.Interaction, raw json.RawMessage) Result {
	name := i.ApplicationCommandData().Name

	cmd, _, ok := d.commands.Find(name)
	if !ok || cmd.Autocomplete == nil {
		return d.missing(fmt.Errorf("%w: autocomplete for command %q", ErrNoHandler, name))
	}

	interaction := d.wrap(i, raw, nil)
	req := &Request{Kind: KindAutocomplete, Key: cmd.Name, Interaction: interaction}
	if !d.invoke(ctx, req, func(ctx context.Context) error {
		return cmd.Autocomplete(ctx, interaction)
	}, nil) {
		return closing()
	}

	return accepted(nil)
}

func (d *Dispatcher) dispatchComponent(
	ctx context.Context,
	i *discordgo.Interaction,
	raw json.RawMessage,
	customID string,
) Result {
	component, params, ok := d.components.Find(customID)
	if !ok {
		return d.missing(fmt.Errorf("%w: component %q", ErrNoHandler, customID))
	}

	interaction := d.wrap(i, raw, params)
	req := &Request{Kind: KindComponent, Key: component.CustomID, Interaction: interaction}
	if !d.invoke(ctx, req, func(ctx context.Context) error {
		return component.Handle(ctx, interaction)
	}, d.middleware) {
		return closing()
	}

	return accepted(nil)
}

func (d *Dispatcher) wrap(i *discordgo.Interaction, raw json.RawMessage, params route.Params) *Interaction {
	return &Interaction{
		Interaction: i,
		RawData:     raw,
		Params:      params,
		responder:   d.responders(i),
	}
}

func (d *Dispatcher) unknown(kind, raw string) Result {
	slog.Warn("received unknown type", "kind", kind, "type", raw)
	return Result{
		Status: http.StatusNotFound,
		Err:    fmt.Errorf("%w: %s type %s", ErrUnknownType, kind, raw),
	}
}

func (d *Dispatcher) missing(err error) Result {
	slog.Warn("found no handler", "error", err)
	return accepted(err)
}

// invoke starts the handler without waiting for it. The context is detached
// from the request so handlers outlive the HTTP response. It reports false
// once Wait has been called.
func (d *Dispatcher) invoke(ctx context.Context, req *Request, run Next, mw Middleware) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		slog.Warn("dropped request during shutdown", "kind", req.Kind, "key", req.Key)
		return false
	}

	ctx = context.WithoutCancel(ctx)

	slog.Info("dispatching", "kind", req.Kind, "key", req.Key)

	d.inflight.Go(func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
			if err != nil {
				slog.Error("failed to handle "+string(req.Kind), "key", req.Key, "error", err)
			}
			if d.onComplete != nil {
				d.onComplete(req, err)
			}
		}()

		if mw != nil {
			err = mw(ctx, req, run)
		} else {
			err = run(ctx)
		}
	})

	return true
}

// Wait stops accepting new requests and blocks until all running handlers
// return or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
