package bot

import (
	"context"
	"encoding/json"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/sgrhook/internal/route"
)

// Interaction is a decoded interaction passed to handlers.
type Interaction struct {
	*discordgo.Interaction

	// Params holds values captured from the custom ID when a component
	// handler was matched by pattern.
	Params route.Params

	// RawData is the undecoded "data" object of the payload. Handlers use
	// it for fields discordgo does not model, such as modal labels.
	RawData json.RawMessage

	responder Responder
}

// Respond replies to the interaction.
func (i *Interaction) Respond(response *discordgo.InteractionResponse) error {
	return i.responder.Respond(response)
}

// Event is a webhook event delivered by Discord.
type Event struct {
	Name          string
	Timestamp     string
	ApplicationID string
	Data          json.RawMessage
}

// Decode unmarshals the event data into v.
func (e *Event) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}

// InteractionHandler handles an interaction.
type InteractionHandler func(ctx context.Context, i *Interaction) error

// EventHandler handles a webhook event.
type EventHandler func(ctx context.Context, e *Event) error

// Command routes an application command by name.
type Command struct {
	Name   string
	Handle InteractionHandler

	// Autocomplete answers autocomplete requests for the command's options.
	// It is optional and never runs through middleware.
	Autocomplete InteractionHandler
}

// Component routes message components and modal submissions by custom ID.
// CustomID may contain placeholders, e.g. "accept:{id}".
type Component struct {
	CustomID string
	Handle   InteractionHandler
}

// EventListener routes webhook events by event name, e.g. "APPLICATION_AUTHORIZED".
type EventListener struct {
	Name   string
	Handle EventHandler
}

// Kind identifies what a handler was matched for.
type Kind string

const (
	KindCommand      Kind = "command"
	KindAutocomplete Kind = "autocomplete"
	KindComponent    Kind = "component"
	KindEvent        Kind = "event"
)

// Request describes a matched handler about to run.
type Request struct {
	Kind Kind

	// Key is the name or custom ID pattern the handler was registered under.
	Key string

	// Exactly one of Interaction and Event is set.
	Interaction *Interaction
	Event       *Event
}

// Next runs the rest of the middleware chain and then the handler.
type Next func(ctx context.Context) error

// Middleware wraps handler execution. It must call next for the handler to
// run; returning without calling next skips the handler. The returned error
// is logged like a handler error.
type Middleware func(ctx context.Context, req *Request, next Next) error

// Chain combines middleware into one. The first middleware is the outermost.
func Chain(mws ...Middleware) Middleware {
	switch len(mws) {
	case 0:
		return nil
	case 1:
		return mws[0]
	}

	return func(ctx context.Context, req *Request, next Next) error {
		return mws[0](ctx, req, func(ctx context.Context) error {
			return Chain(mws[1:]...)(ctx, req, next)
		})
	}
}
