// Package command turns declarative command definitions into the bodies
// Discord expects and installs them per scope.
package command

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// DefaultDescription is used for chat input commands declared without one.
const DefaultDescription = "No description provided"

var (
	// ErrUnknownPermission is returned for an unrecognized permission flag name.
	ErrUnknownPermission = errors.New("unknown permission flag")

	// ErrUnknownContext is returned for an unrecognized interaction context name.
	ErrUnknownContext = errors.New("unknown interaction context")

	// ErrUnknownIntegrationType is returned for an unrecognized integration type.
	ErrUnknownIntegrationType = errors.New("unknown integration type")

	// ErrInvalidGuildID is returned when a target guild is not a snowflake.
	ErrInvalidGuildID = errors.New("invalid guild ID")
)

// Data declares a command. The zero value of every optional field means
// "not set".
type Data struct {
	Name        string
	Type        discordgo.ApplicationCommandType
	Description string
	Options     []*discordgo.ApplicationCommandOption
	NSFW        bool

	// DefaultMemberPermissions lists permission flag names such as
	// "ManageGuild". A non-nil empty list restricts the command to
	// administrators.
	DefaultMemberPermissions []string

	// Contexts lists where the command may be used: "Guild", "BotDM",
	// "PrivateChannel".
	Contexts []string

	// IntegrationType is "Guild" or "User".
	IntegrationType string

	// Guilds restricts the command to the given guild IDs. Empty means global.
	Guilds []string
}

// Normalize builds the registration body for d. d is not modified.
func Normalize(d Data) (*discordgo.ApplicationCommand, error) {
	cmd := &discordgo.ApplicationCommand{
		Name:        d.Name,
		Type:        d.Type,
		Description: d.Description,
		Options:     cloneOptions(d.Options),
	}

	if cmd.Type == 0 {
		cmd.Type = discordgo.ChatApplicationCommand
	}
	if cmd.Type == discordgo.ChatApplicationCommand && cmd.Description == "" {
		cmd.Description = DefaultDescription
	}

	if d.DefaultMemberPermissions != nil {
		perms, err := Permissions(d.DefaultMemberPermissions)
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", d.Name, err)
		}
		cmd.DefaultMemberPermissions = &perms
	}

	if len(d.Contexts) > 0 {
		ctxs := make([]discordgo.InteractionContextType, 0, len(d.Contexts))
		for _, name := range d.Contexts {
			c, ok := contexts[name]
			if !ok {
				return nil, fmt.Errorf("command %s: %w: %q", d.Name, ErrUnknownContext, name)
			}
			if !slices.Contains(ctxs, c) {
				ctxs = append(ctxs, c)
			}
		}
		cmd.Contexts = &ctxs
	}

	if d.IntegrationType != "" {
		it, ok := integrationTypes[d.IntegrationType+"Install"]
		if !ok {
			return nil, fmt.Errorf("command %s: %w: %q",
				d.Name, ErrUnknownIntegrationType, d.IntegrationType)
		}
		cmd.IntegrationTypes = &[]discordgo.ApplicationIntegrationType{it}
	}

	if d.NSFW {
		nsfw := true
		cmd.NSFW = &nsfw
	}

	return cmd, nil
}

// cloneOptions deep-copies opts so bodies never share option values with
// the declaration or with each other.
func cloneOptions(opts []*discordgo.ApplicationCommandOption) []*discordgo.ApplicationCommandOption {
	if opts == nil {
		return nil
	}

	cloned := make([]*discordgo.ApplicationCommandOption, len(opts))
	for i, opt := range opts {
		if opt == nil {
			continue
		}
		c := *opt
		c.NameLocalizations = maps.Clone(opt.NameLocalizations)
		c.DescriptionLocalizations = maps.Clone(opt.DescriptionLocalizations)
		c.ChannelTypes = slices.Clone(opt.ChannelTypes)
		c.Options = cloneOptions(opt.Options)
		if opt.MinValue != nil {
			v := *opt.MinValue
			c.MinValue = &v
		}
		if opt.MinLength != nil {
			v := *opt.MinLength
			c.MinLength = &v
		}
		if opt.Choices != nil {
			c.Choices = make([]*discordgo.ApplicationCommandOptionChoice, len(opt.Choices))
			for j, choice := range opt.Choices {
				if choice == nil {
					continue
				}
				cc := *choice
				cc.NameLocalizations = maps.Clone(choice.NameLocalizations)
				c.Choices[j] = &cc
			}
		}
		cloned[i] = &c
	}
	return cloned
}

// Permissions folds permission flag names into a single bitmask.
func Permissions(names []string) (int64, error) {
	var bits int64
	for _, name := range names {
		bit, ok := permissions[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownPermission, name)
		}
		bits |= bit
	}
	return bits, nil
}

// GlobalScope is the scope key for commands visible in every installation.
const GlobalScope = "global"

// Scopes maps scope keys to the commands registered in them, in insertion
// order. The global scope is always present.
type Scopes struct {
	order    []string
	commands map[string][]*discordgo.ApplicationCommand
}

func newScopes() *Scopes {
	s := &Scopes{commands: make(map[string][]*discordgo.ApplicationCommand)}
	s.ensure(GlobalScope)
	return s
}

func (s *Scopes) ensure(scope string) {
	if _, ok := s.commands[scope]; ok {
		return
	}
	s.order = append(s.order, scope)
	s.commands[scope] = make([]*discordgo.ApplicationCommand, 0)
}

func (s *Scopes) add(scope string, cmd *discordgo.ApplicationCommand) {
	s.ensure(scope)
	s.commands[scope] = append(s.commands[scope], cmd)
}

// Keys returns scope keys in insertion order, global first.
func (s *Scopes) Keys() []string {
	return slices.Clone(s.order)
}

// Commands returns the commands for scope. The result is never nil for a
// known scope.
func (s *Scopes) Commands(scope string) []*discordgo.ApplicationCommand {
	return s.commands[scope]
}

// Partition normalizes every declaration and groups the bodies by scope.
// A command targeting several guilds gets an independent copy per guild.
func Partition(data []Data) (*Scopes, error) {
	scopes := newScopes()

	for _, d := range data {
		cmd, err := Normalize(d)
		if err != nil {
			return nil, err
		}

		if len(d.Guilds) == 0 {
			scopes.add(GlobalScope, cmd)
			continue
		}

		for n, guildID := range d.Guilds {
			if _, err := snowflake.Parse(guildID); err != nil {
				return nil, fmt.Errorf("command %s: %w: %q", d.Name, ErrInvalidGuildID, guildID)
			}
			if n > 0 {
				// Normalize again so no pointer is shared between guilds.
				if cmd, err = Normalize(d); err != nil {
					return nil, err
				}
			}
			scopes.add(guildID, cmd)
		}
	}

	return scopes, nil
}
