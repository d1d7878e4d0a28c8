package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// Overwriter replaces every command registered in a scope. An empty guildID
// targets global commands. *discordgo.Session implements it.
type Overwriter interface {
	ApplicationCommandBulkOverwrite(
		appID string,
		guildID string,
		commands []*discordgo.ApplicationCommand,
		options ...discordgo.RequestOption,
	) ([]*discordgo.ApplicationCommand, error)
}

// Compile-time interface check.
var _ Overwriter = (*discordgo.Session)(nil)

// Install normalizes data and overwrites the commands of every scope it
// targets. The global scope is always overwritten, even when empty, so that
// stale global commands are removed. The first failing call aborts the
// install and its error is returned.
func Install(ctx context.Context, o Overwriter, appID string, data []Data) error {
	if _, err := snowflake.Parse(appID); err != nil {
		return fmt.Errorf("invalid application ID %q: %w", appID, err)
	}

	scopes, err := Partition(data)
	if err != nil {
		return err
	}

	for _, scope := range scopes.Keys() {
		cmds := scopes.Commands(scope)

		guildID := scope
		if scope == GlobalScope {
			guildID = ""
		}

		if _, err := o.ApplicationCommandBulkOverwrite(
			appID,
			guildID,
			cmds,
			discordgo.WithContext(ctx),
		); err != nil {
			return fmt.Errorf("failed to overwrite %s commands: %w", scope, err)
		}

		slog.Info("overwrote commands", "scope", scope, "count", len(cmds))
	}

	return nil
}
