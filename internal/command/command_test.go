package command

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Defaults(t *testing.T) {
	cmd, err := Normalize(Data{Name: "ping"})
	require.NoError(t, err)

	assert.Equal(t, "ping", cmd.Name)
	assert.Equal(t, discordgo.ChatApplicationCommand, cmd.Type)
	assert.Equal(t, DefaultDescription, cmd.Description)
	assert.Nil(t, cmd.DefaultMemberPermissions)
	assert.Nil(t, cmd.Contexts)
	assert.Nil(t, cmd.IntegrationTypes)
}

func TestNormalize_KeepsDescription(t *testing.T) {
	cmd, err := Normalize(Data{Name: "ping", Description: "Replies with Pong!"})
	require.NoError(t, err)
	assert.Equal(t, "Replies with Pong!", cmd.Description)
}

func TestNormalize_NonChatInputHasNoDefaultDescription(t *testing.T) {
	cmd, err := Normalize(Data{Name: "Inspect", Type: discordgo.UserApplicationCommand})
	require.NoError(t, err)

	assert.Equal(t, discordgo.UserApplicationCommand, cmd.Type)
	assert.Empty(t, cmd.Description)
}

func TestNormalize_Permissions(t *testing.T) {
	cmd, err := Normalize(Data{
		Name:                     "kick",
		DefaultMemberPermissions: []string{"ManageGuild", "KickMembers"},
	})
	require.NoError(t, err)
	require.NotNil(t, cmd.DefaultMemberPermissions)
	assert.Equal(t, int64(1<<5|1<<1), *cmd.DefaultMemberPermissions)

	raw, err := json.Marshal(cmd)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, strconv.FormatInt(1<<5|1<<1, 10), body["default_member_permissions"])
}

func TestNormalize_PermissionsBeyondFloatPrecision(t *testing.T) {
	bits, err := Permissions([]string{"UseExternalApps", "CreateInstantInvite"})
	require.NoError(t, err)
	assert.Equal(t, int64(1<<50|1), bits)
	assert.Equal(t, "1125899906842625", strconv.FormatInt(bits, 10))
}

func TestPermissions_NewerFlags(t *testing.T) {
	tests := map[string]int64{
		"SetVoiceChannelStatus": 1 << 48,
		"PinMessages":           1 << 51,
		"BypassSlowmode":        1 << 52,
		"ViewAuditLog":          discordgo.PermissionViewAuditLogs,
		"Stream":                discordgo.PermissionVoiceStreamVideo,
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			bits, err := Permissions([]string{name})
			require.NoError(t, err)
			assert.Equal(t, want, bits)
		})
	}
}

func TestNormalize_EmptyPermissionsMeansAdministratorsOnly(t *testing.T) {
	cmd, err := Normalize(Data{Name: "admin", DefaultMemberPermissions: []string{}})
	require.NoError(t, err)
	require.NotNil(t, cmd.DefaultMemberPermissions)
	assert.Zero(t, *cmd.DefaultMemberPermissions)
}

func TestNormalize_UnknownPermission(t *testing.T) {
	_, err := Normalize(Data{Name: "x", DefaultMemberPermissions: []string{"Fly"}})
	assert.ErrorIs(t, err, ErrUnknownPermission)
}

func TestNormalize_ContextsDeduplicated(t *testing.T) {
	cmd, err := Normalize(Data{
		Name:     "ping",
		Contexts: []string{"PrivateChannel", "Guild", "PrivateChannel", "BotDM", "Guild"},
	})
	require.NoError(t, err)
	require.NotNil(t, cmd.Contexts)
	assert.Equal(t, []discordgo.InteractionContextType{
		discordgo.InteractionContextPrivateChannel,
		discordgo.InteractionContextGuild,
		discordgo.InteractionContextBotDM,
	}, *cmd.Contexts)
}

func TestNormalize_UnknownContext(t *testing.T) {
	_, err := Normalize(Data{Name: "x", Contexts: []string{"Everywhere"}})
	assert.ErrorIs(t, err, ErrUnknownContext)
}

func TestNormalize_IntegrationType(t *testing.T) {
	cmd, err := Normalize(Data{Name: "ping", IntegrationType: "User"})
	require.NoError(t, err)
	require.NotNil(t, cmd.IntegrationTypes)
	assert.Equal(t, []discordgo.ApplicationIntegrationType{
		discordgo.ApplicationIntegrationUserInstall,
	}, *cmd.IntegrationTypes)

	_, err = Normalize(Data{Name: "ping", IntegrationType: "Channel"})
	assert.ErrorIs(t, err, ErrUnknownIntegrationType)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	opts := []*discordgo.ApplicationCommandOption{{Name: "query"}}
	d := Data{Name: "play", Options: opts, Contexts: []string{"Guild", "Guild"}}

	_, err := Normalize(d)
	require.NoError(t, err)

	assert.Zero(t, d.Type)
	assert.Empty(t, d.Description)
	assert.Equal(t, []string{"Guild", "Guild"}, d.Contexts)
	assert.Len(t, d.Options, 1)
}

func TestPartition_GlobalAlwaysPresent(t *testing.T) {
	scopes, err := Partition(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{GlobalScope}, scopes.Keys())
	assert.NotNil(t, scopes.Commands(GlobalScope))
	assert.Empty(t, scopes.Commands(GlobalScope))
}

func TestPartition_MultipleGuildsGetIndependentCopies(t *testing.T) {
	scopes, err := Partition([]Data{
		{
			Name:                     "admin",
			Options:                  []*discordgo.ApplicationCommandOption{{Name: "user", Type: discordgo.ApplicationCommandOptionUser}},
			NSFW:                     true,
			DefaultMemberPermissions: []string{"KickMembers"},
			Contexts:                 []string{"Guild"},
			IntegrationType:          "Guild",
			Guilds:                   []string{"111", "222"},
		},
		{Name: "ping"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{GlobalScope, "111", "222"}, scopes.Keys())

	a := scopes.Commands("111")
	b := scopes.Commands("222")
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.NotSame(t, a[0], b[0])
	assert.Equal(t, a[0], b[0])
	assert.NotSame(t, a[0].DefaultMemberPermissions, b[0].DefaultMemberPermissions)
	assert.NotSame(t, a[0].Contexts, b[0].Contexts)
	assert.NotSame(t, a[0].IntegrationTypes, b[0].IntegrationTypes)
	assert.NotSame(t, a[0].NSFW, b[0].NSFW)

	*a[0].DefaultMemberPermissions = discordgo.PermissionAdministrator
	a[0].Options[0].Name = "member"
	assert.Equal(t, int64(discordgo.PermissionKickMembers), *b[0].DefaultMemberPermissions)
	assert.Equal(t, "user", b[0].Options[0].Name)

	require.Len(t, scopes.Commands(GlobalScope), 1)
	assert.Equal(t, "ping", scopes.Commands(GlobalScope)[0].Name)
}

func TestPartition_InvalidGuild(t *testing.T) {
	_, err := Partition([]Data{{Name: "x", Guilds: []string{"not-a-guild"}}})
	assert.ErrorIs(t, err, ErrInvalidGuildID)
}

type overwriteCall struct {
	appID   string
	guildID string
	names   []string
	body    string
}

type fakeOverwriter struct {
	calls   []overwriteCall
	failFor string
	err     error
}

func (f *fakeOverwriter) ApplicationCommandBulkOverwrite(
	appID string,
	guildID string,
	commands []*discordgo.ApplicationCommand,
	_ ...discordgo.RequestOption,
) ([]*discordgo.ApplicationCommand, error) {
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name)
	}
	raw, _ := json.Marshal(commands)
	f.calls = append(f.calls, overwriteCall{appID: appID, guildID: guildID, names: names, body: string(raw)})

	if f.err != nil && guildID == f.failFor {
		return nil, f.err
	}
	return commands, nil
}

const appID = "123456789012345678"

func TestInstall_GuildAndGlobal(t *testing.T) {
	o := &fakeOverwriter{}

	err := Install(context.Background(), o, appID, []Data{
		{Name: "admin", Guilds: []string{"123"}},
		{Name: "ping"},
	})
	require.NoError(t, err)

	require.Len(t, o.calls, 2)
	assert.Equal(t, "", o.calls[0].guildID)
	assert.Equal(t, []string{"ping"}, o.calls[0].names)
	assert.Equal(t, "123", o.calls[1].guildID)
	assert.Equal(t, []string{"admin"}, o.calls[1].names)
	for _, c := range o.calls {
		assert.Equal(t, appID, c.appID)
	}
}

func TestInstall_EmptyGlobalStillOverwritten(t *testing.T) {
	o := &fakeOverwriter{}

	err := Install(context.Background(), o, appID, []Data{
		{Name: "admin", Guilds: []string{"123"}},
	})
	require.NoError(t, err)

	require.Len(t, o.calls, 2)
	assert.Equal(t, "", o.calls[0].guildID)
	assert.Empty(t, o.calls[0].names)
	assert.Equal(t, "[]", o.calls[0].body, "global reset must send an empty array")
}

func TestInstall_Idempotent(t *testing.T) {
	data := []Data{
		{Name: "admin", Guilds: []string{"123", "456"}, DefaultMemberPermissions: []string{"Administrator"}},
		{Name: "ping", Contexts: []string{"Guild"}},
	}

	first := &fakeOverwriter{}
	second := &fakeOverwriter{}
	require.NoError(t, Install(context.Background(), first, appID, data))
	require.NoError(t, Install(context.Background(), second, appID, data))

	assert.Equal(t, first.calls, second.calls)
}

func TestInstall_PropagatesFailure(t *testing.T) {
	apiErr := errors.New("HTTP 500")
	o := &fakeOverwriter{failFor: "", err: apiErr}

	err := Install(context.Background(), o, appID, []Data{
		{Name: "ping"},
		{Name: "admin", Guilds: []string{"123"}},
	})
	require.ErrorIs(t, err, apiErr)
	assert.Len(t, o.calls, 1, "guild scopes are not attempted after a failure")
}

func TestInstall_InvalidDeclarationMakesNoCalls(t *testing.T) {
	o := &fakeOverwriter{}

	err := Install(context.Background(), o, appID, []Data{
		{Name: "ping"},
		{Name: "bad", DefaultMemberPermissions: []string{"Fly"}},
	})
	require.ErrorIs(t, err, ErrUnknownPermission)
	assert.Empty(t, o.calls)
}

func TestInstall_InvalidApplicationID(t *testing.T) {
	o := &fakeOverwriter{}

	err := Install(context.Background(), o, "app", nil)
	require.Error(t, err)
	assert.Empty(t, o.calls)
}
