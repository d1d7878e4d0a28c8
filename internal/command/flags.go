package command

import "github.com/bwmarrin/discordgo"

// permissions maps permission flag names to their bit values. Flags newer
// than discordgo's constants are spelled out.
var permissions = map[string]int64{
	"CreateInstantInvite":              discordgo.PermissionCreateInstantInvite,
	"KickMembers":                      discordgo.PermissionKickMembers,
	"BanMembers":                       discordgo.PermissionBanMembers,
	"Administrator":                    discordgo.PermissionAdministrator,
	"ManageChannels":                   discordgo.PermissionManageChannels,
	"ManageGuild":                      discordgo.PermissionManageGuild,
	"AddReactions":                     discordgo.PermissionAddReactions,
	"ViewAuditLog":                     discordgo.PermissionViewAuditLogs,
	"PrioritySpeaker":                  discordgo.PermissionVoicePrioritySpeaker,
	"Stream":                           discordgo.PermissionVoiceStreamVideo,
	"ViewChannel":                      discordgo.PermissionViewChannel,
	"SendMessages":                     discordgo.PermissionSendMessages,
	"SendTTSMessages":                  discordgo.PermissionSendTTSMessages,
	"ManageMessages":                   discordgo.PermissionManageMessages,
	"EmbedLinks":                       discordgo.PermissionEmbedLinks,
	"AttachFiles":                      discordgo.PermissionAttachFiles,
	"ReadMessageHistory":               discordgo.PermissionReadMessageHistory,
	"MentionEveryone":                  discordgo.PermissionMentionEveryone,
	"UseExternalEmojis":                discordgo.PermissionUseExternalEmojis,
	"ViewGuildInsights":                discordgo.PermissionViewGuildInsights,
	"Connect":                          discordgo.PermissionVoiceConnect,
	"Speak":                            discordgo.PermissionVoiceSpeak,
	"MuteMembers":                      discordgo.PermissionVoiceMuteMembers,
	"DeafenMembers":                    discordgo.PermissionVoiceDeafenMembers,
	"MoveMembers":                      discordgo.PermissionVoiceMoveMembers,
	"UseVAD":                           discordgo.PermissionVoiceUseVAD,
	"ChangeNickname":                   discordgo.PermissionChangeNickname,
	"ManageNicknames":                  discordgo.PermissionManageNicknames,
	"ManageRoles":                      discordgo.PermissionManageRoles,
	"ManageWebhooks":                   discordgo.PermissionManageWebhooks,
	"ManageGuildExpressions":           discordgo.PermissionManageGuildExpressions,
	"UseApplicationCommands":           discordgo.PermissionUseApplicationCommands,
	"RequestToSpeak":                   discordgo.PermissionVoiceRequestToSpeak,
	"ManageEvents":                     discordgo.PermissionManageEvents,
	"ManageThreads":                    discordgo.PermissionManageThreads,
	"CreatePublicThreads":              discordgo.PermissionCreatePublicThreads,
	"CreatePrivateThreads":             discordgo.PermissionCreatePrivateThreads,
	"UseExternalStickers":              discordgo.PermissionUseExternalStickers,
	"SendMessagesInThreads":            discordgo.PermissionSendMessagesInThreads,
	"UseEmbeddedActivities":            discordgo.PermissionUseEmbeddedActivities,
	"ModerateMembers":                  discordgo.PermissionModerateMembers,
	"ViewCreatorMonetizationAnalytics": discordgo.PermissionViewCreatorMonetizationAnalytics,
	"UseSoundboard":                    discordgo.PermissionUseSoundboard,
	"CreateGuildExpressions":           discordgo.PermissionCreateGuildExpressions,
	"CreateEvents":                     discordgo.PermissionCreateEvents,
	"UseExternalSounds":                discordgo.PermissionUseExternalSounds,
	"SendVoiceMessages":                discordgo.PermissionSendVoiceMessages,
	"SetVoiceChannelStatus":            1 << 48,
	"SendPolls":                        discordgo.PermissionSendPolls,
	"UseExternalApps":                  discordgo.PermissionUseExternalApps,
	"PinMessages":                      1 << 51,
	"BypassSlowmode":                   1 << 52,
}

var contexts = map[string]discordgo.InteractionContextType{
	"Guild":          discordgo.InteractionContextGuild,
	"BotDM":          discordgo.InteractionContextBotDM,
	"PrivateChannel": discordgo.InteractionContextPrivateChannel,
}

// integrationTypes is keyed by "<Type>Install".
var integrationTypes = map[string]discordgo.ApplicationIntegrationType{
	"GuildInstall": discordgo.ApplicationIntegrationGuildInstall,
	"UserInstall":  discordgo.ApplicationIntegrationUserInstall,
}
