package push

// Android notification channels the client app registers.
const (
	ChannelMessages = "messages"
	ChannelSocial   = "social"
	ChannelClubs    = "clubs"
	ChannelPosts    = "posts"
	ChannelSystem   = "system"
)

// iOS notification categories the client app registers.
const (
	CategoryMessages = "MESSAGES_CATEGORY"
	CategorySocial   = "SOCIAL_CATEGORY"
	CategoryClubs    = "CLUBS_CATEGORY"
	CategoryPosts    = "POSTS_CATEGORY"
	CategorySystem   = "SYSTEM_CATEGORY"
)

// typeChannels maps a notification type to its Android channel. Both the
// direct-send and retry paths compose messages through this table, so the
// two can never disagree on presentation.
var typeChannels = map[string]string{
	"direct_message":     ChannelMessages,
	"club_message":       ChannelMessages,
	"new_follow":         ChannelSocial,
	"like":               ChannelSocial,
	"dislike":            ChannelSocial,
	"comment":            ChannelSocial,
	"profile_update":     ChannelSocial,
	"club_join_request":  ChannelClubs,
	"club_join_approved": ChannelClubs,
	"club_join_rejected": ChannelClubs,
	"club_post":          ChannelClubs,
	"club_created":       ChannelClubs,
	"club_joined":        ChannelClubs,
	"club_deleted":       ChannelClubs,
	"club_removed":       ChannelClubs,
	"club_exited":        ChannelClubs,
	"follower_post":      ChannelPosts,
	"following_post":     ChannelPosts,
	"new_post":           ChannelPosts,
	"new_club_nearby":    ChannelPosts,
	"nearby_club":        ChannelPosts,
	"post_upload":        ChannelSystem,
}

var channelCategories = map[string]string{
	ChannelMessages: CategoryMessages,
	ChannelSocial:   CategorySocial,
	ChannelClubs:    CategoryClubs,
	ChannelPosts:    CategoryPosts,
	ChannelSystem:   CategorySystem,
}

// ChannelForType returns the Android channel for a notification type.
// Unknown or empty types fall back to the system channel.
func ChannelForType(notificationType string) string {
	if ch, ok := typeChannels[notificationType]; ok {
		return ch
	}
	return ChannelSystem
}

// CategoryForType returns the iOS category for a notification type.
// Unknown or empty types fall back to the system category.
func CategoryForType(notificationType string) string {
	return channelCategories[ChannelForType(notificationType)]
}
