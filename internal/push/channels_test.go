package push

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelForType(t *testing.T) {
	tests := []struct {
		notificationType string
		wantChannel      string
		wantCategory     string
	}{
		{"direct_message", ChannelMessages, CategoryMessages},
		{"club_message", ChannelMessages, CategoryMessages},
		{"new_follow", ChannelSocial, CategorySocial},
		{"like", ChannelSocial, CategorySocial},
		{"dislike", ChannelSocial, CategorySocial},
		{"comment", ChannelSocial, CategorySocial},
		{"profile_update", ChannelSocial, CategorySocial},
		{"club_join_request", ChannelClubs, CategoryClubs},
		{"club_join_approved", ChannelClubs, CategoryClubs},
		{"club_join_rejected", ChannelClubs, CategoryClubs},
		{"club_post", ChannelClubs, CategoryClubs},
		{"club_created", ChannelClubs, CategoryClubs},
		{"club_joined", ChannelClubs, CategoryClubs},
		{"club_deleted", ChannelClubs, CategoryClubs},
		{"club_removed", ChannelClubs, CategoryClubs},
		{"club_exited", ChannelClubs, CategoryClubs},
		{"follower_post", ChannelPosts, CategoryPosts},
		{"following_post", ChannelPosts, CategoryPosts},
		{"new_post", ChannelPosts, CategoryPosts},
		{"new_club_nearby", ChannelPosts, CategoryPosts},
		{"nearby_club", ChannelPosts, CategoryPosts},
		{"post_upload", ChannelSystem, CategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.notificationType, func(t *testing.T) {
			assert.Equal(t, tt.wantChannel, ChannelForType(tt.notificationType))
			assert.Equal(t, tt.wantCategory, CategoryForType(tt.notificationType))
		})
	}
}

func TestChannelForTypeUnknownFallsBackToSystem(t *testing.T) {
	for _, unknown := range []string{"", "default", "bogus", "LIKE", "club-message"} {
		assert.Equal(t, ChannelSystem, ChannelForType(unknown), "type %q", unknown)
		assert.Equal(t, CategorySystem, CategoryForType(unknown), "type %q", unknown)
	}
}
