package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	profileKeyPrefix = "profile:user:%d"
	postKeyPrefix    = "post:%d"
	githubKeyPrefix  = "github:repos:%s"

	ProfileListKey = "profiles:all"
	PostsListKey   = "posts:all"
)

const (
	ProfileTTL     = 5 * time.Minute
	ProfileListTTL = 2 * time.Minute
	PostTTL        = 5 * time.Minute
	PostsListTTL   = time.Minute
	GithubTTL      = 10 * time.Minute
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(profileKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func GithubReposKey(username string) string {
	return fmt.Sprintf(githubKeyPrefix, username)
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
	Invalidate(ctx, ProfileListKey)
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, PostsListKey)
}
