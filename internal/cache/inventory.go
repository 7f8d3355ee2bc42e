package cache

import (
	"fmt"
	"time"
)

const (
	PostKeyPrefix = "post:%d"
	PostsListKey  = "posts"
	OTPKeyPrefix  = "otp:%s"
)

const (
	// PostTTL bounds how stale a cached post may get after a missed
	// invalidation. Matches the list TTL.
	PostTTL      = time.Hour
	PostsListTTL = time.Hour
	OTPTTL       = 10 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func OTPKey(email string) string {
	return fmt.Sprintf(OTPKeyPrefix, email)
}
