package engagement

import "errors"

var (
	// ErrOwnPost rejects self-reactions: an author cannot like, repost,
	// bookmark or comment on their own post.
	ErrOwnPost = errors.New("you can not react to your own post")

	// ErrNotPostOwner guards the feedback flow: only the post owner may reply
	// to or like a comment on their post.
	ErrNotPostOwner = errors.New("you do not have permission to perform this action")

	// ErrNotFound means the referenced post or activity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoFeedSources means the caller follows nobody and has no followers,
	// so there is nothing to assemble a feed from.
	ErrNoFeedSources = errors.New("you do not have any followers or followings to view their posts")
)
