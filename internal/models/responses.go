package models

import "time"

// Wire representations. Authors and follow participants are serialized
// by username, matching the public API contract.

// PostResponse is the JSON shape of a post.
type PostResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Image   *string   `json:"image"`
	Group   *uint     `json:"group"`
}

// NewPostResponse builds the wire shape of a post. The Author
// association must be preloaded.
func NewPostResponse(p *Post) PostResponse {
	resp := PostResponse{
		ID:      p.ID,
		Author:  p.Author.Username,
		Text:    p.Text,
		PubDate: p.PubDate,
		Group:   p.GroupID,
	}
	if p.Image != "" {
		img := p.Image
		resp.Image = &img
	}
	return resp
}

// NewPostResponses maps a post collection to its wire shape.
// It always returns a non-nil slice so empty collections serialize as [].
func NewPostResponses(posts []*Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResponse(p))
	}
	return out
}

// CommentResponse is the JSON shape of a comment.
type CommentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
	Post    uint      `json:"post"`
}

// NewCommentResponse builds the wire shape of a comment. The Author
// association must be preloaded.
func NewCommentResponse(cm *Comment) CommentResponse {
	return CommentResponse{
		ID:      cm.ID,
		Author:  cm.Author.Username,
		Text:    cm.Text,
		Created: cm.Created,
		Post:    cm.PostID,
	}
}

// NewCommentResponses maps a comment collection to its wire shape.
func NewCommentResponses(comments []*Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, NewCommentResponse(cm))
	}
	return out
}

// FollowResponse is the JSON shape of a follow relationship.
type FollowResponse struct {
	User      string `json:"user"`
	Following string `json:"following"`
}

// NewFollowResponse builds the wire shape of a follow. Both user
// associations must be preloaded.
func NewFollowResponse(f *Follow) FollowResponse {
	return FollowResponse{
		User:      f.User.Username,
		Following: f.Following.Username,
	}
}

// NewFollowResponses maps a follow collection to its wire shape.
func NewFollowResponses(follows []*Follow) []FollowResponse {
	out := make([]FollowResponse, 0, len(follows))
	for _, f := range follows {
		out = append(out, NewFollowResponse(f))
	}
	return out
}

// PageResponse is the windowed envelope returned when a list request
// carries pagination parameters.
type PageResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}
