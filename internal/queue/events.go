package queue

// Routing keys on the community events exchange.
const (
	KeyUserRegistered   = "user.registered"
	KeyCommunityCreated = "community.created"
	KeyMemberJoined     = "member.joined"
	KeyMemberLeft       = "member.left"
	KeyPostCreated      = "post.created"
)

// Event is a message body published on the events exchange under its own
// routing key.
type Event interface {
	RoutingKey() string
}

type UserRegistered struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type CommunityCreated struct {
	CommunityID string `json:"community_id"`
	AdminEmail  string `json:"admin_email"`
}

type MemberJoined struct {
	CommunityID string `json:"community_id"`
	Email       string `json:"email"`
}

type MemberLeft struct {
	CommunityID string `json:"community_id"`
	Email       string `json:"email"`
}

type PostCreated struct {
	PostID      string `json:"post_id"`
	CommunityID string `json:"community_id"`
}

func (UserRegistered) RoutingKey() string   { return KeyUserRegistered }
func (CommunityCreated) RoutingKey() string { return KeyCommunityCreated }
func (MemberJoined) RoutingKey() string     { return KeyMemberJoined }
func (MemberLeft) RoutingKey() string       { return KeyMemberLeft }
func (PostCreated) RoutingKey() string      { return KeyPostCreated }
