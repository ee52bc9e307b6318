package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Post belongs to a community through CommunityID, stored exactly as the
// client sent it (a string, not an ObjectID).
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CommunityID string             `bson:"communityID"`
	Extra       map[string]any     `bson:",inline"`

	sent []string
}

type postJSON struct {
	ID          primitive.ObjectID `json:"_id"`
	CommunityID string             `json:"communityID"`
}

func (p *Post) UnmarshalJSON(data []byte) error {
	var v postJSON
	extra, sent, err := splitJSON(data, &v, "_id", "communityID")
	if err != nil {
		return err
	}
	*p = Post{ID: v.ID, CommunityID: v.CommunityID, Extra: extra, sent: sent}
	return nil
}

func (p Post) MarshalJSON() ([]byte, error) {
	typed := map[string]any{"communityID": p.CommunityID}
	if !p.ID.IsZero() {
		typed["_id"] = p.ID
	}
	return joinJSON(p.Extra, typed)
}

func (p Post) MarshalBSON() ([]byte, error) {
	d := storedDoc{sent: p.sent}
	d.id(p.ID)
	d.str("communityID", p.CommunityID)
	return d.marshal(p.Extra)
}
