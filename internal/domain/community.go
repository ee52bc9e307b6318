package domain

import (
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Community is owned by AdminEmail. Members holds user emails and is kept
// free of duplicates by the membership operations.
type Community struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	AdminEmail string             `bson:"adminEmail"`
	Members    []string           `bson:"members"`
	Extra      map[string]any     `bson:",inline"`

	sent []string
}

type communityJSON struct {
	ID         primitive.ObjectID `json:"_id"`
	AdminEmail string             `json:"adminEmail"`
	Members    []string           `json:"members"`
}

func (c *Community) HasMember(email string) bool {
	return slices.Contains(c.Members, email)
}

func (c *Community) UnmarshalJSON(data []byte) error {
	var v communityJSON
	extra, sent, err := splitJSON(data, &v, "_id", "adminEmail", "members")
	if err != nil {
		return err
	}
	*c = Community{ID: v.ID, AdminEmail: v.AdminEmail, Members: v.Members, Extra: extra, sent: sent}
	return nil
}

func (c Community) MarshalJSON() ([]byte, error) {
	typed := map[string]any{
		"adminEmail": c.AdminEmail,
		"members":    nonNil(c.Members),
	}
	if !c.ID.IsZero() {
		typed["_id"] = c.ID
	}
	return joinJSON(c.Extra, typed)
}

func (c Community) MarshalBSON() ([]byte, error) {
	d := storedDoc{sent: c.sent}
	d.id(c.ID)
	d.str("adminEmail", c.AdminEmail)
	d.list("members", c.Members)
	return d.marshal(c.Extra)
}
