package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered platform user. Email is the natural key and is never
// changed by the service. Communities lists joined community ids as hex strings.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Email       string             `bson:"email"`
	Communities []string           `bson:"communities"`
	Extra       map[string]any     `bson:",inline"`

	sent []string
}

type userJSON struct {
	ID          primitive.ObjectID `json:"_id"`
	Email       string             `json:"email"`
	Communities []string           `json:"communities"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	var v userJSON
	extra, sent, err := splitJSON(data, &v, "_id", "email", "communities")
	if err != nil {
		return err
	}
	*u = User{ID: v.ID, Email: v.Email, Communities: v.Communities, Extra: extra, sent: sent}
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	typed := map[string]any{
		"email":       u.Email,
		"communities": nonNil(u.Communities),
	}
	if !u.ID.IsZero() {
		typed["_id"] = u.ID
	}
	return joinJSON(u.Extra, typed)
}

func (u User) MarshalBSON() ([]byte, error) {
	d := storedDoc{sent: u.sent}
	d.id(u.ID)
	d.str("email", u.Email)
	d.list("communities", u.Communities)
	return d.marshal(u.Extra)
}
