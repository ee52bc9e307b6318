package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUser_JSONKeepsOpaqueFields(t *testing.T) {
	in := `{"email":"u@x.com","name":"U","age":31,"photo":{"url":"http://p"}}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(in), &u))
	assert.Equal(t, "u@x.com", u.Email)
	assert.Equal(t, "U", u.Extra["name"])
	assert.Equal(t, json.Number("31"), u.Extra["age"])
	assert.NotContains(t, u.Extra, "email")

	out, err := json.Marshal(u)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "U", back["name"])
	assert.Equal(t, float64(31), back["age"])
	assert.Equal(t, []any{}, back["communities"])
	assert.NotContains(t, back, "_id", "zero id is not rendered")
}

func TestCommunity_TypedFieldsWinOverExtra(t *testing.T) {
	c := Community{
		ID:         primitive.NewObjectID(),
		AdminEmail: "a@x.com",
		Extra:      map[string]any{"adminEmail": "spoof@x.com", "name": "Go"},
	}
	out, err := json.Marshal(c)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "a@x.com", back["adminEmail"])
	assert.Equal(t, c.ID.Hex(), back["_id"])
	assert.Equal(t, []any{}, back["members"])
}

func TestCommunity_BSONInlineRoundTrip(t *testing.T) {
	c := Community{
		AdminEmail: "a@x.com",
		Members:    []string{"a@x.com"},
		Extra:      map[string]any{"name": "Gophers", "tags": []string{"go"}},
	}
	raw, err := bson.Marshal(c)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "Gophers", doc["name"])
	assert.NotContains(t, doc, "_id", "zero id is left to the store")

	var back Community
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, "a@x.com", back.AdminEmail)
	assert.True(t, back.HasMember("a@x.com"))
	assert.Equal(t, "Gophers", back.Extra["name"])
	assert.NotContains(t, back.Extra, "members")
}

func TestPost_CommunityIDIsRaw(t *testing.T) {
	var p Post
	require.NoError(t, json.Unmarshal([]byte(`{"communityID":"abc","text":"hi"}`), &p))
	assert.Equal(t, "abc", p.CommunityID)
	assert.Equal(t, map[string]any{"text": "hi"}, p.Extra)
}

func TestUser_BadIDRejected(t *testing.T) {
	var u User
	assert.Error(t, json.Unmarshal([]byte(`{"_id":"nope","email":"u@x.com"}`), &u))
}

func storedFromJSON(t *testing.T, in string, v any) bson.M {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(in), v))
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func TestCommunity_StoredAsSent(t *testing.T) {
	doc := storedFromJSON(t, `{"adminEmail":"a@x.com","members":[],"name":"C"}`, &Community{})
	require.Contains(t, doc, "members", "an empty members list is kept")
	assert.Len(t, doc["members"], 0)
	assert.Equal(t, "a@x.com", doc["adminEmail"])
	assert.Equal(t, "C", doc["name"])

	doc = storedFromJSON(t, `{"name":"C"}`, &Community{})
	assert.NotContains(t, doc, "members")
	assert.NotContains(t, doc, "adminEmail")

	doc = storedFromJSON(t, `{"adminEmail":"","members":null}`, &Community{})
	assert.Equal(t, "", doc["adminEmail"])
	require.Contains(t, doc, "members")
	assert.Len(t, doc["members"], 0)
}

func TestCommunity_BSONTypedFieldsWin(t *testing.T) {
	c := Community{AdminEmail: "a@x.com", Extra: map[string]any{"adminEmail": "spoof@x.com", "name": "Go"}}
	raw, err := bson.Marshal(c)
	require.NoError(t, err)

	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, bson.D{{Key: "adminEmail", Value: "a@x.com"}, {Key: "name", Value: "Go"}}, doc)
}

func TestPost_EmptyCommunityIDKept(t *testing.T) {
	doc := storedFromJSON(t, `{"communityID":"","text":"hi"}`, &Post{})
	require.Contains(t, doc, "communityID")
	assert.Equal(t, "", doc["communityID"])

	doc = storedFromJSON(t, `{"text":"hi"}`, &Post{})
	assert.NotContains(t, doc, "communityID")
}

func TestUser_StoredDocDecodesBack(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"email":"u@x.com","communities":[],"age":3}`), &u))
	raw, err := bson.Marshal(u)
	require.NoError(t, err)

	var back User
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, "u@x.com", back.Email)
	assert.Empty(t, back.Communities)
	assert.EqualValues(t, 3, back.Extra["age"])
	assert.NotContains(t, back.Extra, "communities")
}
