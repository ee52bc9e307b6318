package domain

import (
	"bytes"
	"encoding/json"
	"slices"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// splitJSON decodes data twice: once into the typed view v and once into a
// generic map from which the typed keys are removed. The remainder is what
// the client sent that the service does not interpret; sent lists the typed
// keys that were present, even with empty values.
func splitJSON(data []byte, v any, known ...string) (extra map[string]any, sent []string, err error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var all map[string]any
	if err := dec.Decode(&all); err != nil {
		return nil, nil, err
	}
	for _, k := range known {
		if _, ok := all[k]; ok {
			sent = append(sent, k)
			delete(all, k)
		}
	}
	if len(all) == 0 {
		return nil, sent, nil
	}
	return all, sent, nil
}

// joinJSON renders extra and typed fields as one flat object. Typed fields win.
func joinJSON(extra map[string]any, typed map[string]any) ([]byte, error) {
	out := make(map[string]any, len(extra)+len(typed))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range typed {
		out[k] = v
	}
	return json.Marshal(out)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// storedDoc builds the document written on insert. A typed field is stored
// when it holds a value or the client sent it, so `"members": []` and
// `"communityID": ""` reach the store unchanged.
type storedDoc struct {
	sent []string
	doc  bson.D
}

func (d *storedDoc) id(id primitive.ObjectID) {
	if !id.IsZero() {
		d.doc = append(d.doc, bson.E{Key: "_id", Value: id})
	}
}

func (d *storedDoc) str(key, v string) {
	if v != "" || slices.Contains(d.sent, key) {
		d.doc = append(d.doc, bson.E{Key: key, Value: v})
	}
}

// list stores an explicit null as an empty array; $push needs an array.
func (d *storedDoc) list(key string, v []string) {
	if v != nil || slices.Contains(d.sent, key) {
		d.doc = append(d.doc, bson.E{Key: key, Value: nonNil(v)})
	}
}

func (d *storedDoc) has(key string) bool {
	return slices.ContainsFunc(d.doc, func(e bson.E) bool { return e.Key == key })
}

// marshal appends the opaque fields and encodes. Typed keys win over extra.
func (d *storedDoc) marshal(extra map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "_id" || d.has(k) {
			continue
		}
		d.doc = append(d.doc, bson.E{Key: k, Value: extra[k]})
	}
	return bson.Marshal(d.doc)
}
