package patient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Collection is the full record set keyed by patient id. It keeps insertion
// order, which is the order records appear in the persisted document and the
// order sort ties fall back to.
type Collection struct {
	ids     []string
	records map[string]Record
}

func NewCollection() *Collection {
	return &Collection{records: make(map[string]Record)}
}

func (c *Collection) Len() int {
	return len(c.ids)
}

func (c *Collection) Has(id string) bool {
	_, ok := c.records[id]
	return ok
}

func (c *Collection) Get(id string) (Record, bool) {
	r, ok := c.records[id]
	return r, ok
}

// Put stores r under id. A new id is appended; an existing id keeps its
// position.
func (c *Collection) Put(id string, r Record) {
	if c.records == nil {
		c.records = make(map[string]Record)
	}
	if _, ok := c.records[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.records[id] = r
}

// Delete removes id and reports whether it was present.
func (c *Collection) Delete(id string) bool {
	if _, ok := c.records[id]; !ok {
		return false
	}
	delete(c.records, id)
	for i, v := range c.ids {
		if v == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	return true
}

// IDs returns the ids in collection order.
func (c *Collection) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Records returns the bodies in collection order.
func (c *Collection) Records() []Record {
	out := make([]Record, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.records[id])
	}
	return out
}

func (c *Collection) Clone() *Collection {
	out := &Collection{
		ids:     c.IDs(),
		records: make(map[string]Record, len(c.records)),
	}
	for id, r := range c.records {
		out.records[id] = r
	}
	return out
}

func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range c.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(c.records[id])
		if err != nil {
			return nil, fmt.Errorf("encode patient %s: %w", id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of id -> body, keeping the key order of
// the document. Persisted bmi and verdict values are ignored.
func (c *Collection) UnmarshalJSON(data []byte) error {
	c.ids = nil
	c.records = make(map[string]Record)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("patient collection must be a JSON object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}
		var r Record
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("decode patient %s: %w", id, err)
		}
		c.Put(id, r)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
