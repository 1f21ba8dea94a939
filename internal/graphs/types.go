package graphs

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/psidex/citygraph/internal/errors"
)

type idKind uint8

const (
	idNone idKind = iota
	idString
	idNumber
	idOther
)

// ID is a node identifier as it appears in a graph document: a JSON string or number.
// Anything else (null, booleans, objects) decodes to an invalid ID and is preserved
// verbatim when re-encoded.
type ID struct {
	kind idKind
	str  string
	num  float64
	raw  json.RawMessage
}

func StringID(s string) ID {
	return ID{kind: idString, str: s}
}

func NumberID(f float64) ID {
	return ID{kind: idNumber, num: f}
}

// Valid reports whether the ID can take part in neighbor indexing: numbers other than
// NaN and non-empty strings.
func (id ID) Valid() bool {
	switch id.kind {
	case idString:
		return id.str != ""
	case idNumber:
		return !math.IsNaN(id.num)
	default:
		return false
	}
}

func (id ID) IsNumber() bool {
	return id.kind == idNumber
}

// Int returns the identifier as an int when it is an integral JSON number. Strings
// never convert, so "5" and 5 stay distinct.
func (id ID) Int() (int, bool) {
	if id.kind != idNumber || id.num != math.Trunc(id.num) || math.Abs(id.num) > math.MaxInt32 {
		return 0, false
	}
	return int(id.num), true
}

// Key is the canonical map key for the ID. Numbers use their JSON spelling, so the
// number 1 and the string "1" share a key.
func (id ID) Key() string {
	switch id.kind {
	case idString:
		return id.str
	case idNumber:
		return formatNumber(id.num)
	default:
		return ""
	}
}

func (id ID) String() string {
	return id.Key()
}

func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case idString:
		return json.Marshal(id.str)
	case idNumber:
		return json.Marshal(id.num)
	case idOther:
		return id.raw, nil
	default:
		return []byte("null"), nil
	}
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ID{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StringID(s)
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		*id = NumberID(f)
	default:
		*id = ID{kind: idOther, raw: append(json.RawMessage(nil), b...)}
	}
	return nil
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	b, _ := json.Marshal(f)
	return string(b)
}

// Coord is one position component. Saved graphs carry positions either as JSON
// numbers or as numeric strings; Normalize turns the latter into numbers.
type Coord struct {
	num     float64
	text    string
	numeric bool
}

func Num(f float64) Coord {
	return Coord{num: f, numeric: true}
}

func Text(s string) Coord {
	return Coord{text: s}
}

// Float returns the numeric value and whether the coord is already numeric.
func (c Coord) Float() (float64, bool) {
	return c.num, c.numeric
}

// truthy mirrors how the frontend decides a position is set: non-zero numbers and
// non-empty strings.
func (c Coord) truthy() bool {
	if c.numeric {
		return c.num != 0 && !math.IsNaN(c.num)
	}
	return c.text != ""
}

// numericValue converts a string coord with number coercion rules: surrounding space is
// ignored, blank is 0, anything unparsable is NaN. Parsing is strconv.ParseFloat, which
// is close to but not the same as a browser's unary plus: "inf" parses as infinity here
// while hex like "0x10" becomes NaN instead of 16.
func (c Coord) numericValue() Coord {
	if c.numeric {
		return c
	}
	s := strings.TrimSpace(c.text)
	if s == "" {
		return Num(0)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Num(math.NaN())
	}
	return Num(f)
}

func (c Coord) MarshalJSON() ([]byte, error) {
	if !c.numeric {
		return json.Marshal(c.text)
	}
	if math.IsNaN(c.num) || math.IsInf(c.num, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(c.num)
}

func (c *Coord) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = Num(math.NaN())
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Text(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return errors.Wrap(err, "position must be a number or a numeric string")
	}
	*c = Num(f)
	return nil
}

// Endpoint is a link's source or target: either a bare identifier or an object
// carrying an "id" member (the shape a force layout leaves behind once it has
// resolved links to node objects). The original shape survives re-encoding.
type Endpoint struct {
	ID  ID
	obj json.RawMessage
}

// Ref builds a bare-identifier endpoint.
func Ref(id ID) Endpoint {
	return Endpoint{ID: id}
}

func (e Endpoint) MarshalJSON() ([]byte, error) {
	if e.obj != nil {
		return e.obj, nil
	}
	return e.ID.MarshalJSON()
}

func (e *Endpoint) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		*e = Endpoint{}
		return e.ID.UnmarshalJSON(b)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*e = Endpoint{obj: append(json.RawMessage(nil), b...)}
	if raw, ok := fields["id"]; ok {
		return e.ID.UnmarshalJSON(raw)
	}
	return nil
}

// NodeText is one passage attached to a node.
type NodeText struct {
	ID   ID     `json:"id"`
	Text string `json:"text"`
}

// NodeData is the free-form node payload. The fields are a read-only view of the
// members renderers use; members of the wrong type read as zero values, and the
// payload is re-encoded exactly as it arrived.
type NodeData struct {
	Texts []NodeText `json:"texts,omitempty"`
	Color string     `json:"color,omitempty"`
	Size  float64    `json:"size,omitempty"`

	raw json.RawMessage
}

func (d *NodeData) UnmarshalJSON(b []byte) error {
	*d = NodeData{raw: append(json.RawMessage(nil), b...)}

	var members map[string]json.RawMessage
	if json.Unmarshal(b, &members) != nil {
		return nil
	}
	var texts []json.RawMessage
	if json.Unmarshal(members["texts"], &texts) == nil {
		for _, raw := range texts {
			var t map[string]json.RawMessage
			if json.Unmarshal(raw, &t) != nil {
				continue
			}
			text := NodeText{}
			_ = text.ID.UnmarshalJSON(t["id"])
			_ = json.Unmarshal(t["text"], &text.Text)
			d.Texts = append(d.Texts, text)
		}
	}
	_ = json.Unmarshal(members["color"], &d.Color)
	if raw, ok := members["size"]; ok {
		var size Coord
		if size.UnmarshalJSON(raw) == nil {
			if f, _ := size.numericValue().Float(); !math.IsNaN(f) && !math.IsInf(f, 0) {
				d.Size = f
			}
		}
	}
	return nil
}

func (d *NodeData) MarshalJSON() ([]byte, error) {
	if d.raw != nil {
		return d.raw, nil
	}
	type view NodeData
	return json.Marshal((*view)(d))
}

// LinkData is the free-form link payload, read and re-encoded like NodeData.
type LinkData struct {
	ID          ID     `json:"id"`
	Explanation string `json:"explanation,omitempty"`
	Color       string `json:"color,omitempty"`

	raw json.RawMessage
}

func (d *LinkData) UnmarshalJSON(b []byte) error {
	*d = LinkData{raw: append(json.RawMessage(nil), b...)}

	var members map[string]json.RawMessage
	if json.Unmarshal(b, &members) != nil {
		return nil
	}
	_ = d.ID.UnmarshalJSON(members["id"])
	_ = json.Unmarshal(members["explanation"], &d.Explanation)
	_ = json.Unmarshal(members["color"], &d.Color)
	return nil
}

func (d *LinkData) MarshalJSON() ([]byte, error) {
	if d.raw != nil {
		return d.raw, nil
	}
	type view LinkData
	return json.Marshal((*view)(d))
}

// Node is a graph vertex. A decoded node keeps every member it arrived with;
// encoding writes them back and overlays only x, y, neighbors and linkCount.
// Neighbors and LinkCount are filled in by Normalize.
type Node struct {
	ID        ID
	Label     string
	X         *Coord
	Y         *Coord
	Data      *NodeData
	Neighbors []ID
	LinkCount int

	members map[string]json.RawMessage
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(b, &members); err != nil {
		return errors.Wrap(err, "node must be an object")
	}
	*n = Node{members: members}

	if err := n.ID.UnmarshalJSON(members["id"]); err != nil {
		return errors.Wrap(err, "node id")
	}
	_ = json.Unmarshal(members["label"], &n.Label)
	for key, dst := range map[string]**Coord{"x": &n.X, "y": &n.Y} {
		raw, ok := members[key]
		if !ok || isNull(raw) {
			continue
		}
		c := &Coord{}
		if err := c.UnmarshalJSON(raw); err != nil {
			return errors.Wrapf(err, "node %s", key)
		}
		*dst = c
	}
	if raw, ok := members["data"]; ok && !isNull(raw) {
		n.Data = &NodeData{}
		if err := n.Data.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.members)+4)
	for k, v := range n.members {
		out[k] = v
	}
	if _, ok := n.members["id"]; !ok {
		out["id"] = n.ID
	}
	if _, ok := n.members["label"]; !ok && n.Label != "" {
		out["label"] = n.Label
	}
	if _, ok := n.members["data"]; !ok && n.Data != nil {
		out["data"] = n.Data
	}
	if n.X != nil {
		out["x"] = n.X
	}
	if n.Y != nil {
		out["y"] = n.Y
	}
	if n.Neighbors != nil {
		out["neighbors"] = n.Neighbors
		out["linkCount"] = n.LinkCount
	}
	return json.Marshal(out)
}

// Link is a graph edge. A decoded link re-encodes byte for byte as it arrived.
type Link struct {
	Source Endpoint  `json:"source"`
	Target Endpoint  `json:"target"`
	Data   *LinkData `json:"data,omitempty"`

	raw json.RawMessage
}

func (l *Link) UnmarshalJSON(b []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(b, &members); err != nil {
		return errors.Wrap(err, "link must be an object")
	}
	*l = Link{raw: append(json.RawMessage(nil), bytes.TrimSpace(b)...)}

	if raw, ok := members["source"]; ok {
		if err := l.Source.UnmarshalJSON(raw); err != nil {
			return errors.Wrap(err, "link source")
		}
	}
	if raw, ok := members["target"]; ok {
		if err := l.Target.UnmarshalJSON(raw); err != nil {
			return errors.Wrap(err, "link target")
		}
	}
	if raw, ok := members["data"]; ok && !isNull(raw) {
		l.Data = &LinkData{}
		if err := l.Data.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	return nil
}

func (l *Link) MarshalJSON() ([]byte, error) {
	if l.raw != nil {
		return l.raw, nil
	}
	type view Link
	return json.Marshal((*view)(l))
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// Graph is the document stored as graph.json.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Links []*Link `json:"links"`
}

// Decode reads a graph document. Missing node or link arrays decode as empty.
func Decode(r io.Reader) (*Graph, error) {
	g := &Graph{}
	if err := json.NewDecoder(r).Decode(g); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode graph"), errors.ErrInvalidRequest)
	}
	if g.Nodes == nil {
		g.Nodes = []*Node{}
	}
	if g.Links == nil {
		g.Links = []*Link{}
	}
	return g, nil
}

// Parse is Decode over a byte slice.
func Parse(b []byte) (*Graph, error) {
	return Decode(bytes.NewReader(b))
}

// DisplayLabel returns the node's label, falling back to its identifier.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID.Key()
}
