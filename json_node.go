// json_node.go - a thin wrapper over gjson that adds `#ref` alias
// resolution and JSON-path-qualified error messages: a tree of tagged
// nodes supporting path traversal and #ref aliases.

package main

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// JSONNode is one position in the parsed document, remembering both
// its gjson.Result and the slash-separated path used to reach it so
// error messages can point the user at the offending location.
type JSONNode struct {
	root *JSONNode // the document root; the root node points to itself
	doc  string    // raw document text, shared by every node
	res  gjson.Result
	path string
}

// ParseJSONDocument parses doc and returns its root node.
func ParseJSONDocument(doc string) (*JSONNode, error) {
	if !gjson.Valid(doc) {
		return nil, NewEngineError(ErrConfigInvalid, fmt.Errorf("invalid JSON document"))
	}
	n := &JSONNode{doc: doc, res: gjson.Parse(doc), path: ""}
	n.root = n
	return n, nil
}

// resolve substitutes the node for its #ref target, if present, and
// rejects a #ref combined with sibling keys.
func (n *JSONNode) resolve() (*JSONNode, error) {
	if !n.res.IsObject() {
		return n, nil
	}
	refNode := n.res.Get("#ref")
	if !refNode.Exists() {
		return n, nil
	}
	if len(n.res.Map()) > 1 {
		return nil, n.errorf("#ref cannot be combined with sibling keys")
	}
	refPath, ok := refNode.Value().(string)
	if !ok {
		return nil, n.errorf("#ref value must be a string path")
	}
	gjsonPath := strings.ReplaceAll(strings.TrimPrefix(refPath, "/"), "/", ".")
	target := n.root.res.Get(gjsonPath)
	if !target.Exists() {
		return nil, n.errorf("unresolved #ref %q", refPath)
	}
	return &JSONNode{root: n.root, doc: n.doc, res: target, path: refPath}, nil
}

func (n *JSONNode) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return NewEngineError(ErrConfigInvalid, fmt.Errorf("%s (at %s)", msg, n.pathOrRoot()))
}

func (n *JSONNode) pathOrRoot() string {
	if n.path == "" {
		return "/"
	}
	return n.path
}

func (n *JSONNode) childPath(field string) string {
	if n.path == "" {
		return field
	}
	return n.path + "/" + field
}

func (n *JSONNode) Has(field string) bool {
	return n.res.Get(field).Exists()
}

// Get returns the child node at field, resolving any #ref along the
// way. ok is false if the field is absent.
func (n *JSONNode) Get(field string) (*JSONNode, bool, error) {
	child := n.res.Get(field)
	if !child.Exists() {
		return nil, false, nil
	}
	cn := &JSONNode{root: n.root, doc: n.doc, res: child, path: n.childPath(field)}
	resolved, err := cn.resolve()
	if err != nil {
		return nil, true, err
	}
	return resolved, true, nil
}

// GetObject is Get, but requires the field to be present and an
// object, raising ConfigInvalid otherwise.
func (n *JSONNode) GetObject(field string) (*JSONNode, error) {
	child, ok, err := n.Get(field)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, n.errorf("missing required field %q", field)
	}
	if !child.res.IsObject() {
		return nil, child.errorf("expected %q to be an object", field)
	}
	return child, nil
}

func (n *JSONNode) Array(field string) ([]*JSONNode, error) {
	child, ok, err := n.Get(field)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if !child.res.IsArray() {
		return nil, child.errorf("expected %q to be an array", field)
	}
	var out []*JSONNode
	var rerr error
	i := 0
	child.res.ForEach(func(_, value gjson.Result) bool {
		elemPath := fmt.Sprintf("%s[%d]", child.path, i)
		i++
		en := &JSONNode{root: n.root, doc: n.doc, res: value, path: elemPath}
		resolved, err := en.resolve()
		if err != nil {
			rerr = err
			return false
		}
		out = append(out, resolved)
		return true
	})
	if rerr != nil {
		return nil, rerr
	}
	return out, nil
}

func (n *JSONNode) StringDefault(field, def string) (string, error) {
	child, ok, err := n.Get(field)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	if child.res.Type != gjson.String {
		return "", child.errorf("expected %q to be a string", field)
	}
	return child.res.String(), nil
}

func (n *JSONNode) FloatDefault(field string, def float64) (float64, error) {
	child, ok, err := n.Get(field)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	if child.res.Type != gjson.Number {
		return 0, child.errorf("expected %q to be a number", field)
	}
	return child.res.Float(), nil
}

func (n *JSONNode) BoolDefault(field string, def bool) (bool, error) {
	child, ok, err := n.Get(field)
	if err != nil {
		return false, err
	}
	if !ok {
		return def, nil
	}
	if child.res.Type != gjson.True && child.res.Type != gjson.False {
		return false, child.errorf("expected %q to be a boolean", field)
	}
	return child.res.Bool(), nil
}

func (n *JSONNode) IntDefault(field string, def int) (int, error) {
	v, err := n.FloatDefault(field, float64(def))
	return int(v), err
}

func (n *JSONNode) String() string { return n.res.String() }
