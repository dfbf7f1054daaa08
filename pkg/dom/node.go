package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// AttrOr returns the value of key on n or fallback when absent.
func AttrOr(n *html.Node, key, fallback string) string {
	if value, ok := Attr(n, key); ok {
		return value
	}
	return fallback
}

// HasAttr reports whether key is present on n.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets key on n, replacing an existing value.
func SetAttr(n *html.Node, key, value string) {
	if n == nil {
		return
	}
	for idx, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[idx].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr deletes key from n.
func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	out := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			continue
		}
		out = append(out, attr)
	}
	n.Attr = out
}

// ToggleAttr sets a boolean attribute when on is true and removes it
// otherwise.
func ToggleAttr(n *html.Node, key string, on bool) {
	if on {
		SetAttr(n, key, "")
		return
	}
	RemoveAttr(n, key)
}

// Classes returns the class tokens of n.
func Classes(n *html.Node) []string {
	return strings.Fields(AttrOr(n, "class", ""))
}

// HasClass reports whether n carries class.
func HasClass(n *html.Node, class string) bool {
	for _, token := range Classes(n) {
		if token == class {
			return true
		}
	}
	return false
}

// AddClass appends class to n when missing.
func AddClass(n *html.Node, class string) {
	if n == nil || class == "" || HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.TrimSpace(strings.Join(append(Classes(n), class), " ")))
}

// RemoveClass drops class from n. The attribute is removed when no class is
// left.
func RemoveClass(n *html.Node, class string) {
	if n == nil {
		return
	}
	tokens := Classes(n)
	keep := tokens[:0]
	for _, token := range tokens {
		if token != class {
			keep = append(keep, token)
		}
	}
	if len(keep) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(keep, " "))
}

// ToggleClass adds or removes class.
func ToggleClass(n *html.Node, class string, on bool) {
	if on {
		AddClass(n, class)
		return
	}
	RemoveClass(n, class)
}

// IsElement reports whether n is an element named tag. An empty tag matches
// any element.
func IsElement(n *html.Node, tag string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	return tag == "" || n.Data == tag
}

// TextContent concatenates the text descendants of n.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(TextContent(child))
	}
	return b.String()
}

// SetTextContent replaces the children of n with a single text node.
func SetTextContent(n *html.Node, text string) {
	if n == nil {
		return
	}
	RemoveChildren(n)
	if text == "" {
		return
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for n != nil && n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

// Contains reports whether target is ancestor or a descendant of it.
func Contains(ancestor, target *html.Node) bool {
	if ancestor == nil {
		return false
	}
	for n := target; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants in document order until visit returns
// false.
func Walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		if !Walk(child, visit) {
			return false
		}
		child = next
	}
	return true
}

// Matcher selects nodes.
type Matcher func(*html.Node) bool

// Element matches elements named tag.
func Element(tag string) Matcher {
	return func(n *html.Node) bool { return IsElement(n, tag) }
}

// WithAttr matches elements named tag (any when empty) whose key attribute
// equals value.
func WithAttr(tag, key, value string) Matcher {
	return func(n *html.Node) bool {
		if !IsElement(n, tag) {
			return false
		}
		got, ok := Attr(n, key)
		return ok && got == value
	}
}

// WithClass matches elements named tag (any when empty) carrying class.
func WithClass(tag, class string) Matcher {
	return func(n *html.Node) bool {
		return IsElement(n, tag) && HasClass(n, class)
	}
}

// FindAll returns descendants of root (root included) matching match, in
// document order.
func FindAll(root *html.Node, match Matcher) []*html.Node {
	var out []*html.Node
	Walk(root, func(n *html.Node) bool {
		if match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Find returns the first node under root matching match.
func Find(root *html.Node, match Matcher) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// Closest walks from n up to the root and returns the first match.
func Closest(n *html.Node, match Matcher) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if match(cur) {
			return cur
		}
	}
	return nil
}

// NewElement builds a detached element.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     append([]html.Attribute(nil), attrs...),
	}
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
