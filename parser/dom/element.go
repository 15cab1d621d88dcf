package dom

// Namespace identifies the namespace of an element or attribute.
type Namespace uint8

const (
	NoNamespace Namespace = iota
	Htmlns
	Mathmlns
	Svgns
	Xlinkns
	Xmlns
	Xmlnsns
)

var namespaceURIs = map[Namespace]string{
	Htmlns:   "http://www.w3.org/1999/xhtml",
	Mathmlns: "http://www.w3.org/1998/Math/MathML",
	Svgns:    "http://www.w3.org/2000/svg",
	Xlinkns:  "http://www.w3.org/1999/xlink",
	Xmlns:    "http://www.w3.org/XML/1998/namespace",
	Xmlnsns:  "http://www.w3.org/2000/xmlns/",
}

// URI returns the namespace URI, or "" for NoNamespace.
func (ns Namespace) URI() string {
	return namespaceURIs[ns]
}

// Prefix is the short name used by the html5lib tree format.
func (ns Namespace) Prefix() string {
	switch ns {
	case Mathmlns:
		return "math"
	case Svgns:
		return "svg"
	case Xlinkns:
		return "xlink"
	case Xmlns:
		return "xml"
	case Xmlnsns:
		return "xmlns"
	}
	return ""
}

// Attribute is a single name/value pair on an element. Attribute order on an
// element is source order.
type Attribute struct {
	Namespace Namespace
	Name      string
	Value     string
}

// QualifiedName is the attribute name as it is serialized.
func (a Attribute) QualifiedName() string {
	switch a.Namespace {
	case Xlinkns, Xmlns:
		return a.Namespace.Prefix() + ":" + a.Name
	case Xmlnsns:
		if a.Name == "xmlns" {
			return a.Name
		}
		return "xmlns:" + a.Name
	}
	return a.Name
}

// voidElements never have children or end tags.
var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "bgsound": true, "br": true,
	"col": true, "embed": true, "frame": true, "hr": true, "img": true,
	"input": true, "keygen": true, "link": true, "meta": true, "param": true,
	"source": true, "track": true, "wbr": true,
}

// IsVoid reports whether an HTML element with the given tag name is a void element.
func IsVoid(tag string) bool {
	return voidElements[tag]
}
