package directory

import "context"

// Entry is one record of the directory-style account store, as handed
// over by the deployment's directory service: a DN plus multi-valued
// attributes. The wire protocol behind this is the deployment's business.
type Entry struct {
	DN    string
	Attrs map[string][]string
}

// Attr returns the first value of an attribute, or "" when absent.
func (e Entry) Attr(name string) string {
	if vals := e.Attrs[name]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Client is the opaque directory service the connector adapts. Search
// matches entries carrying the given attribute value; List returns every
// entry of the subtree.
type Client interface {
	Search(ctx context.Context, attribute, value string) ([]Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Close() error
}
