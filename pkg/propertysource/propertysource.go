// Package propertysource holds the layered key/value view assembled from
// per-context secret fetches.
package propertysource

import "sort"

// Layer is the key/value data returned by one successful context fetch.
// The name is the context it was fetched from, kept for diagnostics.
type Layer struct {
	name   string
	values map[string]string
}

// NewLayer creates a layer named after its context.
func NewLayer(name string, values map[string]string) *Layer {
	vals := make(map[string]string, len(values))
	for k, v := range values {
		vals[k] = v
	}
	return &Layer{name: name, values: vals}
}

// Name returns the context this layer was fetched from.
func (l *Layer) Name() string {
	return l.name
}

// Get returns the value for key and whether the layer contains it.
func (l *Layer) Get(key string) (string, bool) {
	v, ok := l.values[key]
	return v, ok
}

// Len returns the number of entries in the layer.
func (l *Layer) Len() int {
	return len(l.values)
}

// Composite is the merged, precedence-ordered aggregation of layers.
// Lookup consults layers in insertion order and the first layer containing
// the key wins, so layers must be added highest-precedence first.
//
// A Composite is created fresh per resolution call and carries its own
// resolved context list; it holds no state shared across calls.
type Composite struct {
	name     string
	contexts []string
	layers   []*Layer
}

// NewComposite creates an empty composite named for the overall source,
// recording the context list the layers will be fetched from.
func NewComposite(name string, contexts []string) *Composite {
	return &Composite{
		name:     name,
		contexts: append([]string(nil), contexts...),
	}
}

// Name returns the source name, e.g. "aws-secrets-manager".
func (c *Composite) Name() string {
	return c.name
}

// Add appends a layer. Earlier additions take precedence on lookup.
func (c *Composite) Add(layer *Layer) {
	c.layers = append(c.layers, layer)
}

// Get returns the value for key from the first layer that contains it.
func (c *Composite) Get(key string) (string, bool) {
	for _, layer := range c.layers {
		if v, ok := layer.Get(key); ok {
			return v, true
		}
	}
	return "", false
}

// Contexts returns the resolved context list this composite was built
// from, including contexts whose fetch was skipped.
func (c *Composite) Contexts() []string {
	return append([]string(nil), c.contexts...)
}

// Layers returns the merged layers in precedence order.
func (c *Composite) Layers() []*Layer {
	return append([]*Layer(nil), c.layers...)
}

// Keys returns the sorted union of keys across all layers.
func (c *Composite) Keys() []string {
	seen := make(map[string]struct{})
	for _, layer := range c.layers {
		for k := range layer.values {
			seen[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
