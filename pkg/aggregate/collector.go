package aggregate

import "slr-hq/atlas/pkg/annotation/ast"

// Collector accumulates the values recorded under selected keys.
type Collector struct {
	all    bool
	keys   []string
	values map[string][]string
}

// NewCollector creates a collector for keys. With no keys every key seen is
// collected, in order of first appearance.
func NewCollector(keys ...string) *Collector {
	c := &Collector{
		all:    len(keys) == 0,
		values: make(map[string][]string),
	}
	for _, k := range keys {
		if _, dup := c.values[k]; dup {
			continue
		}
		c.keys = append(c.keys, k)
		c.values[k] = nil
	}
	return c
}

// Add accumulates the mapping entries of one cell. List and empty cells
// carry no keys and are ignored.
func (c *Collector) Add(v ast.Value) {
	if !v.HasMapping() {
		return
	}
	for _, e := range v.Entries {
		if _, tracked := c.values[e.Key]; !tracked {
			if !c.all {
				continue
			}
			c.keys = append(c.keys, e.Key)
		}
		c.values[e.Key] = append(c.values[e.Key], e.Values...)
	}
}

// AddAll accumulates every cell.
func (c *Collector) AddAll(values []ast.Value) {
	for _, v := range values {
		c.Add(v)
	}
}

// Values returns everything collected under key.
func (c *Collector) Values(key string) []string {
	return c.values[key]
}

// Keys returns the tracked keys in order.
func (c *Collector) Keys() []string {
	return append([]string(nil), c.keys...)
}
