// Package module implements the module cache of spec §3.5: a
// process-wide table from absolute source paths to the Simple type
// whose fields are that module's top-level locals, plus a second table
// for built-in modules addressed by a short name (spec §4.4, §6). The
// shape is grounded on the teacher's internal/units path-keyed cache
// (DWScript "units" play the same role as this language's "modules").
package module

import (
	"github.com/cwbudde/lark/internal/types"
)

// Cache holds both tables described in spec §3.5. The zero value is not
// usable; construct with NewCache.
type Cache struct {
	byPath map[string]*types.Simple
	byName map[string]*types.Simple
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		byPath: map[string]*types.Simple{},
		byName: map[string]*types.Simple{},
	}
}

// Path looks up a previously imported module by its resolved source
// path.
func (c *Cache) Path(path string) (*types.Simple, bool) {
	t, ok := c.byPath[path]
	return t, ok
}

// Builtin looks up a built-in module by its short name.
func (c *Cache) Builtin(name string) (*types.Simple, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// DefineBuiltinTypedef installs t under path (when non-empty) and,
// when builtin is true, under name as well — the two-table write spec
// §4.4 names explicitly.
func (c *Cache) DefineBuiltinTypedef(path, name string, t *types.Simple, builtin bool) {
	if path != "" {
		c.byPath[path] = t
	}
	if builtin {
		c.byName[name] = t
	}
}

// StorePath caches t under path, for the Import statement's "cache
// under the path" step (spec §4.3) once a file has been parsed and
// checked.
func (c *Cache) StorePath(path string, t *types.Simple) {
	c.byPath[path] = t
}
