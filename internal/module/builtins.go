package module

import (
	_ "embed"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/lark/internal/types"
)

//go:embed builtins.yaml
var builtinsManifest []byte

// manifestEntry mirrors one entry of builtins.yaml.
type manifestEntry struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Builtin bool   `yaml:"builtin"`
}

type manifest struct {
	Modules []manifestEntry `yaml:"modules"`
}

// factories maps a builtin module's manifest name to the Go function
// that builds its Simple type descriptor. Grounded on
// original_source/src/libc/async.c's createTaskModuleType, which builds
// the "task" module's field table by hand in C; here each factory plays
// the same role for one builtin module.
var factories = map[string]func() *types.Simple{
	"list": listModuleType,
	"map":  mapModuleType,
	"task": taskModuleType,
}

// LoadBuiltins parses the embedded manifest and installs every entry
// whose name has a registered factory into cache, per spec §4.4.
func LoadBuiltins(cache *Cache) error {
	var m manifest
	if err := yaml.Unmarshal(builtinsManifest, &m); err != nil {
		return err
	}
	for _, entry := range m.Modules {
		factory, ok := factories[entry.Name]
		if !ok {
			continue
		}
		cache.DefineBuiltinTypedef(entry.Path, entry.Name, factory(), entry.Builtin)
	}
	return nil
}

// listModuleType describes the builtin "list" module: a single generic
// push/pop-free surface sufficient for the spec's List<T> generic
// target (spec §4.4 names list/map/task as the builtin modules whose
// members the checker must be able to resolve via Get).
func listModuleType() *types.Simple {
	elem := &types.GenericParameter{Name: "T"}
	listT := types.ListOf(types.Any)
	t := types.NewSimple("list")
	t.SetField("of", &types.Functor{
		Params:   []types.Type{},
		Return:   listT,
		Generics: []*types.GenericParameter{elem},
	})
	return t
}

// mapModuleType describes the builtin "map" module.
func mapModuleType() *types.Simple {
	k := &types.GenericParameter{Name: "K"}
	v := &types.GenericParameter{Name: "V"}
	t := types.NewSimple("map")
	t.SetField("of", &types.Functor{
		Params:   []types.Type{},
		Return:   types.MapOf(types.Any, types.Any),
		Generics: []*types.GenericParameter{k, v},
	})
	return t
}

// taskModuleType describes the builtin "task" module, whose single
// "spawn" field accepts a zero-argument callback functor and returns a
// Task<Any> handle — grounded on async.c's task_spawn entry point,
// which likewise takes a callback and returns a task handle to the
// scheduler.
func taskModuleType() *types.Simple {
	callback := &types.Functor{Params: []types.Type{}, Return: types.Any}
	t := types.NewSimple("task")
	t.SetField("spawn", &types.Functor{
		Params: []types.Type{callback},
		Return: types.TaskOf(types.Any),
	})
	return t
}
