package types

// Substitute walks t and replaces every GenericParameter resolver has a
// binding for with that binding, leaving unresolved parameters and
// non-generic types untouched. It is the read side of the
// generic-resolution table IsSubtype's *GenericParameter cases write
// into (spec §4.3's Call contract: argument-checking binds a callee's
// type parameters into the call's scope, and the call's result type
// must be read back through the same scope rather than returned raw).
func Substitute(t Type, resolver Resolver) Type {
	switch v := t.(type) {
	case *GenericParameter:
		if resolved, ok := resolver.Resolve(v); ok && resolved != nil {
			return resolved
		}
		return v
	case *GenericApplication:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = Substitute(a, resolver)
		}
		return &GenericApplication{Target: v.Target, Args: args}
	case *Functor:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = Substitute(p, resolver)
		}
		var ret Type
		if v.Return != nil {
			ret = Substitute(v.Return, resolver)
		}
		return &Functor{Params: params, Return: ret, Generics: v.Generics}
	case *Union:
		return &Union{Left: Substitute(v.Left, resolver), Right: Substitute(v.Right, resolver)}
	default:
		return t
	}
}
