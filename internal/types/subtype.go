package types

// IsSubtype is the central predicate described in spec §4.2. env
// supplies the active generic-resolution table (spec §3.4); pass any
// Resolver, including one with nothing bound yet.
//
// Never is treated as bottom (subtype of every type), following the
// worked example in spec §8's testable properties rather than the
// narrower "Never is a subtype of nothing except itself" phrasing in
// §4.2's rule 2 — the two sentences disagree, and the testable
// properties are the conformance contract.
func IsSubtype(sub, sup Type, env Resolver) bool {
	if sub == sup {
		return true
	}
	if sub == Never {
		return true
	}
	if sup == Any {
		return true
	}

	if ga, ok := sub.(*GenericApplication); ok {
		if IsSubtype(ga.Target, sup, env) {
			return true
		}
	}

	if gp, ok := sub.(*GenericParameter); ok {
		if resolved, bound := env.Resolve(gp); bound && resolved != nil {
			return IsSubtype(resolved, sup, env)
		}
	}

	switch supT := sup.(type) {
	case *Simple:
		subSimple, ok := sub.(*Simple)
		if !ok {
			return false
		}
		return subSimple.isSubtypeOfChain(supT)

	case *Functor:
		subFunctor, ok := sub.(*Functor)
		if !ok || len(subFunctor.Params) != len(supT.Params) {
			return false
		}
		for i := range subFunctor.Params {
			// Parameters checked covariantly (OQ-1): the reference
			// source does not invert variance here.
			if !IsSubtype(subFunctor.Params[i], supT.Params[i], env) {
				return false
			}
		}
		return IsSubtype(subFunctor.Return, supT.Return, env)

	case *GenericApplication:
		if iface, ok := supT.Target.(*Interface); ok {
			for i, param := range iface.Generics {
				if i < len(supT.Args) {
					env.Bind(param, supT.Args[i])
				}
			}
			return IsSubtype(sub, supT.Target, env)
		}
		subGA, ok := sub.(*GenericApplication)
		if !ok || subGA.Target != supT.Target || len(subGA.Args) != len(supT.Args) {
			return false
		}
		for i := range subGA.Args {
			// Argument variance (OQ-2): a single-direction check per
			// position, which collapses both "directions" into one
			// here since GetItem's read-only element access is what
			// actually exercises List/Map element types.
			if !IsSubtype(subGA.Args[i], supT.Args[i], env) {
				return false
			}
		}
		return true

	case *GenericParameter:
		if supT.Extends != nil && !IsSubtype(sub, supT.Extends, env) {
			return false
		}
		if resolved, bound := env.Resolve(supT); bound && resolved != nil {
			return sub == resolved || IsSubtype(sub, resolved, env)
		}
		env.Bind(supT, sub)
		return true

	case *Union:
		return IsSubtype(sub, supT.Left, env) || IsSubtype(sub, supT.Right, env)

	case *Interface:
		return interfaceSatisfiedBy(sub, supT, env)
	}

	return false
}

// interfaceSatisfiedBy implements rule 10: every field and method of
// sup (including those inherited through its super-interface chain)
// must appear in sub with a subtype.
func interfaceSatisfiedBy(sub Type, sup *Interface, env Resolver) bool {
	fields, methods := collectInterfaceRequirements(sup)

	switch s := sub.(type) {
	case *Simple:
		for name, want := range fields {
			got, ok := s.LookupField(name)
			if !ok || !IsSubtype(got, want, env) {
				return false
			}
		}
		for name, want := range methods {
			got, ok := s.LookupMethod(name)
			if !ok || !IsSubtype(got, want, env) {
				return false
			}
		}
		return true
	case *Interface:
		for name, want := range fields {
			got, ok := s.LookupField(name)
			if !ok || !IsSubtype(got, want, env) {
				return false
			}
		}
		for name, want := range methods {
			got, ok := s.LookupMethod(name)
			if !ok || !IsSubtype(got, want, env) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func collectInterfaceRequirements(sup *Interface) (map[string]Type, map[string]*Functor) {
	fields := map[string]Type{}
	methods := map[string]*Functor{}
	for c := sup; c != nil; c = c.Super {
		for k, v := range c.Fields {
			if _, exists := fields[k]; !exists {
				fields[k] = v
			}
		}
		for k, v := range c.Methods {
			if _, exists := methods[k]; !exists {
				methods[k] = v
			}
		}
	}
	return fields, methods
}
