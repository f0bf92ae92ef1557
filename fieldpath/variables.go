package fieldpath

import (
	"fmt"

	"github.com/sbomgrader/sbomgrader/sbomerrors"
)

// VariableDef is one named variable definition: Path is itself a field-path
// expression, evaluated against the document (and, for relative variables,
// against a caller-supplied base) to produce the variable's value (§4.3.1).
type VariableDef struct {
	Name string
	Path string
}

// Warning records a variable that could not be resolved. Resolution is
// best-effort: a warning drops only the affected variable from scope, it
// never aborts resolution of the rest (§4.3.2).
type Warning struct {
	Variable string
	Err      error
}

func (w Warning) String() string {
	return fmt.Sprintf("variable %q: %v", w.Variable, w.Err)
}

// ResolveVariables evaluates defs against doc in dependency order (a
// variable whose path references "${other}" is resolved after "other") and
// returns the resulting Scope plus any per-variable warnings.
//
// base supplies the expansion for relative variables (paths beginning with
// the '@' anchor); a relative variable is dropped, with a warning, when no
// base is available rather than failing the whole resolution.
func ResolveVariables(defs []VariableDef, doc any, base *Path) (Scope, []Warning) {
	scope := Scope{}
	var warnings []Warning

	byName := make(map[string]*pendingVar, len(defs))
	order := make([]string, 0, len(defs))
	for _, def := range defs {
		if IsRelative(def.Path) && base == nil {
			warnings = append(warnings, Warning{Variable: def.Name, Err: fmt.Errorf("relative variable used with no base path supplied")})
			continue
		}
		var opts []ParseOption
		if base != nil {
			opts = append(opts, WithBase(base))
		}
		p, err := Parse(def.Path, opts...)
		if err != nil {
			warnings = append(warnings, Warning{Variable: def.Name, Err: err})
			continue
		}
		deps := map[string]bool{}
		collectVarRefs(p.steps, deps)
		if deps[def.Name] {
			warnings = append(warnings, Warning{Variable: def.Name, Err: &sbomerrors.CircularReferenceError{Variable: def.Name}})
			continue
		}
		byName[def.Name] = &pendingVar{def: def, path: p, deps: deps}
		order = append(order, def.Name)
	}

	resolved := map[string]bool{}
	for len(byName) > 0 {
		progressed := false
		for _, name := range order {
			p, ok := byName[name]
			if !ok {
				continue
			}
			if !allSatisfied(p.deps, resolved, byName) {
				continue
			}
			vals, err := GetObjects(doc, p.path, scope)
			if err != nil {
				warnings = append(warnings, Warning{Variable: name, Err: err})
			} else {
				scope[name] = collapseValues(vals)
			}
			resolved[name] = true
			delete(byName, name)
			progressed = true
		}
		if !progressed {
			for name, p := range byName {
				warnings = append(warnings, Warning{Variable: name, Err: &sbomerrors.CircularReferenceError{Variable: p.def.Name}})
			}
			break
		}
	}

	return scope, warnings
}

// pendingVar is a variable definition awaiting resolution.
type pendingVar struct {
	def  VariableDef
	path *Path
	deps map[string]bool
}

// allSatisfied reports whether every dependency of a pending variable is
// either already resolved or not itself one of the variables being
// resolved (an external/absent name, left to fail at eval time instead).
func allSatisfied(deps map[string]bool, resolved map[string]bool, remaining map[string]*pendingVar) bool {
	for dep := range deps {
		if _, stillPending := remaining[dep]; stillPending && !resolved[dep] {
			return false
		}
	}
	return true
}

// collapseValues turns a multi-match GetObjects result into the shape a
// later ${var} reference expects: a single scalar when there is exactly one
// match, the full slice otherwise (so Eq/Neq treat it as set membership).
func collapseValues(vals []any) any {
	if len(vals) == 1 {
		return vals[0]
	}
	out := make([]any, len(vals))
	copy(out, vals)
	return out
}

func collectVarRefs(steps []Step, set map[string]bool) {
	for _, st := range steps {
		qb, ok := st.(QueryBlockStep)
		if !ok {
			continue
		}
		for _, q := range qb.Queries {
			if q.Value.IsVariable {
				set[q.Value.VarName] = true
			}
			if q.FieldPath != nil {
				collectVarRefs(q.FieldPath.steps, set)
			}
		}
	}
}
