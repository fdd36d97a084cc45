package engine

import (
	"fmt"
	"strings"
	"sync/atomic"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/JPTomorrow/headroom/pkg/brep"
	"github.com/JPTomorrow/headroom/pkg/model"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms headroom Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: junction-box -> junction_box
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				// Keyword names flatten kebab-case too, so :min-clearance
				// and :min_clearance reach builtins under one key.
				kwName := strings.ReplaceAll(string(b[i+1:j]), "-", "_")
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus
		// operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a brep.Vec.
type sexpVec3 struct {
	vec brep.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpElemRef wraps a model.ElementID so scene code can refer back to a
// placed element.
type sexpElemRef struct {
	id   model.ElementID
	name string
}

func (r *sexpElemRef) SexpString(ps *zygo.PrintState) string {
	if r.name != "" {
		return fmt.Sprintf("(elem %q)", r.name)
	}
	return fmt.Sprintf("(elem %s)", r.id.Short())
}
func (r *sexpElemRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a boolean from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_duct) and plain strings ("duct").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toCategory converts a keyword or string to a model.Category. Keyword names
// arrive with kebab-case already flattened to underscores.
func toCategory(s zygo.Sexp) (model.Category, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected category keyword: %w", err)
	}
	switch strings.ReplaceAll(name, "_", "-") {
	case "generic":
		return model.CategoryGeneric, nil
	case "jbox", "junction-box":
		return model.CategoryJunctionBox, nil
	case "lighting-fixture", "luminaire":
		return model.CategoryLightingFixture, nil
	case "ceiling":
		return model.CategoryCeiling, nil
	case "structural-framing", "beam":
		return model.CategoryStructuralFraming, nil
	case "duct":
		return model.CategoryDuct, nil
	case "conduit":
		return model.CategoryConduit, nil
	}
	return 0, fmt.Errorf("invalid category %q", name)
}

// toVec3 extracts a brep.Vec from a sexpVec3.
func toVec3(s zygo.Sexp) (brep.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return brep.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Element id generation
// ---------------------------------------------------------------------------

// elemCounter provides unique suffixes for anonymous elements.
var elemCounter uint64

func nextElemSuffix() string {
	n := atomic.AddUint64(&elemCounter, 1)
	return fmt.Sprintf("_anon_%d", n)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// elementKind describes one placed-element builtin: its DSL name, the
// category it creates, and whether it defaults to a light-emitting top face.
type elementKind struct {
	form     string
	category model.Category
	lightTop bool
}

var elementKinds = []elementKind{
	{form: "jbox", category: model.CategoryJunctionBox},
	{form: "luminaire", category: model.CategoryLightingFixture, lightTop: true},
	{form: "ceiling", category: model.CategoryCeiling},
	{form: "beam", category: model.CategoryStructuralFraming},
	{form: "duct", category: model.CategoryDuct},
	{form: "conduit", category: model.CategoryConduit},
}

// registerBuiltins installs the headroom scene DSL into a zygomys
// environment. The builtins populate the provided Scene during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, sc *Scene) {

	// -----------------------------------------------------------------------
	// (vec3 x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3: want 3 numbers, got %d args", len(args))
		}
		var v brep.Vec
		for i, dst := range []*float64{&v.X, &v.Y, &v.Z} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
			}
			*dst = f
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (settings :min-clearance "2'" :tolerance "1\""
	//           :obstructions [:ceiling :duct] :family-marker "4x4")
	// -----------------------------------------------------------------------
	env.AddFunction("settings", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if v, ok := pa.kw["min_clearance"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("settings: min-clearance: %w", err)
			}
			sc.Settings.MinClearance = s
		}
		if v, ok := pa.kw["tolerance"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("settings: tolerance: %w", err)
			}
			sc.Settings.Tolerance = s
		}
		if v, ok := pa.kw["family_marker"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("settings: family-marker: %w", err)
			}
			sc.Settings.FamilyMarker = s
		}
		if v, ok := pa.kw["obstructions"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("settings: obstructions: %w", err)
			}
			cats := make([]model.Category, 0, len(items))
			for _, it := range items {
				c, err := toCategory(it)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("settings: obstructions: %w", err)
				}
				cats = append(cats, c)
			}
			sc.Settings.Obstructions = cats
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (hide :duct :conduit ...) hides categories in the analysis view.
	// -----------------------------------------------------------------------
	env.AddFunction("hide", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		for _, a := range args {
			c, err := toCategory(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("hide: %w", err)
			}
			sc.View.Hide(c)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (link "hvac" :at (vec3 20 0 0) :rotate 90) declares a linked sub-model.
	// -----------------------------------------------------------------------
	env.AddFunction("link", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("link: want a name, got %d positional args", len(pa.positional))
		}
		linkName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("link: %w", err)
		}
		placement, err := placementFromArgs(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("link %q: %w", linkName, err)
		}
		l := &model.Link{
			ID:        model.LinkID("link/" + linkName),
			Name:      linkName,
			Sub:       model.New(),
			Placement: placement,
		}
		if err := sc.Model.AddLink(l); err != nil {
			return zygo.SexpNull, fmt.Errorf("link: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (jbox "kitchen-1" :at (vec3 ...) :size (vec3 ...) :family "4x4 box")
	// (ceiling ...) (beam ...) (duct ...) (conduit ...) (luminaire ...)
	//
	// Common keywords: :at (min corner), :size, :rotate (degrees about Z),
	// :family, :light-top (tag the top face as a light source), :into "link"
	// (place into a previously declared linked sub-model).
	// -----------------------------------------------------------------------
	for _, kind := range elementKinds {
		kind := kind
		env.AddFunction(kind.form, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			return addBoxElement(sc, kind, args)
		})
	}
}

// placementFromArgs reads the common :at / :rotate keywords.
func placementFromArgs(pa kwArgs) (brep.Transform, error) {
	var t brep.Transform
	if v, ok := pa.kw["at"]; ok {
		at, err := toVec3(v)
		if err != nil {
			return t, fmt.Errorf("at: %w", err)
		}
		t.Translation = at
	}
	if v, ok := pa.kw["rotate"]; ok {
		deg, err := toFloat64(v)
		if err != nil {
			return t, fmt.Errorf("rotate: %w", err)
		}
		t.RotationZ = deg
	}
	return t, nil
}

// addBoxElement builds one placed box element from a DSL form and adds it to
// the scene's root model or to a named link.
func addBoxElement(sc *Scene, kind elementKind, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)

	elemName := ""
	if len(pa.positional) > 0 {
		n, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: name: %w", kind.form, err)
		}
		elemName = n
	}
	if elemName == "" {
		elemName = kind.form + nextElemSuffix()
	}

	size := brep.Vec{X: 1, Y: 1, Z: 1}
	if v, ok := pa.kw["size"]; ok {
		sz, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s %q: size: %w", kind.form, elemName, err)
		}
		size = sz
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return zygo.SexpNull, fmt.Errorf("%s %q: size must be positive in every dimension", kind.form, elemName)
	}

	placement, err := placementFromArgs(pa)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s %q: %w", kind.form, elemName, err)
	}

	family := ""
	if v, ok := pa.kw["family"]; ok {
		f, err := toString(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s %q: family: %w", kind.form, elemName, err)
		}
		family = f
	}

	lightTop := kind.lightTop
	if v, ok := pa.kw["light_top"]; ok {
		b, err := toBool(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s %q: light-top: %w", kind.form, elemName, err)
		}
		lightTop = b
	}

	solid := brep.Box(brep.Vec{}, size)
	if lightTop {
		solid.Faces[brep.BoxTop].Material = "Light Source Panel"
	}

	elem := &model.Element{
		ID:         model.NewElementID(kind.form + "/" + elemName),
		Name:       elemName,
		Category:   kind.category,
		FamilyType: family,
		Solids:     []brep.Solid{solid},
		Prims:      []model.PrimSpec{{Kind: model.PrimBox, Dims: size}},
		Placement:  placement,
	}

	target := sc.Model
	if v, ok := pa.kw["into"]; ok {
		linkName, err := toString(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s %q: into: %w", kind.form, elemName, err)
		}
		var found *model.Link
		for _, l := range sc.Model.Links() {
			if l.Name == linkName {
				found = l
				break
			}
		}
		if found == nil {
			return zygo.SexpNull, fmt.Errorf("%s %q: no link named %q; declare it with (link ...) first", kind.form, elemName, linkName)
		}
		target = found.Sub
	}

	if err := target.AddElement(elem); err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", kind.form, err)
	}
	return &sexpElemRef{id: elem.ID, name: elemName}, nil
}
