package engine

import (
	"strings"
	"testing"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/JPTomorrow/headroom/pkg/model"
)

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keyword", `(settings :tolerance "1")`, `(settings "__kw_tolerance" "1")`},
		{"kebab keyword", `(:min-clearance)`, `("__kw_min_clearance")`},
		{"kebab identifier", `(my-func 1)`, `(my_func 1)`},
		{"minus stays minus", `(- 5 3)`, `(- 5 3)`},
		{"negative literal", `(vec3 -1 0 0)`, `(vec3 -1 0 0)`},
		{"string untouched", `(jbox "kebab-name" :family "4x4-deep")`, `(jbox "kebab-name" "__kw_family" "4x4-deep")`},
		{"comment converted", "; note\n(x)", "// note\n(x)"},
		{"double semicolon", ";; note", "// note"},
		{"assignment preserved", `(x := 1)`, `(x := 1)`},
		{"colon in string", `(print "a:b")`, `(print "a:b")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.in); got != tt.want {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseArgs(t *testing.T) {
	args := []zygo.Sexp{
		&zygo.SexpStr{S: "panel-a"},
		&zygo.SexpStr{S: kwPrefix + "rotate"},
		&zygo.SexpInt{Val: 90},
		&zygo.SexpStr{S: kwPrefix + "family"},
		&zygo.SexpStr{S: "4x4"},
	}
	pa := parseArgs(args)
	if len(pa.positional) != 1 {
		t.Fatalf("positional = %d, want 1", len(pa.positional))
	}
	if len(pa.kw) != 2 {
		t.Fatalf("kw = %d, want 2", len(pa.kw))
	}
	if _, ok := pa.kw["rotate"]; !ok {
		t.Error("missing rotate keyword")
	}
	if v, ok := pa.kw["family"]; !ok {
		t.Error("missing family keyword")
	} else if s, _ := toString(v); s != "4x4" {
		t.Errorf("family = %q", s)
	}

	// Trailing keyword with no value becomes a nil-valued flag.
	pa = parseArgs([]zygo.Sexp{&zygo.SexpStr{S: kwPrefix + "flag"}})
	if v, ok := pa.kw["flag"]; !ok || v != zygo.SexpNull {
		t.Errorf("trailing keyword = %v (ok=%v)", v, ok)
	}
}

func TestToCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    model.Category
		wantErr bool
	}{
		{"jbox", model.CategoryJunctionBox, false},
		{"junction_box", model.CategoryJunctionBox, false},
		{"luminaire", model.CategoryLightingFixture, false},
		{"lighting_fixture", model.CategoryLightingFixture, false},
		{"ceiling", model.CategoryCeiling, false},
		{"beam", model.CategoryStructuralFraming, false},
		{"structural_framing", model.CategoryStructuralFraming, false},
		{"duct", model.CategoryDuct, false},
		{"conduit", model.CategoryConduit, false},
		{"generic", model.CategoryGeneric, false},
		{"sofa", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := toCategory(&zygo.SexpStr{S: kwPrefix + tt.in})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("toCategory(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("toCategory(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("toCategory(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToFloat64(t *testing.T) {
	if v, err := toFloat64(&zygo.SexpInt{Val: 3}); err != nil || v != 3 {
		t.Errorf("int: %v, %v", v, err)
	}
	if v, err := toFloat64(&zygo.SexpFloat{Val: 2.5}); err != nil || v != 2.5 {
		t.Errorf("float: %v, %v", v, err)
	}
	if _, err := toFloat64(&zygo.SexpStr{S: "x"}); err == nil {
		t.Error("string accepted as number")
	}
}

func TestNextElemSuffixUnique(t *testing.T) {
	a := nextElemSuffix()
	b := nextElemSuffix()
	if a == b {
		t.Errorf("suffixes not unique: %q", a)
	}
	if !strings.HasPrefix(a, "_anon_") {
		t.Errorf("suffix = %q, want _anon_ prefix", a)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		msg      string
		wantLine int
	}{
		{"Error on line 7: undefined symbol", 7},
		{"line 3: unexpected token", 3},
		{"something went wrong", 0},
	}
	for _, tt := range tests {
		errs := parseZygomysError(errString(tt.msg))
		if len(errs) != 1 {
			t.Fatalf("parseZygomysError(%q) returned %d errors", tt.msg, len(errs))
		}
		if errs[0].Line != tt.wantLine {
			t.Errorf("line = %d, want %d for %q", errs[0].Line, tt.wantLine, tt.msg)
		}
	}
}

type errString string

func (e errString) Error() string { return string(e) }
