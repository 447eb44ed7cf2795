package xliffai

import "testing"

func boolPtr(b bool) *bool { return &b }

func TestExpectedPropertyID(t *testing.T) {
	tests := []struct {
		name string
		ctx  ElementContext
		want string
	}{
		{"tooltip flag true", ElementContext{IsToolTip: boolPtr(true)}, ToolTipPropertyID},
		{"tooltip flag false", ElementContext{IsToolTip: boolPtr(false)}, CaptionPropertyID},
		{"flag wins over text", ElementContext{IsToolTip: boolPtr(true), PropertyType: "Caption"}, ToolTipPropertyID},
		{"property caption", ElementContext{PropertyType: "Caption"}, CaptionPropertyID},
		{"property tooltip mixed case", ElementContext{PropertyType: "toolTip"}, ToolTipPropertyID},
		{"property padded", ElementContext{PropertyType: "  caption "}, CaptionPropertyID},
		{"unknown property", ElementContext{PropertyType: "Description"}, ""},
		{"empty", ElementContext{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpectedPropertyID(tt.ctx); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlausibleElementTypes(t *testing.T) {
	tests := []struct {
		name    string
		ctx     ElementContext
		include []string
		exclude []string
	}{
		{
			"column brings field and control",
			ElementContext{ElementType: ElementColumn},
			[]string{ElementColumn, ElementField, ElementControl},
			[]string{ElementAction},
		},
		{
			"action bar",
			ElementContext{UIArea: AreaActionBar},
			[]string{ElementAction},
			[]string{ElementField},
		},
		{
			"list area",
			ElementContext{UIArea: AreaList},
			[]string{ElementColumn, ElementField, ElementControl},
			nil,
		},
		{
			"button tag",
			ElementContext{HTMLTag: "button"},
			[]string{ElementAction},
			nil,
		},
		{
			"input tag",
			ElementContext{HTMLTag: "input"},
			[]string{ElementField, ElementControl},
			nil,
		},
		{
			"columnheader role",
			ElementContext{AriaRole: "columnheader"},
			[]string{ElementColumn, ElementField, ElementControl},
			nil,
		},
		{
			"flag bag",
			ElementContext{Flags: map[string]bool{"inActionBar": true}},
			[]string{ElementAction},
			nil,
		},
		{
			"signals union",
			ElementContext{ElementType: ElementField, UIArea: AreaActionBar},
			[]string{ElementField, ElementAction},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types := PlausibleElementTypes(tt.ctx)
			for _, want := range tt.include {
				if !types[want] {
					t.Errorf("missing %q in %v", want, types)
				}
			}
			for _, not := range tt.exclude {
				if types[not] {
					t.Errorf("unexpected %q in %v", not, types)
				}
			}
		})
	}

	if len(PlausibleElementTypes(ElementContext{})) != 0 {
		t.Error("empty context must yield an empty set")
	}
}

func TestTypesAreCompatible(t *testing.T) {
	tests := []struct {
		xliff, bc string
		want      bool
	}{
		{"Field", "Field", true},
		{"field", "FIELD", true},
		{"Control", "Field", true},
		{"Field", "Column", true},
		{"Control", "Column", true},
		{"Action", "Action", true},
		{"Field", "Control", false},
		{"Action", "Field", false},
		{"Column", "Field", false},
	}
	for _, tt := range tests {
		if got := TypesAreCompatible(tt.xliff, tt.bc); got != tt.want {
			t.Errorf("TypesAreCompatible(%q, %q) = %v, want %v", tt.xliff, tt.bc, got, tt.want)
		}
	}
}

func TestParseFlagBag(t *testing.T) {
	flags := ParseFlagBag(`{"inActionBar": true, "inGrid": "true", "other": "no", "off": false}`)
	if !flags["inActionBar"] || !flags["inGrid"] {
		t.Errorf("true flags not decoded: %v", flags)
	}
	if flags["other"] || flags["off"] {
		t.Errorf("false flags decoded as true: %v", flags)
	}

	if got := ParseFlagBag("not json"); len(got) != 0 {
		t.Errorf("malformed input must yield an empty map, got %v", got)
	}
	if got := ParseFlagBag(""); len(got) != 0 {
		t.Errorf("empty input must yield an empty map, got %v", got)
	}
}

func TestDeriveTableName(t *testing.T) {
	tests := []struct {
		page string
		want string
	}{
		{"Item List", "Item"},
		{"Customer Card", "Customer"},
		{"Sales Order SubForm", "Sales Order"},
		{"Sales Order subform", "Sales Order"},
		{"Item FactBox", "Item"},
		{"Inventory Setup", "Inventory"},
		{"Item", "Item"},
		{"List", "List"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DeriveTableName(tt.page); got != tt.want {
			t.Errorf("DeriveTableName(%q) = %q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestFoldAlnum(t *testing.T) {
	if foldAlnum("G/L Entry") != foldAlnum("GL Entry") {
		t.Error("punctuation must not affect the folded form")
	}
	if foldAlnum("Item Ledger") == foldAlnum("Item Ledgers") {
		t.Error("distinct names must stay distinct")
	}
}
