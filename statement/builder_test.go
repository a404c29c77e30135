package statement

import (
	"testing"

	"github.com/sqlbind/sqlbind/convert"
)

// Flag is an enum fixture.
type Flag int

const (
	FlagOn  Flag = 1
	FlagOff Flag = 2
)

func init() {
	convert.MustRegisterEnum(map[Flag]string{
		FlagOn:  "On",
		FlagOff: "Off",
	})
}

func TestBuilder_AnonymousParameterNames(t *testing.T) {
	b := NewBuilder()
	b.Append("SELECT * FROM [T] WHERE a = ")
	if err := b.AppendParam(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Append(" AND b = ")
	if err := b.AppendParam(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := b.Statement()

	want := "SELECT * FROM [T] WHERE a = @Parameter_1 AND b = @Parameter_2"
	if s.Code() != want {
		t.Errorf("code:\ngot  %q\nwant %q", s.Code(), want)
	}
	params := s.Params()
	if len(params) != 2 || params[0].Name != "Parameter_1" || params[1].Name != "Parameter_2" {
		t.Errorf("params: got %+v", params)
	}
}

func TestBuilder_CollisionRenaming(t *testing.T) {
	b := NewBuilder()
	if err := b.AppendParam(1); err != nil { // Parameter_1
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.AppendParam(2); err != nil { // Parameter_2
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.AppendNamed("Parameter_1", 3); err != nil { // collides -> Parameter_12
		t.Fatalf("unexpected error: %v", err)
	}
	s := b.Statement()

	params := s.Params()
	if len(params) != 3 {
		t.Fatalf("got %d params, want 3", len(params))
	}
	if params[2].Name != "Parameter_12" {
		t.Errorf("third name: got %q, want %q", params[2].Name, "Parameter_12")
	}
}

func TestBuilder_CollisionProbesUpward(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 3; i++ {
		if err := b.AppendNamed("id", i); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	params := b.Statement().Params()
	want := []string{"id", "id2", "id3"}
	for i, p := range params {
		if p.Name != want[i] {
			t.Errorf("params[%d].Name: got %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestBuilder_CollisionCaseInsensitive(t *testing.T) {
	b := NewBuilder()
	if err := b.AppendNamed("Id", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.AppendNamed("ID", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params := b.Statement().Params()
	if params[1].Name != "ID2" {
		t.Errorf("got %q, want %q", params[1].Name, "ID2")
	}
}

func TestBuilder_EnumParamSerialization(t *testing.T) {
	b := NewBuilder() // ModeStrings default
	if err := b.AppendNamed("flag", FlagOn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := b.Statement().Param("flag")
	if !ok || v != "On" {
		t.Errorf("got %v, want %q", v, "On")
	}

	b = NewBuilder(WithMode(convert.ModeIntegers))
	if err := b.AppendNamed("flag", FlagOn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok = b.Statement().Param("flag")
	if !ok || v != int32(1) {
		t.Errorf("got %v (%T), want int32 1", v, v)
	}
}

func TestBuilder_NilParamValue(t *testing.T) {
	b := NewBuilder()
	if err := b.AppendNamed("note", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := b.Statement().Param("note")
	if !ok {
		t.Fatal("parameter not recorded")
	}
	if v != nil {
		t.Errorf("got %v, want nil as the absence marker", v)
	}
}

func TestBuilder_TempTable(t *testing.T) {
	b := NewBuilder()
	b.Append("SELECT * FROM [T] WHERE id IN (SELECT value FROM ")
	if err := b.AppendTable(Table("#ids", []int64{1, 2, 3})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Append(")")
	s := b.Statement()

	want := "SELECT * FROM [T] WHERE id IN (SELECT value FROM #ids)"
	if s.Code() != want {
		t.Errorf("code:\ngot  %q\nwant %q", s.Code(), want)
	}
	tables := s.Tables()
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	if tables[0].Name != "#ids" || len(tables[0].Values) != 3 {
		t.Errorf("table: got %+v", tables[0])
	}
	if tables[0].Elem.Kind().String() != "int64" {
		t.Errorf("element type: got %s, want int64", tables[0].Elem)
	}
}

func TestBuilder_TempTableDuplicateNamesKept(t *testing.T) {
	b := NewBuilder()
	_ = b.AppendTable(Table("#ids", []int{1}))
	_ = b.AppendTable(Table("#ids", []int{2}))
	if got := len(b.Statement().Tables()); got != 2 {
		t.Errorf("got %d tables, want 2 (no collision handling for temp tables)", got)
	}
}

func TestBuilder_TempTableWithoutName(t *testing.T) {
	b := NewBuilder()
	if err := b.AppendTable(TempTable{}); err == nil {
		t.Error("expected error for an unnamed temporary table fragment")
	}
}

func TestBuilder_AppendValuePadding(t *testing.T) {
	cases := []struct {
		value any
		width int
		want  string
	}{
		{"abc", 0, "abc"},
		{"abc", 5, "  abc"},
		{"abc", -5, "abc  "},
		{"abcdef", 3, "abcdef"},
		{42, 4, "  42"},
	}
	for _, tc := range cases {
		got := NewBuilder().AppendValue(tc.value, tc.width).Statement().Code()
		if got != tc.want {
			t.Errorf("AppendValue(%v, %d): got %q, want %q", tc.value, tc.width, got, tc.want)
		}
	}
}

func TestStatement_PlainString(t *testing.T) {
	s := New("SELECT 1")
	if s.Code() != "SELECT 1" {
		t.Errorf("code: got %q", s.Code())
	}
	if len(s.Params()) != 0 || len(s.Tables()) != 0 {
		t.Error("plain statement should carry no parameters or tables")
	}
}
