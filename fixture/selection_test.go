package fixture

import "testing"

func TestParse_Empty(t *testing.T) {
	sel := Parse("")
	if !sel.IsAll() {
		t.Error("Parse(\"\") should select all")
	}
}

func TestParse_CommaList(t *testing.T) {
	sel := Parse("users, pets ,orders")
	names := sel.Names()
	if len(names) != 3 || names[0] != "users" || names[1] != "pets" || names[2] != "orders" {
		t.Errorf("Names() = %v, want [users pets orders]", names)
	}
	if sel.IsAll() {
		t.Error("named selection should not be all")
	}
}

func TestParse_BlankEntriesIgnored(t *testing.T) {
	sel := Parse(" , ,")
	if !sel.IsAll() {
		t.Errorf("Parse of blanks = %v, want all", sel.Names())
	}
}

func TestNamed_NoNamesIsAll(t *testing.T) {
	if !Named().IsAll() {
		t.Error("Named() with no names should select all")
	}
}

func TestNamed_CopiesInput(t *testing.T) {
	input := []string{"users"}
	sel := Named(input...)
	input[0] = "mutated"
	if sel.Names()[0] != "users" {
		t.Error("Named() should copy its input")
	}
}

func TestSelection_String(t *testing.T) {
	if All().String() != "all" {
		t.Errorf("All().String() = %q, want all", All().String())
	}
	if Named("a", "b").String() != "a,b" {
		t.Errorf("Named(a,b).String() = %q", Named("a", "b").String())
	}
}
