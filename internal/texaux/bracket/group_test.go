package bracket

import "testing"

func TestGroupShape(t *testing.T) {
	payload := Sequence(Leaf("1"), Leaf("3"), Leaf(""), Leaf("definition.1"), Leaf(""))
	nested := Sequence(Leaf("a"), Sequence(Leaf("b")))

	tests := []struct {
		name string
		g    Group
		n    int
		want bool
	}{
		{"five leaves", payload, 5, true},
		{"wrong count", payload, 4, false},
		{"leaf is no sequence", Leaf("x"), 0, false},
		{"nested child", nested, 2, false},
		{"empty sequence", Sequence(), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.IsLeafSequence(tt.n); got != tt.want {
				t.Errorf("IsLeafSequence(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestGroupAccessors(t *testing.T) {
	g := Sequence(Leaf("key"), Sequence(Leaf("x"), Leaf("y")))

	if g.IsLeaf() {
		t.Error("IsLeaf() = true for a sequence")
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
	if g.At(0).Text() != "key" {
		t.Errorf("At(0).Text() = %q, want key", g.At(0).Text())
	}
	if g.Text() != "" {
		t.Errorf("Text() of sequence = %q, want empty", g.Text())
	}
	if len(g.Children()) != 2 {
		t.Errorf("len(Children()) = %d, want 2", len(g.Children()))
	}
	if Leaf("x").Len() != 0 {
		t.Errorf("Leaf.Len() = %d, want 0", Leaf("x").Len())
	}
}

func TestGroupRepr(t *testing.T) {
	g := Sequence(Leaf("defn:monoid"), Sequence(Leaf("1"), Leaf("")))
	want := `["defn:monoid", ["1", ""]]`
	if got := g.Repr(); got != want {
		t.Errorf("Repr() = %s, want %s", got, want)
	}
}

func TestGroupEqual(t *testing.T) {
	if Leaf("a").Equal(Sequence(Leaf("a"))) {
		t.Error("leaf equals sequence")
	}
	if !Sequence(Leaf("a")).Equal(Sequence(Leaf("a"))) {
		t.Error("identical sequences not equal")
	}
	if Sequence(Leaf("a")).Equal(Sequence(Leaf("b"))) {
		t.Error("different leaves compare equal")
	}
}
