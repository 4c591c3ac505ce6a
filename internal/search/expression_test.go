package search

import "testing"

func TestExpression(t *testing.T) {
	t.Run("Empty Expression Renders Nothing", func(t *testing.T) {
		if got := New().String(); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("Fts", func(t *testing.T) {
		if got := New().Fts("sunrise").String(); got != "sunrise" {
			t.Errorf("unexpected rendering %q", got)
		}
	})

	t.Run("Values With Spaces Are Quoted", func(t *testing.T) {
		if got := New().Fts("golden hour").String(); got != `"golden hour"` {
			t.Errorf("unexpected rendering %q", got)
		}
	})

	t.Run("Eq", func(t *testing.T) {
		if got := New().Eq(FileName, "*.png").String(); got != "fn:*.png" {
			t.Errorf("unexpected rendering %q", got)
		}
	})

	t.Run("Empty Field", func(t *testing.T) {
		if got := New().Empty("5").String(); got != "5:" {
			t.Errorf("unexpected rendering %q", got)
		}
	})

	t.Run("Range", func(t *testing.T) {
		if got := New().Range(PixelHeight, "500", "1024").String(); got != "ph:500~~1024" {
			t.Errorf("unexpected rendering %q", got)
		}
	})

	t.Run("Chained Filters Combine With AND", func(t *testing.T) {
		got := New().Eq(FileName, "*.png").Fts("pride").String()
		if got != "( fn:*.png ) AND ( pride )" {
			t.Errorf("unexpected rendering %q", got)
		}
	})

	t.Run("Or Composition", func(t *testing.T) {
		lhs := New().Eq(FileName, "*.png")
		rhs := New().Range(PixelHeight, "500", "1024")

		got := lhs.Or(rhs).String()
		if got != "( fn:*.png ) OR ( ph:500~~1024 )" {
			t.Errorf("unexpected rendering %q", got)
		}
	})

	t.Run("Not Wraps The Whole Expression", func(t *testing.T) {
		got := New().Eq(AssetType, "image").Not().String()
		if got != "NOT ( dt:image )" {
			t.Errorf("unexpected rendering %q", got)
		}
	})

	t.Run("Or With Empty Side Is Identity", func(t *testing.T) {
		e := New().Fts("x")
		if got := New().Or(e).String(); got != "x" {
			t.Errorf("unexpected rendering %q", got)
		}
		if got := e.Or(New()).String(); got != "x" {
			t.Errorf("unexpected rendering %q", got)
		}
	})

	t.Run("Builder Does Not Mutate Receiver", func(t *testing.T) {
		base := New().Fts("base")
		base.Eq(FileName, "*.png")

		if got := base.String(); got != "base" {
			t.Errorf("expected receiver to stay unchanged, got %q", got)
		}
	})
}
