package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(40, 12)

	if s.Width() != 40 {
		t.Errorf("Width() = %d, expected 40", s.Width())
	}
	if s.Height() != 12 {
		t.Errorf("Height() = %d, expected 12", s.Height())
	}

	// A fresh screen is blank with default colors
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Rune != ' ' {
				t.Fatalf("new screen should hold spaces, got %q at (%d, %d)", cell.Rune, x, y)
			}
			if cell.Color != ColorDefault {
				t.Fatalf("new screen should hold ColorDefault, got %v at (%d, %d)", cell.Color, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds writes are silently dropped
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	// Out of bounds reads return a space
	if s.Get(-1, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColor(3, 4, '◆', ColorBrightYellow)

	cell := s.GetCell(3, 4)
	if cell.Rune != '◆' {
		t.Errorf("GetCell rune = %q, expected '◆'", cell.Rune)
	}
	if cell.Color != ColorBrightYellow {
		t.Errorf("GetCell color = %v, expected ColorBrightYellow", cell.Color)
	}

	// Plain Set after SetColor resets the color
	s.Set(3, 4, 'o')
	cell = s.GetCell(3, 4)
	if cell.Color != ColorDefault {
		t.Errorf("Set should reset color to default, got %v", cell.Color)
	}

	// Out of bounds SetColor is silent; out of bounds GetCell returns a blank cell
	s.SetColor(-5, 0, 'Z', ColorRed)
	blank := s.GetCell(-5, 0)
	if blank.Rune != ' ' || blank.Color != ColorDefault {
		t.Errorf("out of bounds GetCell = %+v, expected blank cell", blank)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.Fill('X')
	s.SetColor(2, 2, 'Y', ColorGold)

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			cell := s.GetCell(x, y)
			if cell.Rune != ' ' || cell.Color != ColorDefault {
				t.Fatalf("after Clear, expected blank cell at (%d, %d), got %+v", x, y, cell)
			}
		}
	}
}

func TestScreenFill(t *testing.T) {
	s := NewScreen(5, 5)
	s.Fill('#')

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("after Fill, expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	for i, ch := range "Hello" {
		if s.Get(2+i, 1) != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.Get(2+i, 1))
		}
	}

	// Text clips at the right edge
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextColor(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColor(4, 2, "RUN", ColorBrightCyan)

	for i, ch := range "RUN" {
		cell := s.GetCell(4+i, 2)
		if cell.Rune != ch {
			t.Errorf("DrawTextColor: expected %q at (%d, 2), got %q", ch, 4+i, cell.Rune)
		}
		if cell.Color != ColorBrightCyan {
			t.Errorf("DrawTextColor: expected ColorBrightCyan at (%d, 2), got %v", 4+i, cell.Color)
		}
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	// 2 chars centered in 20 columns start at column 9
	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Error("DrawTextCentered placed text at unexpected position")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("DrawRect: expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}

	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not touch cells outside the rect")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := []struct {
		x, y int
		want rune
	}{
		{1, 1, '┌'},
		{5, 1, '┐'},
		{1, 4, '└'},
		{5, 4, '┘'},
	}
	for _, c := range corners {
		if got := s.Get(c.x, c.y); got != c.want {
			t.Errorf("corner at (%d, %d) = %q, expected %q", c.x, c.y, got, c.want)
		}
	}

	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
}

func TestScreenDrawLines(t *testing.T) {
	s := NewScreen(10, 10)

	s.DrawHLine(2, 2, 5, '═')
	for x := 2; x < 7; x++ {
		if s.Get(x, 2) != '═' {
			t.Errorf("DrawHLine: expected '═' at (%d, 2), got %q", x, s.Get(x, 2))
		}
	}

	s.DrawVLine(3, 4, 4, '│')
	for y := 4; y < 8; y++ {
		if s.Get(3, y) != '│' {
			t.Errorf("DrawVLine: expected '│' at (3, %d), got %q", y, s.Get(3, y))
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	// Shrinking preserves the top-left content
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("after resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved, row 0 = %q", s.Row(0))
	}

	// Growing keeps the old content in place
	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") {
		t.Errorf("Row(2) should start with 'Test', got %q", row)
	}
	if len([]rune(row)) != 10 {
		t.Errorf("row length should be 10, got %d", len([]rune(row)))
	}

	// Out of bounds rows come back blank
	if s.Row(-1) != strings.Repeat(" ", 10) {
		t.Errorf("out of bounds row should be spaces, got %q", s.Row(-1))
	}
}
