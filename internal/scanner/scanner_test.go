package scanner

import "testing"

func TestNormal(t *testing.T) {
	s := New([]byte("1 2\n3 str"))

	v, err := s.ReadInt()
	if err != nil || v != 1 {
		t.Fatalf("ReadInt #1 = %d, %v, want 1, nil", v, err)
	}
	if !s.ExpectSpace() {
		t.Fatal("ExpectSpace after 1 failed")
	}
	v, err = s.ReadInt()
	if err != nil || v != 2 {
		t.Fatalf("ReadInt #2 = %d, %v, want 2, nil", v, err)
	}
	if !s.ExpectEoln() {
		t.Fatal("ExpectEoln after 2 failed")
	}
	v, err = s.ReadInt()
	if err != nil || v != 3 {
		t.Fatalf("ReadInt #3 = %d, %v, want 3, nil", v, err)
	}
	if !s.ExpectSpace() {
		t.Fatal("ExpectSpace after 3 failed")
	}
	str, err := s.ReadStr()
	if err != nil || str != "str" {
		t.Fatalf("ReadStr = %q, %v, want \"str\", nil", str, err)
	}
	if !s.ExpectEOF() {
		t.Fatal("ExpectEOF failed, scanner not exhausted")
	}
}

func TestTooManySpacesBreaksSequence(t *testing.T) {
	// Same shape as TestNormal but with a stray leading space before "3" —
	// ExpectEoln consumes the '\n', leaving ReadInt to read an empty block
	// (the extra space), which must fail to parse as an integer.
	s := New([]byte("1 2\n 3 str"))

	if v, err := s.ReadInt(); err != nil || v != 1 {
		t.Fatalf("ReadInt #1 = %d, %v", v, err)
	}
	if !s.ExpectSpace() {
		t.Fatal("ExpectSpace failed")
	}
	if v, err := s.ReadInt(); err != nil || v != 2 {
		t.Fatalf("ReadInt #2 = %d, %v", v, err)
	}
	if !s.ExpectEoln() {
		t.Fatal("ExpectEoln failed")
	}
	if _, err := s.ReadInt(); err == nil {
		t.Fatal("ReadInt on leading-space block should have failed to parse")
	}
}

func TestBytes(t *testing.T) {
	s := New([]byte{0, 6, 32})

	if !s.ExpectByte(0) {
		t.Fatal("ExpectByte(0) failed")
	}
	if !s.ExpectByte(6) {
		t.Fatal("ExpectByte(6) failed")
	}
	if !s.ExpectSpace() {
		t.Fatal("ExpectSpace failed")
	}
}

func TestWrongBytesFailsToParse(t *testing.T) {
	s := New([]byte{0, 6, 10})
	if _, err := s.ReadInt(); err == nil {
		t.Fatal("ReadInt on non-numeric block should have failed")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	s := New([]byte("ab"))
	b, ok := s.Peek()
	if !ok || b != 'a' {
		t.Fatalf("Peek = %q, %v, want 'a', true", b, ok)
	}
	b, ok = s.ReadByte()
	if !ok || b != 'a' {
		t.Fatalf("ReadByte = %q, %v, want 'a', true", b, ok)
	}
	b, ok = s.Peek()
	if !ok || b != 'b' {
		t.Fatalf("Peek #2 = %q, %v, want 'b', true", b, ok)
	}
}

func TestReadBlockStopsAtWhitespace(t *testing.T) {
	s := New([]byte(" abc"))
	// positioned on a space: block is empty, whitespace is not skipped.
	if block := s.ReadBlock(); len(block) != 0 {
		t.Fatalf("ReadBlock on leading space = %q, want empty", block)
	}
	s.ReadByte()
	if block := string(s.ReadBlock()); block != "abc" {
		t.Fatalf("ReadBlock = %q, want \"abc\"", block)
	}
}

func TestExpectStr(t *testing.T) {
	s := New([]byte("token rest"))
	if !s.ExpectStr("token") {
		t.Fatal("ExpectStr(\"token\") failed")
	}
}
