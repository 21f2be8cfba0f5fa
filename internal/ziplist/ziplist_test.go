package ziplist

import "testing"

func TestPushAndPop(t *testing.T) {
	l := New()
	l.PushTail(Entry{Bytes: []byte("a")})
	l.PushTail(Entry{Bytes: []byte("b")})
	l.PushHead(Entry{Bytes: []byte("z")})

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	head, ok := l.PopHead()
	if !ok || string(head.Bytes) != "z" {
		t.Fatalf("PopHead() = (%q, %v), want (\"z\", true)", head.Bytes, ok)
	}
	tail, ok := l.PopTail()
	if !ok || string(tail.Bytes) != "b" {
		t.Fatalf("PopTail() = (%q, %v), want (\"b\", true)", tail.Bytes, ok)
	}
	if l.Len() != 1 {
		t.Fatalf("Len() after two pops = %d, want 1", l.Len())
	}
}

func TestPopEmpty(t *testing.T) {
	l := New()
	if _, ok := l.PopHead(); ok {
		t.Fatal("PopHead() on empty list should return ok=false")
	}
	if _, ok := l.PopTail(); ok {
		t.Fatal("PopTail() on empty list should return ok=false")
	}
}

func TestInsertAtAndAt(t *testing.T) {
	l := New()
	l.PushTail(Entry{Bytes: []byte("a")})
	l.PushTail(Entry{Bytes: []byte("c")})
	l.InsertAt(1, Entry{Bytes: []byte("b")})

	want := []string{"a", "b", "c"}
	for i, w := range want {
		if string(l.At(i).Bytes) != w {
			t.Fatalf("At(%d) = %q, want %q", i, l.At(i).Bytes, w)
		}
	}
}

func TestSet(t *testing.T) {
	l := New()
	l.PushTail(Entry{Bytes: []byte("a")})
	l.Set(0, Entry{Bytes: []byte("z")})
	if string(l.At(0).Bytes) != "z" {
		t.Fatalf("At(0) after Set = %q, want \"z\"", l.At(0).Bytes)
	}
}

func TestIndexOf(t *testing.T) {
	l := New()
	l.PushTail(Entry{Bytes: []byte("a")})
	l.PushTail(Entry{Bytes: []byte("b")})
	l.PushTail(Entry{Bytes: []byte("a")})

	if i := l.IndexOf([]byte("a"), 0); i != 0 {
		t.Fatalf("IndexOf(a, 0) = %d, want 0", i)
	}
	if i := l.IndexOf([]byte("a"), 1); i != 2 {
		t.Fatalf("IndexOf(a, 1) = %d, want 2", i)
	}
	if i := l.IndexOf([]byte("missing"), 0); i != -1 {
		t.Fatalf("IndexOf(missing, 0) = %d, want -1", i)
	}
}

func TestIndexOfMatchesIntEntry(t *testing.T) {
	l := New()
	l.PushTail(Entry{Int: 42, IsInt: true})
	if i := l.IndexOf([]byte("42"), 0); i != 0 {
		t.Fatalf("IndexOf(\"42\", 0) against an int entry = %d, want 0", i)
	}
}

func TestRemoveAt(t *testing.T) {
	l := New()
	l.PushTail(Entry{Bytes: []byte("a")})
	l.PushTail(Entry{Bytes: []byte("b")})
	l.PushTail(Entry{Bytes: []byte("c")})
	l.RemoveAt(1)
	if l.Len() != 2 || string(l.At(0).Bytes) != "a" || string(l.At(1).Bytes) != "c" {
		t.Fatalf("unexpected state after RemoveAt(1): %+v", l.All())
	}
}

func TestRemoveRange(t *testing.T) {
	l := New()
	for _, s := range []string{"a", "b", "c", "d"} {
		l.PushTail(Entry{Bytes: []byte(s)})
	}
	l.RemoveRange(1, 3)
	if l.Len() != 2 || string(l.At(0).Bytes) != "a" || string(l.At(1).Bytes) != "d" {
		t.Fatalf("unexpected state after RemoveRange(1,3): %+v", l.All())
	}
}

func TestByteLen(t *testing.T) {
	if (Entry{IsInt: true, Int: 1}).ByteLen() != 8 {
		t.Fatal("int entry ByteLen() should be 8")
	}
	if (Entry{Bytes: []byte("abc")}).ByteLen() != 3 {
		t.Fatal("byte entry ByteLen() should match slice length")
	}
}

func TestClear(t *testing.T) {
	l := New()
	l.PushTail(Entry{Bytes: []byte("a")})
	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("Len() after Clear() = %d, want 0", l.Len())
	}
}
