package patch

import "testing"

const simplePatch = `diff --git a/greeting.txt b/greeting.txt
index 1111111..2222222 100644
--- a/greeting.txt
+++ b/greeting.txt
@@ -1,3 +1,3 @@
 hello
-old line
+new line
 goodbye
`

func TestPairsRebuildsBothSides(t *testing.T) {
	pairs, err := Pairs([]byte(simplePatch))
	if err != nil {
		t.Fatalf("Pairs() error = %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}

	p := pairs[0]
	if p.Name != "greeting.txt" {
		t.Fatalf("Name = %q, want greeting.txt", p.Name)
	}
	if want := "hello\nold line\ngoodbye\n"; p.OldText != want {
		t.Fatalf("OldText = %q, want %q", p.OldText, want)
	}
	if want := "hello\nnew line\ngoodbye\n"; p.NewText != want {
		t.Fatalf("NewText = %q, want %q", p.NewText, want)
	}
}

const multiFilePatch = `diff --git a/a.txt b/a.txt
index 1111111..2222222 100644
--- a/a.txt
+++ b/a.txt
@@ -1 +1 @@
-one
+uno
diff --git a/b.txt b/b.txt
index 3333333..4444444 100644
--- a/b.txt
+++ b/b.txt
@@ -1 +1,2 @@
 two
+three
`

func TestPairsSplitsFiles(t *testing.T) {
	pairs, err := Pairs([]byte(multiFilePatch))
	if err != nil {
		t.Fatalf("Pairs() error = %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[0].Name != "a.txt" || pairs[1].Name != "b.txt" {
		t.Fatalf("names = %q, %q", pairs[0].Name, pairs[1].Name)
	}
	if pairs[1].NewText != "two\nthree\n" {
		t.Fatalf("b.txt NewText = %q", pairs[1].NewText)
	}
}

const noNewlinePatch = `diff --git a/c.txt b/c.txt
index 5555555..6666666 100644
--- a/c.txt
+++ b/c.txt
@@ -1 +1 @@
-end
\ No newline at end of file
+end!
\ No newline at end of file
`

func TestPairsHonorsNoNewlineMarker(t *testing.T) {
	pairs, err := Pairs([]byte(noNewlinePatch))
	if err != nil {
		t.Fatalf("Pairs() error = %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].OldText != "end" || pairs[0].NewText != "end!" {
		t.Fatalf("got old=%q new=%q, want end/end!", pairs[0].OldText, pairs[0].NewText)
	}
}

func TestPairsRejectsGarbage(t *testing.T) {
	if _, err := Pairs([]byte("this is not a diff")); err == nil {
		// sourcegraph/go-diff treats unknown prose as an empty diff, so an
		// empty result is also acceptable here.
		pairs, _ := Pairs([]byte("this is not a diff"))
		if len(pairs) != 0 {
			t.Fatalf("garbage input produced %d pairs", len(pairs))
		}
	}
}
