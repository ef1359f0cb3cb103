package metadata

import "testing"

func TestGetDefaultsToEmpty(t *testing.T) {
	r := New()
	if got := r.Get("artist"); got != "" {
		t.Errorf("Get on empty record = %q, want \"\"", got)
	}
	if got := r.GetAll("artists"); len(got) != 0 {
		t.Errorf("GetAll on empty record = %v, want empty", got)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	r := New()
	r.Set("Artist", "Lead Artist")
	if got := r.Get("artist"); got != "Lead Artist" {
		t.Errorf("Get(artist) = %q, want %q", got, "Lead Artist")
	}
	// Tag names are case-insensitive
	if got := r.Get("ARTIST"); got != "Lead Artist" {
		t.Errorf("Get(ARTIST) = %q, want %q", got, "Lead Artist")
	}
}

func TestMultiValue(t *testing.T) {
	r := New()
	r.SetAll("artists", []string{"Lead Artist", "Guest A"})

	got := r.GetAll("artists")
	if len(got) != 2 || got[0] != "Lead Artist" || got[1] != "Guest A" {
		t.Errorf("GetAll(artists) = %v", got)
	}
	// Get returns the first value
	if first := r.Get("artists"); first != "Lead Artist" {
		t.Errorf("Get(artists) = %q, want %q", first, "Lead Artist")
	}

	// Mutating the returned slice must not affect the record
	got[0] = "changed"
	if r.Get("artists") != "Lead Artist" {
		t.Error("GetAll returned a live slice, want a copy")
	}
}

func TestContainsAndDelete(t *testing.T) {
	r := New()
	r.Set("title", "Song Title")
	if !r.Contains("title") {
		t.Error("Contains(title) = false after Set")
	}
	r.Delete("title")
	if r.Contains("title") {
		t.Error("Contains(title) = true after Delete")
	}
	// Deleting an absent tag is a no-op
	r.Delete("title")
}

func TestKeysPreserveInsertionOrder(t *testing.T) {
	r := New()
	r.Set("artist", "a")
	r.Set("title", "t")
	r.Set("album", "b")
	r.Set("artist", "a2") // update must not reorder

	keys := r.Keys()
	want := []string{"artist", "title", "album"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := New()
	r.Set("artist", "Lead Artist")
	r.SetAll("artists", []string{"Lead Artist", "Guest A"})

	c := r.Clone()
	c.Set("artist", "Other")
	c.Delete("artists")

	if r.Get("artist") != "Lead Artist" {
		t.Error("Clone mutation leaked into original single value")
	}
	if len(r.GetAll("artists")) != 2 {
		t.Error("Clone mutation leaked into original multi value")
	}
}
