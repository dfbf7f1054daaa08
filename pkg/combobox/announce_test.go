package combobox

import "testing"

func TestAnnouncerDefaults(t *testing.T) {
	var announcer Announcer
	cases := map[int]string{
		0: "0 options",
		1: "1 option",
		2: "2 options",
		7: "7 options",
	}
	for count, want := range cases {
		if got := announcer.Announce(count); got != want {
			t.Fatalf("Announce(%d) = %q, want %q", count, got, want)
		}
	}
}

func TestAnnouncerCustomMessages(t *testing.T) {
	announcer := NewAnnouncer(Messages{Singular: "%d opção", Plural: "%d opções"})
	if got := announcer.Announce(1); got != "1 opção" {
		t.Fatalf("unexpected singular: %q", got)
	}
	if got := announcer.Announce(0); got != "0 opções" {
		t.Fatalf("unexpected plural: %q", got)
	}
	if got := announcer.Messages().Empty; got != "No options" {
		t.Fatalf("expected default empty message, got %q", got)
	}
}
