package discovery

import (
	"errors"
	"strings"
	"testing"
)

func TestAnnouncementRoundTrip(t *testing.T) {
	payload, err := NewAnnouncement(5555).Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got := string(payload); !strings.Contains(got, `"service":"snake-game-server"`) ||
		!strings.Contains(got, `"port":5555`) {
		t.Fatalf("unexpected payload %s", got)
	}
	a, err := Parse(payload)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.Port != 5555 || a.Service != ServiceName {
		t.Fatalf("round trip = %+v", a)
	}
}

func TestParseRejectsForeignService(t *testing.T) {
	_, err := Parse([]byte(`{"service":"chat-server","port":5555}`))
	if !errors.Is(err, ErrUnknownService) {
		t.Fatalf("err = %v, want ErrUnknownService", err)
	}
}

func TestParseRejectsBadPort(t *testing.T) {
	for _, payload := range []string{
		`{"service":"snake-game-server","port":0}`,
		`{"service":"snake-game-server","port":-1}`,
		`{"service":"snake-game-server","port":70000}`,
		`{"service":"snake-game-server"}`,
	} {
		if _, err := Parse([]byte(payload)); !errors.Is(err, ErrInvalidPort) {
			t.Errorf("Parse(%s) = %v, want ErrInvalidPort", payload, err)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("garbage payload parsed")
	}
}

func TestMarshalRefusesInvalid(t *testing.T) {
	if _, err := NewAnnouncement(0).Marshal(); !errors.Is(err, ErrInvalidPort) {
		t.Fatalf("err = %v, want ErrInvalidPort", err)
	}
}
