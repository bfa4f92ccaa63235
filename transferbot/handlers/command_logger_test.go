package handlers

import (
	"errors"
	"strings"
	"testing"

	"github.com/disgoorg/disgo/discord"
)

func TestLoggedPassesThroughHandlerResult(t *testing.T) {
	want := errors.New("boom")
	if err := logged("cmd", "failing", discord.User{}, func() error { return want }); !errors.Is(err, want) {
		t.Errorf("logged() = %v, want %v", err, want)
	}
	if err := logged("cmd", "passing", discord.User{}, func() error { return nil }); err != nil {
		t.Errorf("logged() = %v, want nil", err)
	}
}

func TestLoggedTurnsPanicIntoError(t *testing.T) {
	err := logged("cmd", "panicking", discord.User{}, func() error { panic("nil deref") })
	if err == nil {
		t.Fatal("logged() = nil, want error from recovered panic")
	}
	if !strings.Contains(err.Error(), "nil deref") {
		t.Errorf("logged() error %q does not carry the panic value", err)
	}
}
