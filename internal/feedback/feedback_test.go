package feedback

import (
	"errors"
	"fmt"
	"testing"
	"unicode"

	"github.com/hongminglow/labubu-portal/internal/remote"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"rejection with message", &remote.Rejection{Message: "user exists"}, "user exists"},
		{"rejection without message", &remote.Rejection{}, MsgLoginFailed},
		{"wrapped rejection", fmt.Errorf("login: %w", &remote.Rejection{Message: "nope"}), "nope"},
		{"transport", fmt.Errorf("auth: %w", remote.ErrTransport), MsgConnectionError},
		{"anything else", errors.New("boom"), MsgConnectionError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Describe(tc.err, MsgLoginFailed); got != tc.want {
				t.Fatalf("Describe = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBoxKinds(t *testing.T) {
	inline := NewInline()
	if inline.Current() != nil {
		t.Fatal("new box must be empty")
	}
	inline.Report("bad")
	if got := inline.Current(); got == nil || got.Kind != Inline || got.Text != "bad" {
		t.Fatalf("inline = %+v", got)
	}
	inline.Clear()
	if inline.Current() != nil {
		t.Fatal("clear must empty the box")
	}

	alert := NewAlert()
	alert.Report("worse")
	if got := alert.Current(); got.Kind != Alert {
		t.Fatalf("alert kind = %s", got.Kind)
	}
}

func TestSignedRub(t *testing.T) {
	if got := SignedRub(500, true); got != "−500 ₽" {
		t.Fatalf("debit = %q", got)
	}
	if got := SignedRub(500, false); got != "+500 ₽" {
		t.Fatalf("credit = %q", got)
	}
}

func TestCatalogueIsRussian(t *testing.T) {
	msgs := []string{
		MsgConnectionError, MsgPasswordMismatch, MsgPasswordTooShort, MsgAmountOutOfRange,
		MsgTermOutOfRange, MsgInvalidAmount, MsgLoginFailed, MsgRegisterFailed,
		MsgLoanFailed, MsgTransferFailed, MsgLoadFailed,
	}
	for _, msg := range msgs {
		cyrillic := false
		for _, r := range msg {
			if unicode.Is(unicode.Cyrillic, r) {
				cyrillic = true
				break
			}
		}
		if !cyrillic {
			t.Errorf("message %q is not Russian", msg)
		}
	}
	if MsgConnectionError != "Ошибка подключения к серверу" || MsgPasswordMismatch != "Пароли не совпадают" {
		t.Fatalf("unexpected wording: %q, %q", MsgConnectionError, MsgPasswordMismatch)
	}
}
