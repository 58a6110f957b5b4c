package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/http/respond"
	"github.com/hongminglow/labubu-portal/internal/middleware"
	"github.com/hongminglow/labubu-portal/internal/signup"
	"github.com/hongminglow/labubu-portal/internal/storage/memory"
)

type countingWait struct {
	calls int
}

func (c *countingWait) wait(context.Context, time.Duration) error {
	c.calls++
	return nil
}

func newSignupRouter(enabled bool, wait signup.Wait) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Visitor("sid", time.Hour))
	NewSignupHandler(memory.New(), signup.Flags{SendCodeEnabled: enabled}, wait, zap.NewNop()).Register(r)
	return r
}

func call(t *testing.T, h http.Handler, cookie *http.Cookie, method, path, body string) (*httptest.ResponseRecorder, signup.State) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env struct {
		respond.Envelope
		Data signup.State `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return rec, env.Data
}

func TestSignupFlowPersistsPerVisitor(t *testing.T) {
	waits := &countingWait{}
	h := newSignupRouter(true, waits.wait)

	rec, st := call(t, h, nil, http.MethodGet, "/api/signup", "")
	if st.Step != signup.StepPhone {
		t.Fatalf("initial step = %q", st.Step)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected a visitor cookie, got %d", len(cookies))
	}
	sid := cookies[0]

	call(t, h, sid, http.MethodPost, "/api/signup/phone", `{"phone":"8 (999) 123-45-67"}`)
	if rec, st = call(t, h, sid, http.MethodPost, "/api/signup/send-code", ""); rec.Code != http.StatusOK || st.Step != signup.StepCode {
		t.Fatalf("send-code = %d %+v", rec.Code, st)
	}
	if st.MaskedPhone != "+8 (999) ***-**-67" {
		t.Fatalf("masked = %q", st.MaskedPhone)
	}

	call(t, h, sid, http.MethodPost, "/api/signup/code", `{"code":"12a34"}`)
	before := waits.calls
	if rec, st = call(t, h, sid, http.MethodPost, "/api/signup/change-number", ""); rec.Code != http.StatusOK || st.Step != signup.StepPhone {
		t.Fatalf("change-number = %d %+v", rec.Code, st)
	}
	if waits.calls != before {
		t.Fatal("change number must not wait")
	}

	// A different visitor starts fresh.
	if _, other := call(t, h, nil, http.MethodGet, "/api/signup", ""); other.Phone != "" {
		t.Fatalf("state leaked across visitors: %+v", other)
	}
}

func TestSignupVerifyRequiresFullCode(t *testing.T) {
	h := newSignupRouter(true, (&countingWait{}).wait)
	rec, _ := call(t, h, nil, http.MethodGet, "/api/signup", "")
	sid := rec.Result().Cookies()[0]

	call(t, h, sid, http.MethodPost, "/api/signup/phone", `{"phone":"79991234567"}`)
	call(t, h, sid, http.MethodPost, "/api/signup/send-code", "")
	call(t, h, sid, http.MethodPost, "/api/signup/code", `{"code":"12"}`)

	if rec, st := call(t, h, sid, http.MethodPost, "/api/signup/verify", ""); rec.Code != http.StatusUnprocessableEntity || st.Step != signup.StepCode {
		t.Fatalf("verify = %d %+v", rec.Code, st)
	}
	call(t, h, sid, http.MethodPost, "/api/signup/code", `{"code":"1234"}`)
	rec, st := call(t, h, sid, http.MethodPost, "/api/signup/verify", "")
	if rec.Code != http.StatusOK || st.Step != signup.StepRegistered || st.CreditLimit != signup.CreditLimit {
		t.Fatalf("verify = %d %+v", rec.Code, st)
	}
}

func TestSignupWrongStepConflicts(t *testing.T) {
	h := newSignupRouter(true, nil)
	if rec, _ := call(t, h, nil, http.MethodPost, "/api/signup/change-number", ""); rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
}
