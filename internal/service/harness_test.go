package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/realahmed45/future-bali-frontend/internal/backend"
	"github.com/realahmed45/future-bali-frontend/internal/config"
	"github.com/realahmed45/future-bali-frontend/internal/emailjs"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/internal/notify"
	"github.com/realahmed45/future-bali-frontend/internal/repository"
	"github.com/realahmed45/future-bali-frontend/internal/repository/memory"
	"github.com/realahmed45/future-bali-frontend/internal/session"
	"github.com/realahmed45/future-bali-frontend/internal/storage"
)

type recorded struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]interface{}
}

// fakeUpstream serves canned responses per path and records every request
type fakeUpstream struct {
	t        *testing.T
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []recorded
	srv      *httptest.Server
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	f := &fakeUpstream{t: t, handlers: map[string]http.HandlerFunc{}}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeUpstream) serve(w http.ResponseWriter, r *http.Request) {
	rec := recorded{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
	if r.Header.Get("Content-Type") == "application/json" {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &rec.Body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	h, ok := f.handlers[r.URL.Path]
	f.mu.Unlock()
	if !ok {
		respond(w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "no route " + r.URL.Path})
		return
	}
	h(w, r)
}

func (f *fakeUpstream) on(path string, h http.HandlerFunc) {
	f.mu.Lock()
	f.handlers[path] = h
	f.mu.Unlock()
}

func (f *fakeUpstream) reply(path string, status int, body interface{}) {
	f.on(path, func(w http.ResponseWriter, r *http.Request) {
		respond(w, status, body)
	})
}

func (f *fakeUpstream) calls(path string) []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recorded
	for _, r := range f.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type harness struct {
	api      *fakeUpstream
	mail     *fakeUpstream
	store    *storage.Store
	session  *session.Session
	repos    *repository.Repositories
	notifier *notify.Center
	checkout *checkoutService
	auth     *authFlow
}

var (
	testOTPTemplate     = emailjs.Template{ServiceID: "svc_otp", TemplateID: "tpl_otp", PublicKey: "pk"}
	testConfirmTemplate = emailjs.Template{ServiceID: "svc_confirm", TemplateID: "tpl_confirm", PublicKey: "pk"}
)

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		api:      newFakeUpstream(t),
		mail:     newFakeUpstream(t),
		repos:    memory.NewRepositories(),
		notifier: notify.NewCenter(time.Minute),
	}
	h.mail.reply("/api/v1.0/email/send", http.StatusOK, "OK")

	store, err := storage.Open("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	h.store = store

	sess, err := session.New(store, nil)
	require.NoError(t, err)
	h.session = sess

	graph, err := nav.LoadGraph()
	require.NoError(t, err)

	client := backend.NewClient(h.api.srv.URL+"/api", sess, nil)
	mailer := emailjs.NewClient(h.mail.srv.URL, nil)
	timeouts := config.BackendConfig{
		AuthTimeout:     2 * time.Second,
		VerifyTimeout:   2 * time.Second,
		FormTimeout:     2 * time.Second,
		ContractTimeout: 2 * time.Second,
	}

	h.checkout = NewCheckoutService(CheckoutDeps{
		Backend:  client,
		Session:  sess,
		Store:    store,
		Repos:    h.repos,
		Graph:    graph,
		Notifier: h.notifier,
		Mailer:   mailer,
		Confirm:  testConfirmTemplate,
		FromName: "My Future Life Bali",
		Timeouts: timeouts,
	})
	h.checkout.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	h.auth = NewAuthFlow(client, mailer, testOTPTemplate, sess, timeouts.AuthTimeout, nil)
	return h
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	require.NoError(t, h.session.Login("tok-123"))
}

func ok(extra map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{"success": true}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func strPtr(s string) *string { return &s }
