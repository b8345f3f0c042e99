package slack

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/require"

	"github.com/nikmy/timebot/internal/commands"
	"github.com/nikmy/timebot/internal/users"
	"github.com/nikmy/timebot/pkg/errors"
	"github.com/nikmy/timebot/pkg/logger"
)

const secret = "8f742231b10e8888abcd99yyyzzz85a5"

type fakeAPI struct {
	tz      string
	infoErr error

	posted chan [2]string
}

func (f *fakeAPI) GetUserInfoContext(_ context.Context, user string) (*slackapi.User, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return &slackapi.User{ID: user, TZ: f.tz}, nil
}

func (f *fakeAPI) PostMessageContext(_ context.Context, channelID string, _ ...slackapi.MsgOption) (string, string, error) {
	f.posted <- [2]string{channelID, ""}
	return channelID, "1", nil
}

type recordingHandler struct {
	got chan commands.Command
}

func (h *recordingHandler) Handle(ctx context.Context, cmd commands.Command, r commands.Responder) error {
	h.got <- cmd
	return r.Reply(ctx, "ok")
}

func sign(t *testing.T, req *http.Request, body string, ts time.Time) {
	stamp := strconv.FormatInt(ts.Unix(), 10)

	mac := hmac.New(sha256.New, []byte(secret))
	_, err := mac.Write([]byte("v0:" + stamp + ":" + body))
	require.NoError(t, err)

	req.Header.Set("X-Slack-Request-Timestamp", stamp)
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
}

func commandRequest(t *testing.T, form url.Values, signedAt time.Time) *http.Request {
	body := form.Encode()
	req := httptest.NewRequest(http.MethodPost, "/slack/commands", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if !signedAt.IsZero() {
		sign(t, req, body, signedAt)
	}
	return req
}

func testServer(t *testing.T) (*server, *recordingHandler, chan string) {
	handler := &recordingHandler{got: make(chan commands.Command, 1)}
	webhooks := make(chan string, 1)

	var cfg Config
	cfg.SigningSecret = secret

	s := newServer(
		cfg,
		logger.NewStub(),
		handler,
		&fakeAPI{posted: make(chan [2]string, 1)},
		func(_ context.Context, url string, msg *slackapi.WebhookMessage) error {
			webhooks <- url + " " + msg.ResponseType + " " + msg.Text
			return nil
		},
		promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go s.queue.Run(ctx)

	return s, handler, webhooks
}

func TestServer_HandleCommand(t *testing.T) {
	s, handler, webhooks := testServer(t)

	form := url.Values{
		"command":      {"/time"},
		"text":         {"09:00 team1"},
		"user_id":      {"U1"},
		"user_name":    {"alice"},
		"channel_id":   {"C1"},
		"response_url": {"https://hooks.slack.test/commands/1"},
	}

	resp, err := s.http.Test(commandRequest(t, form, time.Now()))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Empty(t, body)

	select {
	case cmd := <-handler.got:
		require.Equal(t, commands.Command{
			Name:      commands.Time,
			Text:      "09:00 team1",
			UserID:    "U1",
			UserName:  "alice",
			ChannelID: "C1",
		}, cmd)
	case <-time.After(time.Second):
		t.Fatal("command was not handled")
	}

	select {
	case got := <-webhooks:
		require.Equal(t, "https://hooks.slack.test/commands/1 ephemeral ok", got)
	case <-time.After(time.Second):
		t.Fatal("no reply was sent")
	}
}

func TestServer_AckHasNoBody(t *testing.T) {
	s, handler, webhooks := testServer(t)

	form := url.Values{
		"command":      {"/list-locations"},
		"text":         {"команда+1 & co"},
		"user_id":      {"U7"},
		"channel_id":   {"C7"},
		"response_url": {"https://hooks.slack.test/commands/7"},
	}

	resp, err := s.http.Test(commandRequest(t, form, time.Now()))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Zero(t, resp.ContentLength)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "", string(body))

	select {
	case cmd := <-handler.got:
		require.Equal(t, commands.ListLocations, cmd.Name)
		require.Equal(t, "команда+1 & co", cmd.Text)
	case <-time.After(time.Second):
		t.Fatal("command was not handled")
	}

	select {
	case got := <-webhooks:
		require.Equal(t, "https://hooks.slack.test/commands/7 ephemeral ok", got)
	case <-time.After(time.Second):
		t.Fatal("no reply was sent")
	}
}

func TestServer_RejectsUnsigned(t *testing.T) {
	type testcase struct {
		name     string
		signedAt time.Time
		tamper   bool
	}

	tests := [...]testcase{
		{name: "no signature"},
		{name: "expired", signedAt: time.Now().Add(-time.Hour)},
		{name: "tampered body", signedAt: time.Now(), tamper: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, handler, _ := testServer(t)

			form := url.Values{"command": {"/time"}, "user_id": {"U1"}, "text": {"09:00"}}
			req := commandRequest(t, form, tt.signedAt)
			if tt.tamper {
				signature := req.Header.Get("X-Slack-Signature")
				stamp := req.Header.Get("X-Slack-Request-Timestamp")
				req = commandRequest(t, url.Values{"command": {"/time"}, "user_id": {"U2"}}, time.Time{})
				req.Header.Set("X-Slack-Signature", signature)
				req.Header.Set("X-Slack-Request-Timestamp", stamp)
			}

			resp, err := s.http.Test(req)
			require.NoError(t, err)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			select {
			case <-handler.got:
				t.Fatal("unverified command must not be handled")
			case <-time.After(50 * time.Millisecond):
			}
		})
	}
}

func TestServer_BadForm(t *testing.T) {
	s, _, _ := testServer(t)

	resp, err := s.http.Test(commandRequest(t, url.Values{"text": {"09:00"}}, time.Now()))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	s, _, _ := testServer(t)

	resp, err := s.http.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = s.http.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDirectory_Timezone(t *testing.T) {
	ctx := context.Background()

	zone, err := NewDirectory(&fakeAPI{tz: "Europe/Minsk"}).Timezone(ctx, "U1")
	require.NoError(t, err)
	require.Equal(t, "Europe/Minsk", zone)

	_, err = NewDirectory(&fakeAPI{}).Timezone(ctx, "U1")
	require.True(t, errors.Is(err, users.ErrTimezoneUnknown))

	_, err = NewDirectory(&fakeAPI{infoErr: io.EOF}).Timezone(ctx, "U1")
	require.True(t, errors.Is(err, users.ErrUpstream))
}

func TestResponder(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{posted: make(chan [2]string, 1)}

	r := &responder{api: api, postWebhook: func(context.Context, string, *slackapi.WebhookMessage) error {
		return io.ErrClosedPipe
	}}

	require.NoError(t, r.Ack(ctx))
	require.Error(t, r.Reply(ctx, "no url"))

	r.responseURL = "https://hooks.slack.test/1"
	require.True(t, errors.Is(r.Reply(ctx, "fails"), io.ErrClosedPipe))

	require.NoError(t, r.Post(ctx, "C9", "hello"))
	require.Equal(t, "C9", (<-api.posted)[0])
}

func TestEscapeText(t *testing.T) {
	require.Equal(t, "/time &lt;ЧЧ:ММ&gt; [account] &amp; *bold*", EscapeText("/time <ЧЧ:ММ> [account] & *bold*"))
}
