package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

const conflictBody = `{"ok":false,"error_code":409,"description":"Conflict: terminated by other getUpdates request; make sure that only one bot instance is running"}`

// fakeAPI serves getMe and delegates getUpdates to updates
type fakeAPI struct {
	mu      sync.Mutex
	offsets []string
	updates func(call int) string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"relay","username":"relay_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/getUpdates"):
		var params map[string]string
		_ = json.NewDecoder(r.Body).Decode(&params)

		f.mu.Lock()
		f.offsets = append(f.offsets, params["offset"])
		call := len(f.offsets)
		f.mu.Unlock()

		_, _ = w.Write([]byte(f.updates(call)))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) seenOffsets() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.offsets...)
}

func newStubBot(t *testing.T, api *fakeAPI) *tele.Bot {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	bot, err := tele.NewBot(tele.Settings{URL: srv.URL, Token: "test-token"})
	require.NoError(t, err)
	return bot
}

func TestPoller_DeliversUpdatesAndAdvancesOffset(t *testing.T) {
	api := &fakeAPI{updates: func(call int) string {
		if call == 1 {
			return `{"ok":true,"result":[{"update_id":5,"message":{"message_id":1,"text":"salam"}},{"update_id":6}]}`
		}
		time.Sleep(5 * time.Millisecond)
		return `{"ok":true,"result":[]}`
	}}
	bot := newStubBot(t, api)

	var errs []error
	poller := NewPoller(0, func(err error, _ tele.Context) { errs = append(errs, err) })

	dest := make(chan tele.Update)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		poller.Poll(bot, dest, stop)
		close(done)
	}()

	first := <-dest
	second := <-dest
	assert.Equal(t, 5, first.ID)
	require.NotNil(t, first.Message)
	assert.Equal(t, "salam", first.Message.Text)
	assert.Equal(t, 6, second.ID)

	require.Eventually(t, func() bool { return len(api.seenOffsets()) >= 2 }, time.Second, 5*time.Millisecond)

	close(stop)
	<-done

	offsets := api.seenOffsets()
	assert.Equal(t, "1", offsets[0])
	assert.Equal(t, "7", offsets[1])
	assert.Empty(t, errs)
}

func TestPoller_ReportsConflict(t *testing.T) {
	api := &fakeAPI{updates: func(int) string { return conflictBody }}
	bot := newStubBot(t, api)

	errs := make(chan error, 16)
	poller := NewPoller(0, func(err error, c tele.Context) {
		assert.Nil(t, c)
		select {
		case errs <- err:
		default:
		}
	})
	poller.RetryDelay = 10 * time.Millisecond

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		poller.Poll(bot, make(chan tele.Update), stop)
		close(done)
	}()

	select {
	case err := <-errs:
		assert.True(t, IsConflict(err), "unexpected error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("poll error was not reported")
	}

	close(stop)
	<-done
}

func TestPoller_BacksOffAfterError(t *testing.T) {
	api := &fakeAPI{updates: func(int) string { return conflictBody }}
	bot := newStubBot(t, api)

	poller := NewPoller(0, nil)
	poller.RetryDelay = time.Hour

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		poller.Poll(bot, make(chan tele.Update), stop)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(api.seenOffsets()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, api.seenOffsets(), 1)

	// Stop interrupts the retry wait
	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop during retry wait")
	}
}
