package slack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hamiltra/net-reminder/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirror_Send(t *testing.T) {
	var gotPath, gotChannel, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotChannel = r.FormValue("channel")
		gotText = r.FormValue("text")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C0NETS","ts":"1704412800.000100"}`))
	}))
	defer srv.Close()

	m := NewMirror("xoxb-test", "C0NETS", srv.URL+"/")
	assert.Equal(t, "slack", m.Name())

	notice := &notification.Notice{Summary: "Weekly Net for 01/05/2024"}
	require.NoError(t, m.Send(context.Background(), notice, nil))

	assert.Equal(t, "/chat.postMessage", gotPath)
	assert.Equal(t, "C0NETS", gotChannel)
	assert.Equal(t, "Weekly Net for 01/05/2024", gotText)
}

func TestMirror_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	}))
	defer srv.Close()

	err := NewMirror("xoxb-test", "C0GONE", srv.URL+"/").Send(context.Background(), &notification.Notice{Summary: "x"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}
