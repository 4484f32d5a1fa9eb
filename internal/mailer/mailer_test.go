package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Send(context.Background(), Message{ToEmail: "a@example.com", Subject: "hi"}))
	require.Len(t, r.Sent(), 1)
	assert.Equal(t, "a@example.com", r.Sent()[0].ToEmail)

	r.Err = errors.New("boom")
	require.Error(t, r.Send(context.Background(), Message{}))
	assert.Len(t, r.Sent(), 1)
}

func TestSendGridBuild(t *testing.T) {
	s := NewSendGrid("key", "LMS", "", "noreply@example.com")
	m := s.build(Message{ToName: "Ann", ToEmail: "ann@example.com", Subject: "Invite", PlainText: "join", HTML: "<b>join</b>"})

	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "[LMS] Invite", m.Personalizations[0].Subject)
	assert.Equal(t, "ann@example.com", m.Personalizations[0].To[0].Address)
	assert.Equal(t, "LMS", m.From.Name)
	assert.Len(t, m.Content, 2)
}

func TestSendGridSend(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "accepted", status: http.StatusAccepted},
		{name: "rejected", status: http.StatusUnauthorized, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got sgmail.SGMailV3

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v3/mail/send", r.URL.Path)
				assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

				body, _ := io.ReadAll(r.Body)
				_ = json.Unmarshal(body, &got)

				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			s := NewSendGrid("key", "LMS", "LMS", "noreply@example.com")
			s.host = srv.URL

			err := s.Send(context.Background(), Message{ToEmail: "bob@example.com", Subject: "s", PlainText: "p"})
			if tc.wantErr {
				require.ErrorIs(t, err, ErrDeliveryFailed)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "[LMS] s", got.Personalizations[0].Subject)
		})
	}
}
