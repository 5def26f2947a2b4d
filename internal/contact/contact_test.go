package contact

import (
	"context"
	"errors"
	"net/smtp"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherbolotarbaev/portfolio/internal/store"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("me@example.dev"))
	assert.NoError(t, ValidateEmail("  me@example.dev  "))

	var fe *FieldError
	require.ErrorAs(t, ValidateEmail(""), &fe)
	assert.Equal(t, "email", fe.Field)
	assert.Equal(t, "Email is required", fe.Reason)

	require.ErrorAs(t, ValidateEmail("not-an-email"), &fe)
	assert.Equal(t, "Invalid email address", fe.Reason)
}

func TestFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		form   Form
		field  string
		reason string
	}{
		{name: "valid", form: Form{Email: "me@example.dev", Message: "hello"}},
		{name: "bad email", form: Form{Email: "nope", Message: "hello"}, field: "email", reason: "Invalid email address"},
		{name: "blank message", form: Form{Email: "me@example.dev", Message: "   \n"}, field: "message", reason: "Message is required"},
		{name: "too long", form: Form{Email: "me@example.dev", Message: strings.Repeat("a", MaxMessageLength+1)}, field: "message", reason: "Message must be at most 5000 characters"},
		{name: "limit counts runes", form: Form{Email: "me@example.dev", Message: strings.Repeat("ж", MaxMessageLength)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, tt.reason, fe.Reason)
		})
	}
}

func TestNewMessage(t *testing.T) {
	now := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)

	m, err := NewMessage(Form{Email: " me@example.dev ", Message: "  hi there \n"}, now)
	require.NoError(t, err)
	assert.Len(t, m.ID, 26)
	assert.Equal(t, "me@example.dev", m.Email)
	assert.Equal(t, "hi there", m.Body)
	assert.Equal(t, now, m.CreatedAt)

	_, err = NewMessage(Form{Email: "me@example.dev"}, now)
	assert.Error(t, err)
}

type fakeSender struct {
	sent []Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "contact.db"), "salt")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testMessage(t *testing.T) Message {
	t.Helper()
	m, err := NewMessage(Form{Email: "me@example.dev", Message: "hello"}, time.Now())
	require.NoError(t, err)
	return m
}

func TestSubmitDelivers(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	sender := &fakeSender{}
	svc := NewService(st, sender)

	m := testMessage(t)
	res := svc.Submit(ctx, m)
	assert.True(t, res.OK())
	assert.Empty(t, res.Reason)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, m.ID, sender.sent[0].ID)

	stored, err := st.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Delivered)
}

func TestSubmitWithoutSenderStores(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	svc := NewService(st, nil)

	res := svc.Submit(ctx, testMessage(t))
	assert.Equal(t, StatusSuccess, res.Status)

	stored, err := st.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].Delivered)
}

func TestSubmitSendFailure(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	svc := NewService(st, &fakeSender{err: errors.New("relay down")})

	res := svc.Submit(ctx, testMessage(t))
	assert.Equal(t, StatusError, res.Status)
	assert.NotEmpty(t, res.Reason)
	assert.NotContains(t, res.Reason, "relay down")
}

func TestSMTPSenderCompose(t *testing.T) {
	s := NewSMTPSender("smtp.example.dev", "587", "bot@example.dev", "secret", "")
	assert.Equal(t, "bot@example.dev", s.To)

	var gotAddr string
	var gotTo []string
	var gotMsg string
	s.sendMail = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	m := Message{ID: "01ID", Email: "evil@example.dev\r\nBcc: x@example.dev", Body: "hello", CreatedAt: time.Now()}
	require.NoError(t, s.Send(context.Background(), m))

	assert.Equal(t, "smtp.example.dev:587", gotAddr)
	assert.Equal(t, []string{"bot@example.dev"}, gotTo)
	assert.Contains(t, gotMsg, "Reply-To: evil@example.devBcc: x@example.dev\r\n")
	assert.NotContains(t, gotMsg, "\r\nBcc:")
	assert.Contains(t, gotMsg, "hello")
}
