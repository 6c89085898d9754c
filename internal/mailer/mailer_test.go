package mailer

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestConfig_IsConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"empty config", Config{}, false},
		{"host only", Config{Host: "smtp.example.com"}, false},
		{"host and port", Config{Host: "smtp.example.com", Port: 587}, true},
		{"port only", Config{Port: 587}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsConfigured(); got != tt.want {
				t.Errorf("IsConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMailer_UnconfiguredSendIsNoop(t *testing.T) {
	m := New(Config{}, zap.NewNop())

	if m.IsConfigured() {
		t.Fatal("IsConfigured() = true for empty config")
	}

	err := m.Send(&Message{To: "a@b.com", Subject: "s", Body: "b"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Send() = %v, want ErrNotConfigured", err)
	}

	if err := m.Probe(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Probe() = %v, want ErrNotConfigured", err)
	}
}

func TestMailer_From(t *testing.T) {
	m := New(Config{Host: "h", Port: 25, Username: "user@example.com"}, zap.NewNop())
	if got := m.From(); got != "user@example.com" {
		t.Errorf("From() = %q, want username fallback", got)
	}

	m = New(Config{Host: "h", Port: 25, Username: "user@example.com", From: "capsule@example.com"}, zap.NewNop())
	if got := m.From(); got != "capsule@example.com" {
		t.Errorf("From() = %q, want configured from", got)
	}
}

func TestRunWithTimeout(t *testing.T) {
	// 按时完成
	if err := runWithTimeout(time.Second, func() error { return nil }); err != nil {
		t.Errorf("runWithTimeout fast fn = %v, want nil", err)
	}

	// 透传错误
	boom := errors.New("boom")
	if err := runWithTimeout(time.Second, func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("runWithTimeout err fn = %v, want boom", err)
	}

	// 超时
	err := runWithTimeout(10*time.Millisecond, func() error {
		time.Sleep(time.Second)
		return nil
	})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("runWithTimeout slow fn = %v, want ErrTimeout", err)
	}
}
