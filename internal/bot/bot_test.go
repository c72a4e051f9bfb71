package bot

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"homework_bot/internal/config"
	"homework_bot/internal/logging"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func TestNotifyNumericChat(t *testing.T) {
	s := &fakeSender{}
	var buf bytes.Buffer
	b := NewWithSender(s, "123456", logging.New(&buf, "debug"))

	b.Notify("hello")

	if len(s.sent) != 1 {
		t.Fatalf("sent %d messages", len(s.sent))
	}
	msg := s.sent[0]
	if msg.ChatID != 123456 || msg.Text != "hello" || msg.ParseMode != "" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if !strings.Contains(buf.String(), "[DEBUG]") {
		t.Fatalf("success not logged at debug: %q", buf.String())
	}
}

func TestNotifyChannelUsername(t *testing.T) {
	s := &fakeSender{}
	b := NewWithSender(s, "@homework_channel", logging.New(&bytes.Buffer{}, "debug"))

	b.Notify("hi")

	if len(s.sent) != 1 || s.sent[0].ChannelUsername != "@homework_channel" {
		t.Fatalf("unexpected messages: %+v", s.sent)
	}
}

func TestNotifySwallowsSendError(t *testing.T) {
	s := &fakeSender{err: errors.New("telegram is down")}
	var buf bytes.Buffer
	b := NewWithSender(s, "1", logging.New(&buf, "debug"))

	b.Notify("lost")

	out := buf.String()
	if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "telegram is down") {
		t.Fatalf("send error not logged: %q", out)
	}
}

func testConfig(endpoint string) *config.Config {
	cfg := config.Default()
	cfg.TelegramToken = "123:abc"
	cfg.TelegramChatID = "42"
	cfg.TelegramEndpoint = endpoint + "/bot%s/%s"
	cfg.RequestTimeout = 2 * time.Second
	return cfg
}

func TestNewSurvivesTelegramOutage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	b := New(testConfig(srv.URL), logging.New(&buf, "debug"))
	if b == nil {
		t.Fatal("New returned nil")
	}
	if !strings.Contains(buf.String(), "[ERROR] Не удалось проверить токен бота") {
		t.Fatalf("getMe failure not logged: %q", buf.String())
	}

	b.Notify("still running")
	if !strings.Contains(buf.String(), "Не удалось отправить сообщение через бота") {
		t.Fatalf("send failure not logged: %q", buf.String())
	}
}

func TestNewUnreachableTelegram(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	var buf bytes.Buffer
	if b := New(testConfig(url), logging.New(&buf, "debug")); b == nil {
		t.Fatal("New returned nil")
	}
	if !strings.Contains(buf.String(), "[ERROR]") {
		t.Fatalf("getMe failure not logged: %q", buf.String())
	}
}

func TestNewSendsThroughTelegramAPI(t *testing.T) {
	var gotChat, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/bot123:abc/getMe":
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"hw","username":"hw_bot"}}`))
		case "/bot123:abc/sendMessage":
			_ = r.ParseForm()
			gotChat, gotText = r.FormValue("chat_id"), r.FormValue("text")
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var buf bytes.Buffer
	b := New(testConfig(srv.URL), logging.New(&buf, "debug"))
	b.Notify("Работа взята на проверку ревьюером.")

	if gotChat != "42" || gotText != "Работа взята на проверку ревьюером." {
		t.Fatalf("chat_id = %q, text = %q", gotChat, gotText)
	}
	if strings.Contains(buf.String(), "[ERROR]") {
		t.Fatalf("unexpected error log: %q", buf.String())
	}
}
