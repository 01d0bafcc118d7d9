// Package telegram adapts the Telegram Bot API to the chat router: it long
// polls for updates, converts them to chat actions and renders replies as
// messages with inline keyboards.
package telegram

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/ntotao/baby-tracker/internal/transport/chat"
)

// MaxFileSize bounds downloaded documents.
const MaxFileSize = 5 << 20

// updateTimeout bounds the processing of a single update.
const updateTimeout = 30 * time.Second

type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type actionHandler interface {
	Handle(ctx context.Context, a chat.Action) chat.Reply
}

// Config holds poller settings.
type Config struct {
	PollTimeout time.Duration
	// Workers is the number of concurrent conversations. Updates of one
	// chat always go to the same worker and are handled in order.
	Workers int
}

// Bot is the long-polling Telegram transport.
type Bot struct {
	api     botAPI
	handler actionHandler
	http    *http.Client
	cfg     Config
	log     *slog.Logger
}

// New creates a bot. httpClient downloads documents; nil means http.DefaultClient.
func New(log *slog.Logger, cfg Config, api botAPI, handler actionHandler, httpClient *http.Client) *Bot {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 60 * time.Second
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Bot{
		api:     api,
		handler: handler,
		http:    httpClient,
		cfg:     cfg,
		log:     log.With("service", "telegram"),
	}
}

// Run polls for updates until ctx is cancelled. Updates already queued
// are processed before Run returns.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(b.cfg.PollTimeout.Seconds())
	updates := b.api.GetUpdatesChan(u)

	queues := make([]chan tgbotapi.Update, b.cfg.Workers)
	var g errgroup.Group
	for i := range queues {
		q := make(chan tgbotapi.Update, 16)
		queues[i] = q
		g.Go(func() error {
			for upd := range q {
				b.process(ctx, upd)
			}
			return nil
		})
	}

	b.log.InfoContext(ctx, "telegram poller started", slog.Int("workers", b.cfg.Workers))

	func() {
		for {
			select {
			case <-ctx.Done():
				b.api.StopReceivingUpdates()
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				c := upd.FromChat()
				if c == nil {
					continue
				}
				select {
				case queues[shard(c.ID, len(queues))] <- upd:
				case <-ctx.Done():
					b.api.StopReceivingUpdates()
					return
				}
			}
		}
	}()

	for _, q := range queues {
		close(q)
	}
	err := g.Wait()
	b.log.InfoContext(ctx, "telegram poller stopped")
	return err
}

func shard(chatID int64, n int) int {
	h := fnv.New32a()
	h.Write([]byte(strconv.FormatInt(chatID, 10)))
	return int(h.Sum32() % uint32(n))
}

// process handles one update. Processing outlives the poller context so
// that a shutdown does not cut a capture in half.
func (b *Bot) process(parent context.Context, upd tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), updateTimeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			b.log.ErrorContext(ctx, "panic handling update",
				slog.Int("update_id", upd.UpdateID),
				slog.Any("panic", rec),
			)
		}
	}()

	action, ok := b.toAction(upd)
	if !ok {
		return
	}

	if cq := upd.CallbackQuery; cq != nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			b.log.DebugContext(ctx, "answer callback failed", slog.String("error", err.Error()))
		}
	}

	reply := b.handler.Handle(ctx, action)
	if err := b.send(upd, reply); err != nil {
		b.log.ErrorContext(ctx, "send reply failed",
			slog.Int64("chat_id", action.ChatID),
			slog.String("error", err.Error()),
		)
	}
}

func (b *Bot) toAction(upd tgbotapi.Update) (chat.Action, bool) {
	if cq := upd.CallbackQuery; cq != nil {
		if cq.From == nil || cq.Message == nil || cq.Message.Chat == nil {
			return chat.Action{}, false
		}
		return chat.Action{UserID: cq.From.ID, ChatID: cq.Message.Chat.ID, Option: cq.Data}, true
	}

	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return chat.Action{}, false
	}
	a := chat.Action{UserID: msg.From.ID, ChatID: msg.Chat.ID}

	switch {
	case msg.IsCommand():
		a.Command = strings.ToLower(msg.Command())
		a.StartPayload = strings.TrimSpace(msg.CommandArguments())
	case msg.Document != nil:
		doc := msg.Document
		a.Document = &chat.Document{
			Name: doc.FileName,
			Open: func(ctx context.Context) (io.ReadCloser, error) {
				return b.download(ctx, doc.FileID, doc.FileSize)
			},
		}
	case msg.Text != "":
		a.Text = msg.Text
	default:
		return chat.Action{}, false
	}
	return a, true
}

func (b *Bot) download(ctx context.Context, fileID string, size int) (io.ReadCloser, error) {
	if size > MaxFileSize {
		return nil, fmt.Errorf("document is %d bytes, limit is %d", size, MaxFileSize)
	}
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileID, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download file %s: status %d", fileID, resp.StatusCode)
	}
	return struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, MaxFileSize), resp.Body}, nil
}

func (b *Bot) send(upd tgbotapi.Update, reply chat.Reply) error {
	if reply.Text == "" {
		return nil
	}
	markup := keyboard(reply.Options)

	if cq := upd.CallbackQuery; reply.Edit && cq != nil && cq.Message != nil {
		edit := tgbotapi.NewEditMessageText(cq.Message.Chat.ID, cq.Message.MessageID, reply.Text)
		if markup != nil {
			edit.ReplyMarkup = markup
		}
		_, err := b.api.Send(edit)
		return err
	}

	c := upd.FromChat()
	if c == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(c.ID, reply.Text)
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	_, err := b.api.Send(msg)
	return err
}

func keyboard(options [][]chat.Option) *tgbotapi.InlineKeyboardMarkup {
	if len(options) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for _, row := range options {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, o := range row {
			if o.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(o.Label, o.URL))
			} else {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(o.Label, o.Data))
			}
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}
