// Package chat is the transport-agnostic conversation layer: it turns an
// inbound Action into a Reply by dispatching to the tenant resolver, the
// event service and the capture machine.
package chat

import (
	"context"
	"io"

	"github.com/ntotao/baby-tracker/internal/capture"
)

// Option is an inline button. A button with URL opens a link instead of
// sending Data back.
type Option struct {
	Label string
	Data  string
	URL   string
}

// Document is a file sent by the user. Open is called at most once and
// only when the file is actually consumed.
type Document struct {
	Name string
	Open func(ctx context.Context) (io.ReadCloser, error)
}

// Action is one inbound user interaction.
type Action struct {
	UserID int64
	ChatID int64
	// Command is the bot command without the leading slash, lowercased.
	Command string
	// StartPayload is the text following the command (deep-link payload for /start).
	StartPayload string
	Text         string
	Option       string
	Document     *Document
}

func (a Action) kind() string {
	switch {
	case a.Command != "":
		return "command"
	case a.Option != "":
		return "option"
	case a.Document != nil:
		return "document"
	}
	return "text"
}

// Reply is the bot's answer. Edit asks the transport to replace the
// message carrying the selected option rather than sending a new one.
type Reply struct {
	Text    string
	Options [][]Option
	Edit    bool
}

func fromPrompt(p capture.Prompt, edit bool) Reply {
	r := Reply{Text: p.Text, Edit: edit}
	for _, row := range p.Buttons {
		opts := make([]Option, len(row))
		for i, b := range row {
			opts[i] = Option{Label: b.Label, Data: b.Data}
		}
		r.Options = append(r.Options, opts)
	}
	return r
}

// lazyReader opens the document on first Read so that files nobody is
// waiting for are never downloaded.
type lazyReader struct {
	ctx  context.Context
	open func(ctx context.Context) (io.ReadCloser, error)
	rc   io.ReadCloser
	err  error
}

func (l *lazyReader) Read(p []byte) (int, error) {
	if l.rc == nil && l.err == nil {
		l.rc, l.err = l.open(l.ctx)
	}
	if l.err != nil {
		return 0, l.err
	}
	return l.rc.Read(p)
}

func (l *lazyReader) Close() error {
	if l.rc == nil {
		return nil
	}
	return l.rc.Close()
}
