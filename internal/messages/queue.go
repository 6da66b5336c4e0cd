package messages

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
)

// Level classifies a queued message.
type Level string

const (
	LevelError        Level = "error"
	LevelConfirmation Level = "confirmation"
	LevelInfo         Level = "info"
)

// Message is one queued back-office notice.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Queue is an in-memory notifier. Hosts that own a flash/session store
// implement interfaces.Notifier themselves and pass it in instead.
type Queue struct {
	mu       sync.Mutex
	messages []Message
}

var _ interfaces.Notifier = (*Queue)(nil)

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) AddError(_ context.Context, msg string) {
	q.add(LevelError, msg)
}

func (q *Queue) AddConfirmation(_ context.Context, msg string) {
	q.add(LevelConfirmation, msg)
}

func (q *Queue) AddInfo(_ context.Context, msg string) {
	q.add(LevelInfo, msg)
}

func (q *Queue) add(level Level, msg string) {
	if msg == "" {
		return
	}
	q.mu.Lock()
	q.messages = append(q.messages, Message{Level: level, Text: msg})
	q.mu.Unlock()
}

// Peek returns the queued messages without clearing them.
func (q *Queue) Peek() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Message(nil), q.messages...)
}

// Drain returns and clears the queued messages.
func (q *Queue) Drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.messages
	q.messages = nil
	return out
}

// Labels resolves message keys from a static catalog, falling back to the key.
type Labels struct {
	catalog map[string]string
}

var _ interfaces.Labels = Labels{}

// DefaultLabels carries the English strings used by the translator and list views.
func DefaultLabels() Labels {
	return NewLabels(map[string]string{
		"MSC.apply":                  "Apply",
		"MSC.backBT":                 "Go back",
		"MSC.i18nl10n_translator":    "Translate %s.%s (ID %s)",
		"MSC.editL10n":               "Edit localizations of %s",
		"MSC.i18nl10n_saveFailed":    "The translations could not be saved: %s",
		"MSC.i18nl10n_missingDNS":    "Root page %q has no domain although several root pages exist.",
		"MSC.i18nl10n_duplicatedDNS": "Root page %q shares the domain %q with another root page.",
	})
}

func NewLabels(catalog map[string]string) Labels {
	copied := make(map[string]string, len(catalog))
	for k, v := range catalog {
		copied[k] = v
	}
	return Labels{catalog: copied}
}

func (l Labels) Label(_ context.Context, key string, args ...any) string {
	format, ok := l.catalog[key]
	if !ok {
		format = key
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
