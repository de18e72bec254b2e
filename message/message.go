// Package message shows two-line messages sent over a channel on a text
// display.
//
// The handler is the only code touching the display, so any number of
// goroutines can post messages without sharing the device:
//
//	msgs := make(chan message.Message, 10)
//	h := message.NewHandler(dev, msgs, logger)
//	go h.Run()
//
//	// Send messages non-blocking
//	select {
//	case msgs <- message.Message{Line1: []byte("Status"), Line2: []byte("OK")}:
//	default:
//		// Channel full - message dropped
//	}
package message

import (
	"io"
	"log/slog"

	"periph.io/x/conn/v3/display"
)

// Message represents a two-line message.
type Message struct {
	Line1 []byte
	Line2 []byte
}

// Handler processes messages from a channel and updates the display.
type Handler struct {
	dev      display.TextDisplay
	messages <-chan Message
	logger   *slog.Logger
}

// NewHandler creates a message handler for dev. logger can be nil.
func NewHandler(dev display.TextDisplay, messages <-chan Message, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{dev: dev, messages: messages, logger: logger}
}

// Run processes messages until the channel is closed.
// Run should be called in a separate goroutine.
func (h *Handler) Run() {
	for msg := range h.messages {
		if err := h.Show(msg); err != nil {
			h.logger.Error("message: display failed", "err", err)
		}
	}
}

// Show clears the display and prints msg, each line cut to the display
// width. Line2 is ignored on one-line displays.
func (h *Handler) Show(msg Message) error {
	if err := h.dev.Clear(); err != nil {
		return err
	}
	lines := [][]byte{msg.Line1, msg.Line2}
	for i, line := range lines[:min(len(lines), h.dev.Rows())] {
		if len(line) == 0 {
			continue
		}
		if err := h.dev.MoveTo(h.dev.MinRow()+i, h.dev.MinCol()); err != nil {
			return err
		}
		// Truncate in-place, no allocation
		if cols := h.dev.Cols(); len(line) > cols {
			line = line[:cols]
		}
		if _, err := h.dev.Write(line); err != nil {
			return err
		}
	}
	return nil
}
