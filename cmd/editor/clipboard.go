package main

import (
	"errors"
	"fmt"

	"golang.design/x/clipboard"

	"github.com/re-ovo/fall-escape/levels"
)

var errNoClipboard = errors.New("clipboard unavailable")

// Clipboard copies levels as JSON text. Init can fail on headless systems,
// in which case copy and paste report errNoClipboard.
type Clipboard struct {
	err error
}

func NewClipboard() *Clipboard {
	return &Clipboard{err: clipboard.Init()}
}

func (c *Clipboard) Copy(lvl levels.Level) error {
	if c.err != nil {
		return fmt.Errorf("%w: %v", errNoClipboard, c.err)
	}
	data, err := levels.Encode(lvl)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func (c *Clipboard) Paste() (levels.Level, error) {
	if c.err != nil {
		return nil, fmt.Errorf("%w: %v", errNoClipboard, c.err)
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return nil, errors.New("clipboard is empty")
	}
	return parsePasted(data)
}
