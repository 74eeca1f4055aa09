// SPDX-License-Identifier: MIT
package lexer

// REF: https://github.com/sh4t/sql-parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

type (
	// NextOperation type for the next function to be executed
	NextOperation func(context.Context) NextOperation

	// ValidationFunction type for functions that validate rune identities
	ValidationFunction func(rune) bool

	// Lexer splits a serialized tree into Items.
	Lexer struct {
		cfg *Config

		// c is a channel for communicating lexed Items.
		c chan Item

		// source is the input source.
		source io.RuneReader

		// buffer is a slice of runes being lexed.
		buffer []rune
		// bufferIndex is the current buffer position.
		//
		// When this value exceeds the length of buffer, the buffer is
		// populated from the source.
		bufferIndex int

		valueCounter int
		endCounter   int
	}
)

const (
	peekLimit     = 32
	defBufferSize = 10
)

// Lexing errors.
var (
	ErrInvalidPeekLength   = errors.New("invalid peek length")
	ErrInvalidBackupAmount = errors.New("invalid backup amount")
	ErrUnknownTokens       = errors.New("unknown tokens")
)

// New creates a scanner for the input string.
func New(cfg *Config, source string) *Lexer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Validate()

	return &Lexer{
		cfg:    cfg,
		c:      make(chan Item, defBufferSize),
		source: strings.NewReader(source),
		buffer: make([]rune, 0, defBufferSize),
	}
}

// Items exposes the channel conveying lexed Items.
func (l *Lexer) Items() <-chan Item { return l.c }

// NextItem receives a lexed Item from the input.
func (l *Lexer) NextItem() (i Item, ok bool) {
	i, ok = <-l.c
	return
}

// ValueCounter tallies the emitted ItemValue tokens.
func (l *Lexer) ValueCounter() int { return l.valueCounter }

// EndCounter tallies the emitted ItemEndMarker tokens.
func (l *Lexer) EndCounter() int { return l.endCounter }

// EndMarker obtains the configured end marker.
func (l *Lexer) EndMarker() rune { return l.cfg.EndMarker }

// Splitter obtains the configured entry splitter.
func (l *Lexer) Splitter() rune { return l.cfg.Splitter }

// Lex lexes the input by executing state functions.
func (l *Lexer) Lex(ctx context.Context) {
	select {
	case <-ctx.Done():
		l.EmitError(ctx.Err())
	default:
		for stateFunction := l.LexWhitespace; stateFunction != nil; {
			stateFunction = stateFunction(ctx)
		}
	}

	// Close channel
	close(l.c)
}

// LexWhitespace consumes whitespace, dispatching on the rune that follows.
func (l *Lexer) LexWhitespace(ctx context.Context) NextOperation {
	select {
	case <-ctx.Done():
		l.EmitError(ctx.Err())
		return nil
	default:
	}

	if err := l.AcceptWhile(isWhitespace); err != nil {
		l.EmitError(err)
		return nil
	}
	// Ignore white spaces, discard instead of emit.
	l.Discard()

	next := l.Next()
	switch {
	case next == emptyRune:
		l.EmitEOF()
		return nil
	case next == l.cfg.EndMarker:
		l.endCounter++
		l.Emit(ItemEndMarker)

		return l.LexWhitespace
	case next == l.cfg.Splitter:
		l.Emit(ItemSplitter)

		return l.LexWhitespace
	case isValue(next):
		return l.LexValue
	default:
		if err := l.Backup(); err != nil {
			l.EmitError(err)
			return nil
		}

		nextRunes, err := l.PeekN(peekLimit)
		if err != nil {
			l.EmitError(err)
			return nil
		}

		l.EmitError(fmt.Errorf("%w: %s", ErrUnknownTokens, string(nextRunes)))

		return nil
	}
}

// LexValue consumes one id:value entry.
func (l *Lexer) LexValue(ctx context.Context) NextOperation {
	select {
	case <-ctx.Done():
		l.EmitError(ctx.Err())
		return nil
	default:
	}

	if err := l.AcceptWhile(isValue); err != nil {
		// Emit an entry cut short by the end of the source before the EOF.
		if errors.Is(err, io.EOF) && l.bufferIndex > 0 {
			l.valueCounter++
			l.Emit(ItemValue)
		}
		l.EmitError(err)

		return nil
	}

	l.valueCounter++
	l.Emit(ItemValue)

	return l.LexWhitespace
}

// Next consumes & returns the next rune; emptyRune marks source exhaustion.
func (l *Lexer) Next() (r rune) {
	if l.bufferIndex >= len(l.buffer) && l.Source(0) < 1 {
		return emptyRune
	}

	r = l.buffer[l.bufferIndex]
	l.bufferIndex++

	return
}

// Peek returns the next rune without consuming it.
func (l *Lexer) Peek() (r rune, err error) {
	list, err := l.PeekN(1)
	if err != nil {
		return
	}
	r = list[0]

	return
}

// PeekN returns the next n runes without consuming them.
//
// This operation will return a shorter slice if the end of the source is
// reached.
func (l *Lexer) PeekN(n int) (list []rune, err error) {
	if n < 1 {
		err = fmt.Errorf("%w: %d", ErrInvalidPeekLength, n)
		return
	}

	for len(l.buffer)-l.bufferIndex < n {
		if l.Source(n) < 1 {
			break
		}
	}

	available := len(l.buffer) - l.bufferIndex
	if available == 0 {
		err = io.EOF
		return
	}
	if available < n {
		n = available
	}
	list = l.buffer[l.bufferIndex:(l.bufferIndex + n)]

	return
}

// Backup step back one rune.
func (l *Lexer) Backup() error { return l.BackupN(1) }

// BackupN step back N runes.
func (l *Lexer) BackupN(n int) (err error) {
	if l.bufferIndex < n {
		err = fmt.Errorf("%w: amount %d index: %d", ErrInvalidBackupAmount, n, l.bufferIndex)
		return
	}
	l.bufferIndex -= n

	return
}

// Discard the buffer content before the current buffer index.
func (l *Lexer) Discard() {
	l.buffer = l.buffer[l.bufferIndex:]
	l.bufferIndex = 0
}

// Source runes from the source reader, returning the count read.
func (l *Lexer) Source(amount int) (sourced int) {
	if amount < defBufferSize {
		amount = defBufferSize
	}

	buffer := make([]rune, amount)
	for ; sourced < amount; sourced++ {
		r, _, err := l.source.ReadRune()
		if err != nil {
			// Error can only be io.EOF.
			break
		}
		buffer[sourced] = r
	}

	l.buffer = append(l.buffer, buffer[:sourced]...)

	return
}

// AcceptWhile consumes runes while fn holds.
func (l *Lexer) AcceptWhile(fn ValidationFunction) (err error) {
	for {
		r := l.Next()
		if r == emptyRune {
			// End of input.
			return io.EOF
		}

		// End of current token type.
		if !fn(r) {
			return l.Backup()
		}
	}
}

// Emit sends the buffered token as an Item.
func (l *Lexer) Emit(t ItemID) {
	val := string(l.buffer[:l.bufferIndex])
	l.cfg.Logger.Debugf("lexer emit: %q", val)

	l.c <- Item{ID: t, Val: val}
	l.Discard()
}

// EmitEOF sends an ItemEOF Item over the communication channel.
func (l *Lexer) EmitEOF() {
	l.c <- Item{ID: ItemEOF}
}

// EmitError sends an error over the `Lexer`'s channel.
//
// This terminates the scan process with an error, or an ItemEOF for io.EOF.
func (l *Lexer) EmitError(err error) {
	if errors.Is(err, io.EOF) {
		l.EmitEOF()
		return
	}

	l.c <- Item{ID: ItemError, Err: err}
}

// isWhitespace return true for space, tab, newline & carriage return.
func isWhitespace(r rune) bool { return r == ' ' || r == '\t' || r == '\r' || r == '\n' }

// isAlpha return true for letters & identifier symbols.
func isAlpha(r rune) bool { return r == '_' || r == '-' || unicode.IsLetter(r) }

// isNumeric return true for digits & the decimal point.
func isNumeric(r rune) bool { return r == '.' || unicode.IsDigit(r) }

// isValue return true for id:value entry runes.
func isValue(r rune) bool { return isAlpha(r) || isNumeric(r) || r == PairMarker }
