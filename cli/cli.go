// Package cli provides the line-oriented front end: it renders story lines
// and reads numbered choices from any io.Reader, which also makes it the
// script runner.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nathoo/lumina/engine"
	"github.com/nathoo/lumina/engine/state"
	"github.com/nathoo/lumina/types"
)

// CLI implements engine.UI over a reader and a writer.
type CLI struct {
	In         io.Reader
	Out        io.Writer
	EchoInput  bool // echo each input line after the prompt (for script playback)
	SkipPauses bool // do not wait for ENTER; scripts only carry answers

	lines chan readResult
}

// readResult is one line, or the error that ended the input.
type readResult struct {
	line string
	err  error
}

var _ engine.UI = (*CLI)(nil)

// New creates a CLI on stdin and stdout.
func New() *CLI {
	return &CLI{
		In:  os.Stdin,
		Out: os.Stdout,
	}
}

// Show prints one story line.
func (c *CLI) Show(line types.Line) {
	switch {
	case line.Speaker != "":
		c.printLine(fmt.Sprintf("%s: \"%s\"", line.Speaker, line.Text))
	case line.Voice == types.VoiceSystem:
		c.printSystem(line.Text)
	default:
		c.printLine(line.Text)
	}
}

// Status prints the player's vitals.
func (c *CLI) Status(p types.Player) {
	rule := strings.Repeat("━", 50)
	c.printLine(rule)
	c.printLine(fmt.Sprintf("%s - Nível %d", p.Name, p.Level))
	c.printLine(fmt.Sprintf("❤️  Vida: %d/%d | ✨ Mana: %d/%d | 💰 Ouro: %d",
		p.Health, p.MaxHealth, p.Mana, p.MaxMana, p.Gold))
	c.printLine(fmt.Sprintf("⭐ XP: %d/%d", p.Experience, state.XPThreshold(p.Level)))
	c.printLine("⚔️  Arma: " + p.Weapon)
	c.printLine("🎒 Inventário: " + strings.Join(p.Inventory, ", "))
	c.printLine(rule)
}

// Choose lists the options and reads a 1-based answer until one is valid.
func (c *CLI) Choose(ctx context.Context, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options to choose from")
	}
	c.printLine("Escolha sua ação:")
	for i, opt := range options {
		c.printLine(fmt.Sprintf("%d. %s", i+1, opt))
	}
	for {
		c.print(fmt.Sprintf("Sua escolha (1-%d): ", len(options)))
		input, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		if n, ok := ParseChoice(input, len(options)); ok {
			return n, nil
		}
		c.printLine("Escolha inválida! Tente novamente.")
	}
}

// Prompt asks a question and reads a non-empty answer.
func (c *CLI) Prompt(ctx context.Context, question string) (string, error) {
	for {
		c.print(question + " ")
		input, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}
		if input != "" {
			return input, nil
		}
		c.printLine("Por favor, digite uma resposta.")
	}
}

// Pause waits for ENTER unless SkipPauses is set.
func (c *CLI) Pause(ctx context.Context) error {
	if c.SkipPauses {
		return ctx.Err()
	}
	c.print("Pressione ENTER para continuar...")
	_, err := c.readRaw(ctx)
	c.printLine("")
	return err
}

// ParseChoice converts a 1-based answer into a 0-based index in [0, n).
func ParseChoice(input string, n int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}

// readLine returns the next non-comment line, trimmed.
func (c *CLI) readLine(ctx context.Context) (string, error) {
	for {
		input, err := c.readRaw(ctx)
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}
		return input, nil
	}
}

// readRaw waits for the next input line or for ctx to end. A cancelled
// read leaves the pending line for the next call.
func (c *CLI) readRaw(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", engine.ErrInputAborted, err)
	}
	if c.lines == nil {
		c.lines = make(chan readResult)
		go scanLines(c.In, c.lines)
	}

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", engine.ErrInputAborted, ctx.Err())
	case r, ok := <-c.lines:
		switch {
		case !ok || errors.Is(r.err, io.EOF):
			c.printLine("")
			return "", engine.ErrInputAborted
		case r.err != nil:
			return "", fmt.Errorf("%w: %w", engine.ErrInputAborted, r.err)
		}
		return r.line, nil
	}
}

// scanLines feeds lines from in to out, then the terminal error, and closes out.
func scanLines(in io.Reader, out chan<- readResult) {
	defer close(out)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		out <- readResult{line: sc.Text()}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	out <- readResult{err: err}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

// printSystem brackets system text; trace lines already carry a tag.
func (c *CLI) printSystem(text string) {
	if strings.HasPrefix(text, "[") {
		c.printLine(text)
		return
	}
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
