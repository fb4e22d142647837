// Package cli contains a driver for the line-oriented text protocol: position
// strings in, best moves out.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PaMeirelles/FitosBot/pkg/board"
	"github.com/PaMeirelles/FitosBot/pkg/engine"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// DefaultTime is the clock assumed for a side when go names no time.
const DefaultTime = time.Second

// Driver implements the text protocol for an engine. Commands are processed
// one line at a time:
//
//	isready                     -> readyok
//	position <54-char-string>   -> Position set.
//	go [gtime <ms>] [btime <ms>] -> bestmove <move> | bestmove none
//	quit                        -> exit
type Driver struct {
	e *engine.Engine

	out chan<- string

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:    e,
		out:  out,
		quit: make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Protocol initialized")

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream closed. Exiting")
				return
			}

			line = strings.TrimSpace(line)
			if line == "" {
				break
			}
			parts := strings.Split(line, " ")
			cmd, args := parts[0], parts[1:]

			switch cmd {
			case "isready":
				d.out <- "readyok"

			case "position":
				if len(args) != 1 {
					d.out <- fmt.Sprintf("Invalid position: expected a single %v-char string", board.PositionLength)
					break
				}
				if err := d.e.SetPosition(ctx, args[0]); err != nil {
					d.out <- fmt.Sprintf("Invalid position: %v", err)
					break
				}
				d.out <- "Position set."

			case "go":
				d.handleGo(ctx, line, args)

			case "quit":
				return

			default:
				d.out <- fmt.Sprintf("Unknown command: %v", line)
			}

		case <-d.quit:
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) handleGo(ctx context.Context, line string, args []string) {
	gtime, btime := DefaultTime, DefaultTime

	for i := 0; i+1 < len(args); i += 2 {
		n, err := strconv.Atoi(args[i+1])
		if err != nil || n < 0 {
			logw.Warningf(ctx, "Invalid argument for %v: %v", args[i], line)
			continue
		}
		switch args[i] {
		case "gtime":
			gtime = time.Millisecond * time.Duration(n)
		case "btime":
			btime = time.Millisecond * time.Duration(n)
		default:
			// silently ignore anything not handled.
		}
	}

	turn, ok := d.e.Turn()
	if !ok {
		d.out <- "bestmove none"
		return
	}
	remaining := gtime
	if turn == board.Blue {
		remaining = btime
	}

	move, ok := d.e.BestMove(ctx, remaining)
	if !ok {
		d.out <- "bestmove none"
		return
	}
	d.out <- fmt.Sprintf("bestmove %v", move)
}
