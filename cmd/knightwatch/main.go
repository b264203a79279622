// Command knightwatch is an interactive driver for the engine: a
// readline REPL that tokenizes each line with shell-style quoting and
// dispatches to the engine facade's protocol commands, grounded on the
// teacher corpus's ShellController/readline.NewEx idiom rather than
// any particular xboard/CECP library.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chrisflorin/knightwatch/engine"
)

func filterInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

type driver struct {
	l   *readline.Instance
	eng *engine.Engine
}

func newDriver() *driver {
	l, err := readline.NewEx(&readline.Config{
		Prompt:              "\033[32mknightwatch>\033[0m ",
		HistoryFile:         "/tmp/knightwatch_history.tmp",
		EOFPrompt:           "exit",
		InterruptPrompt:     "^C",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &driver{l: l, eng: engine.New(64)}
}

func (d *driver) loop() {
	defer d.l.Close()
	for {
		line, err := d.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !d.dispatch(line) {
			break
		}
	}
}

// dispatch runs one line's command, returning false to end the loop.
func (d *driver) dispatch(line string) bool {
	fields, err := shellquote.Split(line)
	if err != nil || len(fields) == 0 {
		fields = strings.Fields(line)
	}
	if len(fields) == 0 {
		return true
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return false
	case "new":
		d.eng.NewGame()
		showMessage("ok", d.l.Stdout())
	case "setboard":
		if err := d.eng.SetBoard(strings.Join(args, " ")); err != nil {
			showMessage("Error: "+err.Error(), d.l.Stderr())
		}
	case "usermove":
		if len(args) != 1 {
			showMessage("Error: usermove needs exactly one move", d.l.Stderr())
			return true
		}
		if err := d.eng.UserMove(args[0]); err != nil {
			showMessage("Illegal move: "+args[0], d.l.Stderr())
			return true
		}
		if !d.eng.ForceMode() {
			d.think()
		}
	case "undo":
		d.eng.Undo()
	case "force":
		on := true
		if len(args) > 0 {
			on = parseBool(args[0])
		}
		d.eng.Force(on)
	case "go":
		d.eng.Force(false)
		d.think()
	case "sd":
		if v, ok := atoiArg(args, d.l); ok {
			d.eng.SetDepth(v)
		}
	case "st":
		if v, ok := atoiArg(args, d.l); ok {
			d.eng.SetTime(time.Duration(v) * time.Second)
		}
	case "sn":
		if v, ok := atoiArg(args, d.l); ok {
			d.eng.SetNodes(uint64(v))
		}
	case "nps":
		if v, ok := atoiArg(args, d.l); ok {
			d.eng.SetNPS(uint64(v))
		}
	case "time":
		if v, ok := atoiArg(args, d.l); ok {
			d.eng.SetClock(v)
		}
	case "otim":
		if v, ok := atoiArg(args, d.l); ok {
			d.eng.SetOpponentClock(v)
		}
	case "level":
		d.handleLevel(args)
	case "perft":
		if v, ok := atoiArg(args, d.l); ok {
			start := time.Now()
			nodes := d.eng.Perft(v)
			showMessage(fmt.Sprintf("perft(%d) = %d  (%s)", v, nodes, time.Since(start)), d.l.Stdout())
		}
	case "setvalue":
		if len(args) != 2 {
			showMessage("Error: setvalue needs a name and a score", d.l.Stderr())
			return true
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			showMessage("Error: bad value for "+args[0], d.l.Stderr())
			return true
		}
		if !d.eng.SetValue(args[0], int32(v)) {
			showMessage("Error: unknown parameter "+args[0], d.l.Stderr())
		}
	case "personality":
		if len(args) != 1 {
			showMessage("Error: personality needs a path", d.l.Stderr())
			return true
		}
		if err := d.eng.LoadPersonality(args[0]); err != nil {
			showMessage("Error: "+err.Error(), d.l.Stderr())
		}
	case "ping":
		n := 1
		if len(args) > 0 {
			n, _ = strconv.Atoi(args[0])
		}
		showMessage(d.eng.Ping(n), d.l.Stdout())
	default:
		showMessage("Error: unknown command "+cmd, d.l.Stderr())
	}
	return true
}

func (d *driver) think() {
	result := d.eng.Go()
	showMessage(engine.ThinkingLine(result.Result), d.l.Stdout())
	showMessage("move "+result.Move.String(), d.l.Stdout())
}

// handleLevel parses CECP's "level mps base inc": base is minutes, or
// minutes:seconds; inc is seconds.
func (d *driver) handleLevel(args []string) {
	if len(args) != 3 {
		showMessage("Error: level needs mps, base, and inc", d.l.Stderr())
		return
	}
	mps, err := strconv.Atoi(args[0])
	if err != nil {
		showMessage("Error: bad mps", d.l.Stderr())
		return
	}
	base, err := parseBaseTime(args[1])
	if err != nil {
		showMessage("Error: bad base time", d.l.Stderr())
		return
	}
	incSecs, err := strconv.Atoi(args[2])
	if err != nil {
		showMessage("Error: bad increment", d.l.Stderr())
		return
	}
	d.eng.SetLevel(mps, base, time.Duration(incSecs)*time.Second)
}

func parseBaseTime(s string) (time.Duration, error) {
	if mins, secs, ok := strings.Cut(s, ":"); ok {
		m, err := strconv.Atoi(mins)
		if err != nil {
			return 0, err
		}
		sec, err := strconv.Atoi(secs)
		if err != nil {
			return 0, err
		}
		return time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
	}
	m, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(m) * time.Minute, nil
}

func atoiArg(args []string, l *readline.Instance) (int, bool) {
	if len(args) != 1 {
		showMessage("Error: expected exactly one numeric argument", l.Stderr())
		return 0, false
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		showMessage("Error: not a number: "+args[0], l.Stderr())
		return 0, false
	}
	return v, true
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "0", "false", "off", "no":
		return false
	default:
		return true
	}
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	d := newDriver()
	d.loop()
}
