package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/tally-lang/tally"
)

const (
	historyFile = ".tally_history"
	prompt      = "> "
)

const banner = "tally interactive calculator. Ctrl+D or :quit exits, :help helps."

const helpText = `statements:
  an expression        2 + 3*4, -2^2, min(1, x)
  const NAME = expr    bind a constant in the global scope
  let f(p, ...) = expr define a function clause; parameters that are not
                       bare names become exact-match patterns, and repeated
                       lets for one name accumulate clauses

commands:
  :help    show this text
  :quit    exit`

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	log.SetFlags(0)
	var (
		inname string
		echo   bool
	)
	flag.StringVar(&inname, "in", "", "file of statements, one per line")
	flag.BoolVar(&echo, "echo", false, "print parse trees before evaluating")
	flag.Parse()

	s := tally.NewSession()
	switch {
	case inname != "":
		f, err := os.Open(inname)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := feedAll(s, f, echo); err != nil {
			log.Fatal(err)
		}
	case flag.NArg() > 0:
		for _, arg := range flag.Args() {
			if err := feedLine(s, arg, echo, os.Stdout); err != nil {
				log.Fatal(err)
			}
		}
	default:
		repl(s, echo)
	}
}

func feedAll(s *tally.Session, r io.Reader, echo bool) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := feedLine(s, sc.Text(), echo, os.Stdout); err != nil {
			return err
		}
	}
	return sc.Err()
}

func feedLine(s *tally.Session, line string, echo bool, w io.Writer) error {
	if echo {
		if st, err := tally.ParseStatement(line); err == nil && st != nil {
			fmt.Fprintf(w, "%v : ", st)
		}
	}
	r, err := s.Feed(line)
	if err != nil {
		return err
	}
	if r != nil {
		fmt.Fprintln(w, r)
	}
	return nil
}

func repl(s *tally.Session, echo bool) {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			log.Fatal(err)
		}
		switch strings.TrimSpace(line) {
		case "":
			continue
		case ":quit":
			return
		case ":help":
			fmt.Println(helpText)
			continue
		}
		ln.AppendHistory(line)
		if echo {
			if st, err := tally.ParseStatement(line); err == nil && st != nil {
				fmt.Println(st)
			}
		}
		r, err := s.Feed(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		if r != nil {
			fmt.Println(blue(r.String()))
		}
	}
}
