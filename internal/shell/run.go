package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/dendrascience/dendra-file-organizer/internal/render"
	"github.com/dendrascience/dendra-file-organizer/organizer"
)

// Run reads commands from in until exit, end of input, or ctx is done. A
// terminal gets the interactive prompt with completion; anything else is read
// line by line.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.logger.Info("session started")
	defer s.logger.Info("session ended")

	if render.IsTerminal(in) && render.IsTerminal(s.out) {
		return s.runPrompt(ctx)
	}
	return s.runLines(ctx, in)
}

func (s *Session) report(err error) {
	fmt.Fprintln(s.out, organizer.Message("", err))
}

func (s *Session) runLines(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		err := s.Execute(line)
		if errors.Is(err, ErrExit) {
			return nil
		}
		if err != nil {
			s.report(err)
		}
	}
	return scanner.Err()
}

func (s *Session) runPrompt(ctx context.Context) error {
	exited := false
	p := prompt.New(
		func(in string) {
			if ctx.Err() != nil {
				exited = true
				return
			}
			err := s.Execute(in)
			if errors.Is(err, ErrExit) {
				exited = true
				return
			}
			if err != nil {
				s.report(err)
			}
		},
		s.complete,
		prompt.OptionLivePrefix(func() (string, bool) { return s.Prompt(), true }),
		prompt.OptionTitle("organizer"),
		prompt.OptionPrefixTextColor(prompt.Blue),
		prompt.OptionInputTextColor(prompt.DefaultColor),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline && exited
		}),
	)
	p.Run()
	return nil
}

// complete suggests command names for the first word, and the names in the
// current folder after it.
func (s *Session) complete(d prompt.Document) []prompt.Suggest {
	before := d.TextBeforeCursor()
	word := d.GetWordBeforeCursor()
	if !strings.Contains(before, " ") {
		suggestions := make([]prompt.Suggest, 0, len(commands))
		for _, c := range commands {
			suggestions = append(suggestions, prompt.Suggest{Text: c.name, Description: c.summary})
		}
		return prompt.FilterHasPrefix(suggestions, word, true)
	}

	t := s.org.Tree()
	var suggestions []prompt.Suggest
	for _, child := range t.Children(s.cwd) {
		suggestions = append(suggestions, prompt.Suggest{Text: t.Name(child), Description: "folder"})
	}
	for _, file := range t.Files(s.cwd) {
		suggestions = append(suggestions, prompt.Suggest{Text: file, Description: "file"})
	}
	return prompt.FilterHasPrefix(suggestions, word, true)
}
