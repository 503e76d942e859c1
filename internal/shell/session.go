package shell

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dendrascience/dendra-file-organizer/internal/render"
	"github.com/dendrascience/dendra-file-organizer/organizer"
	"github.com/dendrascience/dendra-file-organizer/tree"
	"github.com/dendrascience/dendra-file-organizer/util"
)

// ErrExit is returned by Execute for the exit and quit commands.
var ErrExit = errors.New("exit")

// errUsage marks a malformed command line.
var errUsage = errors.New("usage")

type command struct {
	name    string
	args    string
	summary string
	run     func(s *Session, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"help", "", "show this help", (*Session).help},
		{"pwd", "", "print the current folder", (*Session).pwd},
		{"cd", "[PATH]", "change folder (.., /, or a path)", (*Session).cd},
		{"ls", "[PATH]", "list subfolders and files", (*Session).ls},
		{"mkdir", "PATH", "create a folder path", (*Session).mkdir},
		{"add", "NAME [PATH]", "add a file to a folder (default: current)", (*Session).add},
		{"rm", "NAME", "delete a file by name", (*Session).rm},
		{"find", "NAME", "look a file up in the index", (*Session).find},
		{"grep", "PATTERN", "search file names below the current folder", (*Session).grep},
		{"tree", "[PATH]", "print the folder hierarchy", (*Session).tree},
		{"walk", "pre|post|level", "list every folder in traversal order", (*Session).walk},
		{"stats", "", "show folder and index statistics", (*Session).stats},
		{"check", "", "verify tree and index consistency", (*Session).check},
		{"rehash", "", "grow the index and drop tombstones", (*Session).rehash},
		{"sample", "", "load the sample folders and files", (*Session).sample},
		{"exit", "", "leave the shell (also quit)", nil},
	}
}

// Session is one interactive command session. The current folder is session
// state only; every organizer call receives an explicit path or folder handle.
type Session struct {
	org    *organizer.Organizer
	cwd    tree.NodeID
	out    io.Writer
	color  bool
	logger *zap.Logger
}

// New returns a session positioned at the root folder.
func New(org *organizer.Organizer, out io.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		org:    org,
		cwd:    org.Tree().Root(),
		out:    out,
		color:  render.ColorEnabled(out),
		logger: logger.Named("shell").With(zap.String("session_id", id)),
	}
}

// Cwd returns the full path of the current folder.
func (s *Session) Cwd() string {
	return s.org.Tree().Path(s.cwd)
}

// Prompt returns the prompt prefix for the current folder.
func (s *Session) Prompt() string {
	return s.Cwd() + "> "
}

// Execute runs one command line. Output goes to the session writer; failures
// are returned so the caller decides how to report them.
func (s *Session) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	if name == "exit" || name == "quit" {
		return ErrExit
	}

	i := slices.IndexFunc(commands, func(c command) bool { return c.name == name })
	if i < 0 || commands[i].run == nil {
		return fmt.Errorf("unknown command %q (try help)", fields[0])
	}

	err := commands[i].run(s, args)
	s.logger.Debug("command", zap.String("command", name), zap.Strings("args", args), zap.Error(err))
	if errors.Is(err, errUsage) {
		return fmt.Errorf("usage: %s %s", commands[i].name, commands[i].args)
	}
	return err
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

// relative turns a shell path into a root-relative folder path without
// touching the tree. Absolute paths start with a slash and may name the root
// folder first; "." and ".." are resolved lexically.
func (s *Session) relative(arg string) string {
	t := s.org.Tree()
	var segments []string
	parts := strings.Split(arg, "/")
	if strings.HasPrefix(arg, "/") {
		if len(parts) > 1 && parts[1] == s.org.RootName() {
			parts = parts[2:]
		}
	} else if rel := t.RelativePath(s.cwd); rel != "" {
		segments = strings.Split(rel, "/")
	}
	for _, part := range parts {
		switch part {
		case "", ".":
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, part)
		}
	}
	return strings.Join(segments, "/")
}

func (s *Session) resolve(arg string) (tree.NodeID, error) {
	rel := s.relative(arg)
	id, ok := s.org.Tree().Descend(s.org.Tree().Root(), rel)
	if !ok {
		return 0, fmt.Errorf("folder %q: %w", arg, util.ErrNotFound)
	}
	return id, nil
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.Join(args, " ")
}

func (s *Session) help(_ []string) error {
	rows := make([][]string, 0, len(commands))
	for _, c := range commands {
		rows = append(rows, []string{strings.TrimSpace(c.name + " " + c.args), c.summary})
	}
	s.println(render.Table([]string{"Command", "Description"}, rows, nil))
	return nil
}

func (s *Session) pwd(_ []string) error {
	s.println(s.Cwd())
	return nil
}

func (s *Session) cd(args []string) error {
	target := optionalArg(args)
	if target == "" {
		s.cwd = s.org.Tree().Root()
		return nil
	}
	id, err := s.resolve(target)
	if err != nil {
		return err
	}
	s.cwd = id
	return nil
}

func (s *Session) ls(args []string) error {
	id, err := s.resolve(optionalArg(args))
	if err != nil {
		return err
	}
	listing, err := s.org.ListFolderAt(id)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, render.Listing(listing, s.color))
	return nil
}

func (s *Session) mkdir(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	arg := optionalArg(args)
	if err := util.ValidatePath(arg); err != nil {
		return err
	}
	f, err := s.org.CreateFolder(s.relative(arg))
	if err != nil {
		return err
	}
	s.println("Created folder", f.Path)
	return nil
}

func (s *Session) add(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return errUsage
	}
	name := args[0]
	if err := util.ValidateName(name); err != nil {
		return err
	}
	folder := s.org.Tree().RelativePath(s.cwd)
	if len(args) == 2 {
		folder = s.relative(args[1])
	}
	msg, err := s.org.AddFile(name, folder)
	if err != nil {
		return err
	}
	s.println(msg)
	return nil
}

func (s *Session) rm(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	msg, err := s.org.DeleteFile(args[0])
	if err != nil {
		return err
	}
	s.println(msg)
	return nil
}

func (s *Session) find(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	path, err := s.org.SearchFile(args[0])
	if err != nil {
		return err
	}
	s.println(organizer.FoundMessage(args[0], path))
	return nil
}

func (s *Session) grep(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	count := 0
	for m := range s.org.Tree().SearchFiles(s.cwd, optionalArg(args)) {
		s.println(m.FullPath())
		count++
	}
	s.println(render.Count(count), "matched")
	return nil
}

func (s *Session) tree(args []string) error {
	id := s.cwd
	if target := optionalArg(args); target != "" {
		var err error
		if id, err = s.resolve(target); err != nil {
			return err
		}
	}
	fmt.Fprint(s.out, render.Tree(s.org.Tree(), id, render.TreeOptions{Color: s.color}))
	return nil
}

func (s *Session) walk(args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	order, err := tree.ParseOrder(optionalArg(args))
	if err != nil {
		return err
	}
	for path := range s.org.Traverse(order) {
		s.println(path)
	}
	return nil
}

func (s *Session) stats(_ []string) error {
	s.println(render.Stats(s.org.Statistics()))
	s.println("Current folder:", s.Cwd())
	return nil
}

func (s *Session) check(_ []string) error {
	problems := s.org.Check()
	for _, p := range problems {
		s.println(" -", p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d consistency problems", len(problems))
	}
	s.println("Tree and index are consistent")
	return nil
}

func (s *Session) rehash(_ []string) error {
	before := s.org.Statistics().TableCapacity
	s.org.Rehash()
	s.println(fmt.Sprintf("Rehashed index: %s -> %s slots",
		render.Count(before), render.Count(s.org.Statistics().TableCapacity)))
	return nil
}

func (s *Session) sample(_ []string) error {
	if err := s.org.LoadSample(); err != nil {
		return err
	}
	s.println("Loaded sample data")
	return nil
}
