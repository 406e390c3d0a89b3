// Package session parses and executes the rbkeys command language against a
// single tree.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors.
var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMissingArgument    = errors.New("missing key argument")
	ErrUnexpectedArgument = errors.New("command takes no arguments")
	ErrInvalidKey         = errors.New("invalid key")
)

// Verb names a command.
type Verb string

// Commands.
const (
	VerbNone   Verb = ""
	VerbInsert Verb = "insert"
	VerbRemove Verb = "remove"
	VerbSearch Verb = "search"
	VerbPrint  Verb = "print"
	VerbKeys   Verb = "keys"
	VerbVerify Verb = "verify"
	VerbStats  Verb = "stats"
	VerbClear  Verb = "clear"
	VerbHelp   Verb = "help"
	VerbExit   Verb = "exit"
)

const commentPrefix = "#"

type verbEntry struct {
	verb      Verb
	aliases   []string
	takesKeys bool
	summary   string
}

var verbTable = []verbEntry{
	{VerbInsert, []string{"i", "add"}, true, "insert keys"},
	{VerbRemove, []string{"delete", "d", "rm"}, true, "remove keys"},
	{VerbSearch, []string{"s", "find"}, true, "look keys up"},
	{VerbPrint, []string{"p", "show"}, false, "print the tree"},
	{VerbKeys, []string{"ls"}, false, "list keys in ascending order"},
	{VerbVerify, []string{"check"}, false, "check the red-black invariants"},
	{VerbStats, nil, false, "show tree shape and operation timings"},
	{VerbClear, []string{"reset"}, false, "release every node"},
	{VerbHelp, []string{"h", "?"}, false, "show this menu"},
	{VerbExit, []string{"quit", "q"}, false, "leave"},
}

var verbIndex = buildVerbIndex()

func buildVerbIndex() map[string]verbEntry {
	index := make(map[string]verbEntry)

	for _, entry := range verbTable {
		index[string(entry.verb)] = entry

		for _, alias := range entry.aliases {
			index[alias] = entry
		}
	}

	return index
}

// Command is one parsed line.
type Command struct {
	Verb Verb
	Keys []int64
}

// IsEmpty reports whether the line held no command (blank or comment).
func (c Command) IsEmpty() bool {
	return c.Verb == VerbNone
}

// ParseCommand parses one line of the command language. Verbs are
// case-insensitive; blank lines and lines starting with "#" yield an empty
// command.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], commentPrefix) {
		return Command{}, nil
	}

	name := strings.ToLower(fields[0])

	entry, ok := verbIndex[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}

	args := fields[1:]

	if !entry.takesKeys {
		if len(args) > 0 {
			return Command{}, fmt.Errorf("%w: %s", ErrUnexpectedArgument, entry.verb)
		}

		return Command{Verb: entry.verb}, nil
	}

	if len(args) == 0 {
		return Command{}, fmt.Errorf("%w: %s", ErrMissingArgument, entry.verb)
	}

	keys := make([]int64, 0, len(args))

	for _, arg := range args {
		key, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", ErrInvalidKey, arg)
		}

		keys = append(keys, key)
	}

	return Command{Verb: entry.verb, Keys: keys}, nil
}
