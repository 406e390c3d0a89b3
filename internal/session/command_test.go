package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/rbkeys/internal/session"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want session.Command
	}{
		{"blank", "", session.Command{}},
		{"spaces", "   \t ", session.Command{}},
		{"comment", "# insert 1", session.Command{}},
		{"comment no space", "#print", session.Command{}},
		{"insert", "insert 5", session.Command{Verb: session.VerbInsert, Keys: []int64{5}}},
		{"insert many", "i 3 -1 9", session.Command{Verb: session.VerbInsert, Keys: []int64{3, -1, 9}}},
		{"add alias", "add 1", session.Command{Verb: session.VerbInsert, Keys: []int64{1}}},
		{"upper case", "INSERT 7", session.Command{Verb: session.VerbInsert, Keys: []int64{7}}},
		{"remove", "remove 4", session.Command{Verb: session.VerbRemove, Keys: []int64{4}}},
		{"delete alias", "delete 4", session.Command{Verb: session.VerbRemove, Keys: []int64{4}}},
		{"d alias", "d 4", session.Command{Verb: session.VerbRemove, Keys: []int64{4}}},
		{"rm alias", "rm 4", session.Command{Verb: session.VerbRemove, Keys: []int64{4}}},
		{"search", "find 2", session.Command{Verb: session.VerbSearch, Keys: []int64{2}}},
		{"print", "show", session.Command{Verb: session.VerbPrint}},
		{"keys", "ls", session.Command{Verb: session.VerbKeys}},
		{"verify", "check", session.Command{Verb: session.VerbVerify}},
		{"stats", "stats", session.Command{Verb: session.VerbStats}},
		{"clear", "reset", session.Command{Verb: session.VerbClear}},
		{"help", "?", session.Command{Verb: session.VerbHelp}},
		{"exit", "q", session.Command{Verb: session.VerbExit}},
		{"surrounding space", "  p  ", session.Command{Verb: session.VerbPrint}},
		{"max key", "i 9223372036854775807", session.Command{Verb: session.VerbInsert, Keys: []int64{9223372036854775807}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := session.ParseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want error
	}{
		{"unknown", "frobnicate", session.ErrUnknownCommand},
		{"missing key", "insert", session.ErrMissingArgument},
		{"missing key alias", "rm", session.ErrMissingArgument},
		{"unexpected argument", "print 3", session.ErrUnexpectedArgument},
		{"not a number", "insert x", session.ErrInvalidKey},
		{"one bad key", "insert 1 2 three", session.ErrInvalidKey},
		{"float", "search 1.5", session.ErrInvalidKey},
		{"overflow", "insert 9223372036854775808", session.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := session.ParseCommand(tt.line)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCommand_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, session.Command{}.IsEmpty())
	assert.False(t, session.Command{Verb: session.VerbPrint}.IsEmpty())
}
