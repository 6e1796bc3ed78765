package sender

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wormholeTx/pkg/file"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantOpts Options
		wantRest []string
	}{
		{
			name:     "target only",
			args:     []string{"test_file.txt"},
			wantOpts: Options{Target: "test_file.txt", CodeLength: 32},
		},
		{
			name:     "explicit code",
			args:     []string{"--code", "3784918307", "test_file.txt"},
			wantOpts: Options{Target: "test_file.txt", Code: "3784918307", CodeLength: 32, CodeSet: true},
		},
		{
			name:     "code length with equals",
			args:     []string{"test_file.txt", "--code-length=8"},
			wantOpts: Options{Target: "test_file.txt", CodeLength: 8, CodeLengthSet: true},
		},
		{
			name:     "multi",
			args:     []string{"--multi", "photos"},
			wantOpts: Options{Target: "photos", CodeLength: 32, Multi: true},
		},
		{
			name:     "unknown flags pass through in order",
			args:     []string{"--hide-progress", "test_file.txt", "--no-qr", "--relay-url", "ws://relay:4000/v1", "-0"},
			wantOpts: Options{Target: "test_file.txt", CodeLength: 32},
			wantRest: []string{"--hide-progress", "--no-qr", "--relay-url", "ws://relay:4000/v1", "-0"},
		},
		{
			name:     "double dash ends option recognition",
			args:     []string{"--", "--multi", "--code"},
			wantOpts: Options{Target: "--multi", CodeLength: 32},
			wantRest: []string{"--code"},
		},
		{
			name:     "unambiguous prefixes",
			args:     []string{"--code-len", "8", "--mul", "test_file.txt"},
			wantOpts: Options{Target: "test_file.txt", CodeLength: 8, CodeLengthSet: true, Multi: true},
		},
		{
			name:     "prefix with equals",
			args:     []string{"--code-l=6", "test_file.txt"},
			wantOpts: Options{Target: "test_file.txt", CodeLength: 6, CodeLengthSet: true},
		},
		{
			name:     "exact code wins over code-length prefix",
			args:     []string{"--code", "42", "test_file.txt"},
			wantOpts: Options{Target: "test_file.txt", Code: "42", CodeLength: 32, CodeSet: true},
		},
		{
			name:     "help",
			args:     []string{"-h"},
			wantOpts: Options{CodeLength: 32, Help: true},
		},
		{
			name:     "version",
			args:     []string{"--version"},
			wantOpts: Options{CodeLength: 32, Version: true},
		},
		{
			name:     "no args",
			args:     nil,
			wantOpts: Options{CodeLength: 32},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, rest, err := ParseArgs(tt.args, 32)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOpts, opts)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "code without value", args: []string{"test_file.txt", "--code"}},
		{name: "non-integer code length", args: []string{"--code-length", "abc", "test_file.txt"}},
		{name: "non-boolean multi", args: []string{"--multi=maybe", "test_file.txt"}},
		{name: "ambiguous prefix", args: []string{"--co", "1", "test_file.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseArgs(tt.args, 32)
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr), "got %v", err)
		})
	}
}

func newTestResolver(t *testing.T) (*Resolver, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_file.txt"), []byte("This is a test file for tx-rx."), 0644))
	r := &Resolver{
		FS: file.NewLocalFileSystemAdapter(),
		GenerateCode: func(length int) (string, error) {
			b := make([]byte, length)
			for i := range b {
				b[i] = '7'
			}
			return string(b), nil
		},
	}
	return r, dir
}

func TestResolve(t *testing.T) {
	r, dir := newTestResolver(t)

	t.Run("generated code", func(t *testing.T) {
		opts, rest, err := ParseArgs([]string{"test_file.txt", "--code-length", "6", "--hide-progress"}, 32)
		require.NoError(t, err)

		req, err := r.Resolve(opts, rest, dir)
		require.NoError(t, err)
		assert.Equal(t, "777777", req.Code)
		assert.Equal(t, 6, req.CodeLength)
		assert.Equal(t, "test_file.txt", req.Target)
		assert.Equal(t, dir, req.Dir)
		assert.Equal(t, []string{"--hide-progress"}, req.PassThrough)
		assert.Equal(t, int64(30), req.Info.Size)
	})

	t.Run("explicit code", func(t *testing.T) {
		opts, rest, err := ParseArgs([]string{"--code", "3784918307", "test_file.txt", "--multi"}, 32)
		require.NoError(t, err)

		req, err := r.Resolve(opts, rest, dir)
		require.NoError(t, err)
		assert.Equal(t, "3784918307", req.Code)
		assert.Equal(t, 10, req.CodeLength)
		assert.True(t, req.Multi)
		assert.Empty(t, req.PassThrough)
	})
}

func TestResolveErrors(t *testing.T) {
	r, dir := newTestResolver(t)
	generated := 0
	r.GenerateCode = func(length int) (string, error) {
		generated++
		return "1", nil
	}

	tests := []struct {
		name    string
		args    []string
		wantErr interface{}
	}{
		{name: "missing target", args: []string{"--multi"}, wantErr: &UsageError{}},
		{name: "code and code length", args: []string{"--code", "123", "--code-length", "32", "test_file.txt"}, wantErr: &UsageError{}},
		{name: "code and default-valued code length", args: []string{"--code=123", "--code-length=32", "test_file.txt"}, wantErr: &UsageError{}},
		{name: "empty code", args: []string{"--code=", "test_file.txt"}, wantErr: &UsageError{}},
		{name: "zero code length", args: []string{"--code-length", "0", "test_file.txt"}, wantErr: &UsageError{}},
		{name: "appid", args: []string{"test_file.txt", "--appid", "lothar.com/wormhole/text-or-file-xfer"}, wantErr: &UnsupportedOptionError{}},
		{name: "appid with equals", args: []string{"--appid=x", "test_file.txt", "--code", "42"}, wantErr: &UnsupportedOptionError{}},
		{name: "missing path", args: []string{"nope.txt"}, wantErr: &PathNotFoundError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, rest, err := ParseArgs(tt.args, 32)
			require.NoError(t, err)

			req, err := r.Resolve(opts, rest, dir)
			require.Error(t, err)
			assert.Nil(t, req)
			assert.IsType(t, tt.wantErr, err)
			assert.Equal(t, 1, ExitCode(err))
		})
	}

	assert.Zero(t, generated, "no code should be generated for invalid input")
}

func TestPathNotFoundMessage(t *testing.T) {
	err := &PathNotFoundError{Path: "nope.txt"}
	assert.Equal(t, "File or directory nope.txt does not exist.", err.Error())
}

func TestUnsupportedOptionMessage(t *testing.T) {
	err := &UnsupportedOptionError{Option: "--appid", Hint: "Use --code instead."}
	assert.Equal(t, "The --appid option is not supported. Use --code instead.", err.Error())
}
