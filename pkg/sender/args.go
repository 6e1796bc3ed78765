// Package sender 实现 wormhole send 的包装逻辑
//
// 核心功能:
//   - 参数解析: 识别 tx 自身的选项，其余参数原样转发给 wormhole send
//   - 命令构造: 生成 send 命令行以及接收方需要执行的 receive 命令
//   - 输出过滤: 逐行转发子进程输出，去掉与横幅重复的行
//   - 进程执行: 等待子进程退出并返回其退出码，支持 --multi 重复发送
//
// 使用示例:
//
//	opts, rest, err := sender.ParseArgs(os.Args[1:], 32)
//	if err != nil {
//	    return err
//	}
//	req, err := resolver.Resolve(opts, rest, dir)
//	if err != nil {
//	    return err
//	}
//	err = runner.Run(ctx, req)
//
// 注意事项:
//   - 所有参数校验都在启动子进程之前完成
//   - 子进程的错误输出不做解析，只信任退出码
package sender

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"wormholeTx/pkg/code"
	"wormholeTx/pkg/file"
)

// Options holds the options tx recognizes itself.
type Options struct {
	Target     string
	Code       string
	CodeLength int
	Multi      bool
	Help       bool
	Version    bool

	// CodeSet and CodeLengthSet record whether the flag appeared on the
	// command line, as opposed to carrying its default.
	CodeSet       bool
	CodeLengthSet bool
}

// Request is one resolved transfer: everything needed to build the send
// command. It lives for a single invocation.
type Request struct {
	Target      string
	Info        file.TargetInfo
	Code        string
	CodeLength  int
	PassThrough []string
	Dir         string
	Multi       bool
}

const (
	flagCode       = "code"
	flagCodeLength = "code-length"
	flagMulti      = "multi"
	flagHelp       = "help"
	flagVersion    = "version"
)

// disallowed pass-through flags and the hint printed with them
var unsupportedOptions = map[string]string{
	"--appid": "Use --code instead.",
}

// NewFlagSet returns the flag set describing tx's own options, bound to opts.
func NewFlagSet(opts *Options, defaultCodeLength int) *pflag.FlagSet {
	fs := pflag.NewFlagSet("tx", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	fs.StringVar(&opts.Code, flagCode, "", "The code to use")
	fs.IntVar(&opts.CodeLength, flagCodeLength, defaultCodeLength, "The code length to generate")
	fs.BoolVar(&opts.Multi, flagMulti, false, "Keep sending the same file to successive receivers")
	fs.BoolVarP(&opts.Help, flagHelp, "h", false, "Show this help message")
	fs.BoolVar(&opts.Version, flagVersion, false, "Print version information")
	return fs
}

// ParseArgs splits raw arguments into tx's own options and the ordered list
// of tokens to forward to wormhole send. The first bare token is the target.
// Unknown flags are never interpreted, so their values should follow the
// target or use the --flag=value form.
func ParseArgs(args []string, defaultCodeLength int) (Options, []string, error) {
	var (
		opts      Options
		known     []string
		rest      []string
		endOfOpts bool
	)

	valued := map[string]bool{"--" + flagCode: true, "--" + flagCodeLength: true}
	boolean := map[string]bool{
		"--" + flagMulti:   true,
		"--" + flagHelp:    true,
		"-h":               true,
		"--" + flagVersion: true,
	}

	for i := 0; i < len(args); i++ {
		tok := args[i]

		if endOfOpts {
			if opts.Target == "" {
				opts.Target = tok
			} else {
				rest = append(rest, tok)
			}
			continue
		}

		if tok == "--" {
			endOfOpts = true
			continue
		}

		name, value, hasValue := strings.Cut(tok, "=")
		full, err := expandLongFlag(name)
		if err != nil {
			return Options{}, nil, err
		}
		if full != name {
			name = full
			tok = full
			if hasValue {
				tok += "=" + value
			}
		}

		switch {
		case valued[name]:
			if hasValue {
				known = append(known, tok)
				continue
			}
			if i+1 >= len(args) {
				return Options{}, nil, usageErrorf("flag needs an argument: %s", name)
			}
			known = append(known, tok, args[i+1])
			i++
		case boolean[name]:
			known = append(known, tok)
		case strings.HasPrefix(tok, "-") && tok != "-":
			rest = append(rest, tok)
		case opts.Target == "":
			opts.Target = tok
		default:
			rest = append(rest, tok)
		}
	}

	fs := NewFlagSet(&opts, defaultCodeLength)
	if err := fs.Parse(known); err != nil {
		return Options{}, nil, usageErrorf("%v", err)
	}
	opts.CodeSet = fs.Changed(flagCode)
	opts.CodeLengthSet = fs.Changed(flagCodeLength)

	return opts, rest, nil
}

// longFlags lists tx's own long options in the order they are matched.
var longFlags = []string{flagCode, flagCodeLength, flagMulti, flagHelp, flagVersion}

// expandLongFlag expands an unambiguous prefix of one of tx's long options,
// e.g. "--code-len" to "--code-length". An exact name always wins. Tokens
// that match nothing are returned unchanged.
func expandLongFlag(name string) (string, error) {
	if !strings.HasPrefix(name, "--") || len(name) == 2 {
		return name, nil
	}
	prefix := name[2:]

	var matches []string
	for _, long := range longFlags {
		if long == prefix {
			return name, nil
		}
		if strings.HasPrefix(long, prefix) {
			matches = append(matches, "--"+long)
		}
	}

	switch len(matches) {
	case 0:
		return name, nil
	case 1:
		return matches[0], nil
	default:
		return "", usageErrorf("ambiguous option: %s could match %s", name, strings.Join(matches, ", "))
	}
}

// Resolver turns parsed options into a validated Request.
type Resolver struct {
	FS           file.FileSystemAdapter
	GenerateCode func(length int) (string, error)
}

// NewResolver returns a Resolver backed by the local file system and
// crypto/rand code generation.
func NewResolver() *Resolver {
	return &Resolver{
		FS:           file.NewLocalFileSystemAdapter(),
		GenerateCode: code.Generate,
	}
}

// Resolve validates opts and the pass-through tokens against dir and fills
// in the pairing code. No process is started here.
func (r *Resolver) Resolve(opts Options, passThrough []string, dir string) (*Request, error) {
	if opts.Target == "" {
		return nil, usageErrorf("the following arguments are required: file_or_dir")
	}

	if opts.CodeSet && opts.CodeLengthSet {
		return nil, usageErrorf("Cannot specify both --code and --code-length. Either specify --code or --code-length.")
	}

	if opts.CodeSet && opts.Code == "" {
		return nil, usageErrorf("--code cannot be empty")
	}

	if !opts.CodeSet && opts.CodeLength < 1 {
		return nil, usageErrorf("invalid --code-length: %d (must be at least 1)", opts.CodeLength)
	}

	for _, tok := range passThrough {
		name, _, _ := strings.Cut(tok, "=")
		if hint, ok := unsupportedOptions[name]; ok {
			return nil, &UnsupportedOptionError{Option: name, Hint: hint}
		}
	}

	info, err := r.FS.Stat(dir, opts.Target)
	if err != nil {
		logrus.Debugf("stat %s: %v", opts.Target, err)
		return nil, &PathNotFoundError{Path: opts.Target}
	}

	req := &Request{
		Target:      opts.Target,
		Info:        info,
		CodeLength:  opts.CodeLength,
		PassThrough: passThrough,
		Dir:         dir,
		Multi:       opts.Multi,
	}

	if opts.CodeSet {
		req.Code = opts.Code
		req.CodeLength = len(opts.Code)
		if !code.IsNumeric(opts.Code) {
			logrus.Warnf("code %q is not numeric; the receiver must type it exactly", opts.Code)
		}
	} else {
		generated, err := r.GenerateCode(opts.CodeLength)
		if err != nil {
			return nil, err
		}
		req.Code = generated
	}

	return req, nil
}
