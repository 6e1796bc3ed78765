package sender

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Windows consoles default to a legacy code page. The child shares the
// console, so switching it to UTF-8 once keeps non-ASCII file names intact.
var windowsCodePageCommand = []string{"cmd", "/c", "chcp", "65001"}

// SendCommand returns the argument vector for wormhole send.
func SendCommand(binary string, req *Request) []string {
	argv := []string{binary, "send", "--code", req.Code, req.Target}
	return append(argv, req.PassThrough...)
}

// ReceiveCommand returns the command the receiving party has to run. Only
// the base name of binary is used: a local install path means nothing on the
// other computer.
func ReceiveCommand(binary, code string) string {
	return fmt.Sprintf("%s receive --accept-file %s", filepath.Base(binary), code)
}

// ConsoleSetupCommand returns the command run once before the first send on
// the operating system goos, or nil when none is needed. The send command
// itself is always executed directly, never through a shell.
func ConsoleSetupCommand(goos string) []string {
	if goos != "windows" {
		return nil
	}
	return append([]string(nil), windowsCodePageCommand...)
}

// PrintBanner writes the instructions for the receiving side.
func PrintBanner(w io.Writer, binary string, req *Request) {
	var b strings.Builder
	fmt.Fprintf(&b, "\nSending \"%s\"...\n", req.Target)
	b.WriteString("On the other computer, run the following command:\n\n")
	b.WriteString("    " + ReceiveCommand(binary, req.Code) + "\n\n")
	io.WriteString(w, b.String())
}
