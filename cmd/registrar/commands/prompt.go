package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"registrar/internal/domain"
)

// prompterFor returns a prompter answering with passphrase when one was given
// on the command line or in the environment, a no-echo terminal prompt when
// stdin is a terminal, and a plain line reader otherwise.
func prompterFor(cmd *cobra.Command, passphrase string) domain.Prompter {
	if passphrase != "" {
		return staticPrompter(passphrase)
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &termPrompter{fd: int(f.Fd()), out: cmd.ErrOrStderr()}
	}
	return &linePrompter{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
}

type staticPrompter string

func (p staticPrompter) ReadSecret(string) (string, error) { return string(p), nil }

type termPrompter struct {
	fd  int
	out io.Writer
}

func (p *termPrompter) ReadSecret(label string) (string, error) {
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// linePrompter reads one byte at a time so that nothing past the newline is
// consumed; the menu reads the same stream afterwards.
type linePrompter struct {
	in  io.Reader
	out io.Writer
}

func (p *linePrompter) ReadSecret(label string) (string, error) {
	fmt.Fprint(p.out, label)
	return readLine(p.in)
}

func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}
			sb.WriteByte(buf[0])
		}
		if err == io.EOF {
			if sb.Len() == 0 {
				return "", io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(sb.String(), "\r"), nil
}
