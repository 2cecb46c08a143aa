package cli

import (
	"bufio"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// Prompter collects interactive confirmations from stdin.
type Prompter struct {
	reader *bufio.Reader
	output *Output
}

// NewPrompter creates a prompter reading from the command's input stream.
func NewPrompter(cmd *cobra.Command, output *Output) *Prompter {
	var in io.Reader = cmd.InOrStdin()
	return &Prompter{
		reader: bufio.NewReader(in),
		output: output,
	}
}

// YesNo asks a yes/no question. An empty answer takes the default.
func (p *Prompter) YesNo(label string, def bool) bool {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	p.output.Printf("%s %s ", label, hint)

	line, err := p.reader.ReadString('\n')
	if err != nil {
		return def
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	switch answer {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Line asks a free-text question and returns the trimmed answer.
func (p *Prompter) Line(label string) string {
	p.output.Printf("%s ", label)
	line, err := p.reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
