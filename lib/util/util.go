package util

import (
	"fmt"
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

type QualifiedTable struct {
	Schema string
	Table  string
}

func (q QualifiedTable) String() string {
	return q.Schema + "." + q.Table
}

// returns the first non-empty string, or the empty string
func CoalesceStr(strs ...string) string {
	for _, s := range strs {
		if len(s) > 0 {
			return s
		}
	}
	return ""
}

// prompts user for input on the console, hiding input
func PromptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	d, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return string(d), err
}
