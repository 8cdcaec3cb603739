// Package editor opens files in the user's text editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Launcher opens a file for interactive editing and returns when done.
type Launcher interface {
	Edit(path string) error
}

// Command runs an external editor program.
type Command struct {
	Name string
	Args []string
}

// FromEnv returns the editor named by $VISUAL or $EDITOR, falling back to vi.
// Extra words in the variable ("code --wait") become arguments.
func FromEnv() Command {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(key)); len(fields) > 0 {
			return Command{Name: fields[0], Args: fields[1:]}
		}
	}
	return Command{Name: "vi"}
}

func (c Command) Edit(path string) error {
	args := append(append([]string{}, c.Args...), path)
	cmd := exec.Command(c.Name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running editor %s: %w", c.Name, err)
	}
	return nil
}
