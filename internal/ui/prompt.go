package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quynhluu-labs/quynhluu/internal/apperr"
)

const maxAttempts = 3

// Choice is one option of a Prompt menu.
type Choice struct {
	Key   string
	Label string
}

// Prompt asks the user to pick one of choices and returns its Key. The user
// may answer with the menu number or the key itself; an empty answer picks
// def. Without a terminal, def is returned, or NonInteractiveInputError when
// def is empty.
func (c *Console) Prompt(question string, choices []Choice, def string) (string, error) {
	if !c.interactive {
		if def == "" {
			return "", &apperr.NonInteractiveInputError{Question: question}
		}
		return def, nil
	}
	if len(choices) == 0 {
		return "", fmt.Errorf("prompt %q has no choices", question)
	}

	fmt.Fprintln(c.out)
	c.bold.Fprintln(c.out, question)
	for i, ch := range choices {
		marker := " "
		if ch.Key == def {
			marker = "*"
		}
		fmt.Fprintf(c.out, " %s%2d) %s", marker, i+1, ch.Key)
		if ch.Label != "" && ch.Label != ch.Key {
			c.dim.Fprintf(c.out, " (%s)", ch.Label)
		}
		fmt.Fprintln(c.out)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if def != "" {
			fmt.Fprintf(c.out, "Enter number or name [default: %s]: ", def)
		} else {
			fmt.Fprintf(c.out, "Enter number or name [1-%d]: ", len(choices))
		}

		answer, err := c.readLine()
		if err != nil {
			return "", fmt.Errorf("reading selection: %w", err)
		}
		if answer == "" && def != "" {
			return def, nil
		}
		if key, ok := matchChoice(choices, answer); ok {
			return key, nil
		}
		c.warn.Fprintf(c.out, "Invalid selection %q\n", answer)
	}
	return "", fmt.Errorf("no valid selection for %q after %d attempts", question, maxAttempts)
}

// Confirm asks a yes/no question. Without a terminal it returns def.
func (c *Console) Confirm(question string, def bool) (bool, error) {
	if !c.interactive {
		return def, nil
	}

	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(c.out, "%s %s ", question, hint)
		answer, err := c.readLine()
		if err != nil {
			return false, fmt.Errorf("reading confirmation: %w", err)
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
	return false, fmt.Errorf("no valid answer for %q after %d attempts", question, maxAttempts)
}

func (c *Console) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func matchChoice(choices []Choice, answer string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1].Key, true
		}
		return "", false
	}
	for _, ch := range choices {
		if strings.EqualFold(ch.Key, answer) {
			return ch.Key, true
		}
	}
	return "", false
}
