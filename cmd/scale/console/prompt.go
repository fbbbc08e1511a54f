package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// Confirm asks a yes/no question and blocks until the operator answers;
// empty input counts as yes.
func Confirm(question string) (bool, error) {
	rl, err := readline.New(question + " [Y/n]: ")
	if err != nil {
		return false, err
	}
	response, err := rl.Readline()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PromptFloat reads a positive decimal number, re-prompting on bad input.
func PromptFloat(question string) (float64, error) {
	rl, err := readline.New(question + ": ")
	if err != nil {
		return 0, err
	}
	for {
		response, err := rl.Readline()
		if err != nil {
			return 0, err
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(response), 64)
		if err != nil || val <= 0 {
			Warnf("please enter a positive number")
			continue
		}
		return val, nil
	}
}

// Pause waits for the operator to press enter.
func Pause(msg string) error {
	rl, err := readline.New(fmt.Sprintf("%s (press enter) ", msg))
	if err != nil {
		return err
	}
	_, err = rl.Readline()
	return err
}
