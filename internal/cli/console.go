package cli

import (
	"time"

	"github.com/pterm/pterm"
)

// Console reads a line of player input after showing a prompt
type Console interface {
	Input(prompt string) (string, error)
}

// Terminal is the interactive pterm console
type Terminal struct{}

func (Terminal) Input(prompt string) (string, error) {
	return pterm.DefaultInteractiveTextInput.Show(prompt)
}

// spin shows a spinner with title for d. A zero d shows nothing.
func spin(title string, d time.Duration) {
	if d <= 0 {
		return
	}

	spinner, err := pterm.DefaultSpinner.Start(title)
	if err != nil {
		return
	}

	time.Sleep(d)
	_ = spinner.Stop()
}
