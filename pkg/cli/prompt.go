// Package cli holds small terminal interaction helpers.
package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// HuhConfirmer asks yes/no questions through an interactive huh form.
type HuhConfirmer struct{}

// NewHuhConfirmer creates a new interactive confirmer.
func NewHuhConfirmer() *HuhConfirmer {
	return &HuhConfirmer{}
}

// Confirm displays a confirmation prompt and returns the operator's
// answer. The default answer is no.
func (c *HuhConfirmer) Confirm(title, description string) (bool, error) {
	var answer bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&answer),
		),
	)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}

	return answer, nil
}
