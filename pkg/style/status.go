package style

import (
	"fmt"

	"github.com/arthur-debert/livelink/pkg/types"
	"github.com/pterm/pterm"
)

// StatusStyle returns the pterm style used for a step status badge
func StatusStyle(status types.StepStatus) *pterm.Style {
	switch status {
	case types.StepSuccess:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case types.StepFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case types.StepSkipped:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Indicator returns the one-character marker for a step status
func Indicator(status types.StepStatus) string {
	switch status {
	case types.StepSuccess:
		return SuccessIndicator
	case types.StepFailed:
		return ErrorIndicator
	case types.StepSkipped:
		return PendingIndicator
	default:
		return WarningIndicator
	}
}

// Badge renders a fixed-width status label such as " failed  "
func Badge(status types.StepStatus) string {
	return StatusStyle(status).Sprint(fmt.Sprintf(" %-7s ", status))
}

// StepName pads a step name so step lines align
func StepName(name types.StepName) string {
	return Bold(fmt.Sprintf("%-9s", name))
}
