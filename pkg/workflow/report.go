package workflow

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// report prints the completion summary. Pure output, no side effects.
func (in *Installer) report(ctx context.Context, st *State) error {
	fmt.Fprintln(in.out)
	fmt.Fprintln(in.out, successStyle.Render("✅ .NET SDK installation complete"))
	fmt.Fprintln(in.out)

	fmt.Fprintf(in.out, "%s %s (%s)\n", headerStyle.Render("Version:"), st.InstalledVersion, st.InstalledPath)

	if st.TrustKey != nil {
		fmt.Fprintf(in.out, "%s %s\n", headerStyle.Render("Trust key:"), st.TrustKey.Fingerprint)
	}

	fmt.Fprintln(in.out)
	fmt.Fprintln(in.out, headerStyle.Render("Installed SDKs:"))
	for _, sdk := range st.SDKs {
		fmt.Fprintf(in.out, "  %s\n", sdk)
	}

	fmt.Fprintln(in.out)
	fmt.Fprintln(in.out, headerStyle.Render("Installed runtimes:"))
	for _, rt := range st.Runtimes {
		fmt.Fprintf(in.out, "  %s\n", rt)
	}

	if len(st.Warnings) > 0 {
		fmt.Fprintln(in.out)
		for _, warning := range st.Warnings {
			fmt.Fprintln(in.out, warnStyle.Render("⚠️  "+warning))
		}
	}

	fmt.Fprintln(in.out)
	return nil
}
