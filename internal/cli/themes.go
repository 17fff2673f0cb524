package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/citymaps/cityposter/pkg/errors"
	"github.com/citymaps/cityposter/pkg/theme"
)

func newThemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List, preview, and pick poster themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemesList(cmd)
		},
	}

	cmd.AddCommand(newThemesListCmd())
	cmd.AddCommand(newThemesPreviewCmd())
	cmd.AddCommand(newThemesPickCmd())
	return cmd
}

func newThemesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the installed themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemesList(cmd)
		},
	}
}

func runThemesList(cmd *cobra.Command) error {
	cfg := configFromContext(cmd.Context())
	store := theme.NewStore(cfg.ThemesDir, loggerFromContext(cmd.Context()))

	names := store.List()
	if len(names) == 0 {
		printWarning("No themes found in %s", store.Dir())
		return nil
	}

	fmt.Println(StyleTitle.Render("Installed Themes"))
	printNewline()
	for _, entry := range themeEntries(store) {
		display := entry.Display
		if display == "" {
			display = entry.Name
		}
		printKeyValue(entry.Name, fmt.Sprintf("%s %s", display,
			StyleDim.Render(fmt.Sprintf("[%s] %s", entry.Mode, entry.Description))))
	}
	printNewline()
	printNextStep("Render with a theme", appName+" generate \"Berlin\" --theme "+names[0])
	return nil
}

func newThemesPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Interactively pick a theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			store := theme.NewStore(cfg.ThemesDir, loggerFromContext(cmd.Context()))

			entries := themeEntries(store)
			if len(entries) == 0 {
				return errors.New(errors.ErrCodeThemeNotFound, "no themes found in %s", store.Dir())
			}

			model, err := tea.NewProgram(NewThemeListModel(entries)).Run()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "running theme picker")
			}

			final, ok := model.(ThemeListModel)
			if !ok || final.Selected == nil {
				printDetail("No theme selected")
				return nil
			}

			printSuccess("Selected %s", StyleHighlight.Render(final.Selected.Name))
			printNextStep("Render it", appName+" generate \"Berlin\" --theme "+final.Selected.Name)
			return nil
		},
	}
}

// themeEntries loads the metadata row for every installed theme.
func themeEntries(store *theme.Store) []themeEntry {
	names := store.List()
	entries := make([]themeEntry, 0, len(names))
	for _, name := range names {
		t := store.Load(name)
		entries = append(entries, themeEntry{
			Name:        name,
			Display:     t.Name,
			Mode:        string(t.Mode()),
			Description: t.Description,
		})
	}
	return entries
}
