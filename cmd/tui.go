package cmd

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rcardenasv/brakepad-catalog/internal/api"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the catalog interactively in the terminal",
	Example: `  padcli tui
  padcli tui --brand Toyota --position front
  padcli tui --catalog ./catalog.json`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	registerCatalogFilterFlags(tuiCmd.Flags())
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isInteractiveSession(cmd.InOrStdin(), cmd.OutOrStdout()) {
		return invalidArgsError(
			"`padcli tui` requires an interactive terminal",
			"Use `padcli --brand Toyota --json` in pipelines.",
		)
	}

	opts, err := buildFilterOptions()
	if err != nil {
		return err
	}
	filterCtx, err := buildFilterContext()
	if err != nil {
		return err
	}

	model := newLoadingCatalogTUIModel(tuiLoadConfig{
		cmd:         cmd,
		initialOpts: opts,
		filterCtx:   filterCtx,
	})

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(catalogTUIModel); ok && m.fatalErr != nil {
		return m.fatalErr
	}
	return nil
}

func isInteractiveSession(stdin io.Reader, stdout io.Writer) bool {
	inputFile, ok := stdin.(*os.File)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(inputFile.Fd())) {
		return false
	}
	return isTTY(stdout)
}

// loadTUIData resolves the catalog snapshot for the TUI loader command.
func loadTUIData(cmd *cobra.Command) (string, []api.CatalogItem, error) {
	resp, source, err := resolveCatalog(cmd)
	if err != nil {
		return "", nil, err
	}
	if len(resp.Items) == 0 {
		return "", nil, notFoundError(
			"catalog snapshot is empty",
			"Check the --catalog source.",
		)
	}
	return source, resp.Items, nil
}
