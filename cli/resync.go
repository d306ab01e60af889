package cli

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var resyncCmd = &cobra.Command{
	Use:   "resync",
	Short: "Produce an AUTS for the subscriber's current stored SQN",
	RunE:  runResync,
}

func init() {
	rootCmd.AddCommand(resyncCmd)
}

func runResync(cmd *cobra.Command, args []string) error {
	if identity == "" {
		return fmt.Errorf("akactl: --identity is required")
	}
	rand, err := decodeRand()
	if err != nil {
		return err
	}

	c, _, err := loadCard()
	if err != nil {
		return err
	}

	auts, err := c.Resync(identity, rand)
	if err != nil {
		return fmt.Errorf("akactl: resync: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("RESYNC")
	t.Style().Title.Colors = text.Colors{text.FgCyan, text.Bold}
	t.AppendHeader(table.Row{"field", "value"})
	t.AppendRows([]table.Row{
		{"identity", identity},
		{"RAND", hex.EncodeToString(rand)},
		{"AUTS", hex.EncodeToString(auts)},
	})
	t.Render()
	return nil
}
