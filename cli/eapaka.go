package cli

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/nithinshyam13/s0055aka/eapaka"
	"github.com/nithinshyam13/s0055aka/functions"
)

var eapakaCmd = &cobra.Command{
	Use:   "eapaka",
	Short: "Run a quintuplet then derive the EAP-AKA key hierarchy from CK/IK",
	RunE:  runEapaka,
}

func init() {
	eapakaCmd.Flags().StringVar(&amfHex, "amf", "0000", "AMF, 4 hex chars (2 bytes)")
	rootCmd.AddCommand(eapakaCmd)
}

func runEapaka(cmd *cobra.Command, args []string) error {
	if identity == "" {
		return fmt.Errorf("akactl: --identity is required")
	}
	rand, err := decodeRand()
	if err != nil {
		return err
	}
	amf, err := hex.DecodeString(amfHex)
	if err != nil || len(amf) != functions.AMFLen {
		return fmt.Errorf("akactl: --amf must be %d hex bytes", functions.AMFLen)
	}

	c, store, err := loadCard()
	if err != nil {
		return err
	}
	k, ok := store.GetK(identity)
	if !ok {
		return fmt.Errorf("akactl: unknown identity %q", identity)
	}

	fn, err := functions.NewDefault()
	if err != nil {
		return err
	}

	nextSQN := incrementSQN(c.StoredSQN())
	ak, err := fn.F5(k, rand)
	if err != nil {
		return err
	}
	mac, err := fn.F1(k, rand, nextSQN[:], amf)
	if err != nil {
		return err
	}
	autn := make([]byte, functions.AUTNLen)
	copy(autn[:functions.SQNLen], xorBytes(nextSQN[:], ak))
	copy(autn[functions.SQNLen:functions.SQNLen+functions.AMFLen], amf)
	copy(autn[functions.SQNLen+functions.AMFLen:], mac)

	q, err := c.GetQuintuplet(identity, rand, autn)
	if err != nil {
		return fmt.Errorf("akactl: get_quintuplet: %w", err)
	}

	keys, err := eapaka.DeriveKeys(identity, q.CK, q.IK)
	if err != nil {
		return fmt.Errorf("akactl: derive eap-aka keys: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("EAP-AKA KEYS")
	t.Style().Title.Colors = text.Colors{text.FgCyan, text.Bold}
	t.AppendHeader(table.Row{"field", "value"})
	t.AppendRows([]table.Row{
		{"identity", identity},
		{"K_encr", hex.EncodeToString(keys.KEncr)},
		{"K_aut", hex.EncodeToString(keys.KAut)},
		{"MSK", hex.EncodeToString(keys.MSK)},
		{"EMSK", hex.EncodeToString(keys.EMSK)},
	})
	t.Render()
	return nil
}
