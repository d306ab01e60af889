package cli

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/nithinshyam13/s0055aka/functions"
)

var amfHex string

var quintupletCmd = &cobra.Command{
	Use:   "quintuplet",
	Short: "Build an AUTN for the subscriber's next SQN and verify it through the card",
	Long: `Computes AK=F5(K,RAND) and MAC=F1(K,RAND,SQN,AMF) for the subscriber's
stored SQN+1, assembles AUTN = (SQN xor AK) | AMF | MAC, and feeds it
through Card.GetQuintuplet the way a network-side challenge would
arrive at a USIM. Intended as a runnable walkthrough of the network
and card sides computing with the same S.S0055 functions (each side
holds its own Functions instance), not a stand-in for an actual
network.`,
	RunE: runQuintuplet,
}

func init() {
	quintupletCmd.Flags().StringVar(&amfHex, "amf", "0000", "AMF, 4 hex chars (2 bytes)")
	rootCmd.AddCommand(quintupletCmd)
}

func runQuintuplet(cmd *cobra.Command, args []string) error {
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

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("QUINTUPLET")
	t.Style().Title.Colors = text.Colors{text.FgCyan, text.Bold}
	t.AppendHeader(table.Row{"field", "value"})
	t.AppendRows([]table.Row{
		{"identity", identity},
		{"RAND", hex.EncodeToString(q.RAND)},
		{"AUTN", hex.EncodeToString(autn)},
		{"RES", hex.EncodeToString(q.RES)},
		{"CK", hex.EncodeToString(q.CK)},
		{"IK", hex.EncodeToString(q.IK)},
		{"SQN", hex.EncodeToString(nextSQN[:])},
	})
	t.Render()
	return nil
}

func incrementSQN(sqn [functions.SQNLen]byte) [functions.SQNLen]byte {
	v := make([]byte, 8)
	copy(v[2:], sqn[:])
	n := binary.BigEndian.Uint64(v) + 1
	binary.BigEndian.PutUint64(v, n)
	var out [functions.SQNLen]byte
	copy(out[:], v[2:])
	return out
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
