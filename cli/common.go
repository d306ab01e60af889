package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/nithinshyam13/s0055aka/card"
	"github.com/nithinshyam13/s0055aka/config"
	"github.com/nithinshyam13/s0055aka/functions"
	"github.com/nithinshyam13/s0055aka/provider"
)

// loadCard parses the config file, seeds a provider.Store from it,
// and wires up a Card for identity.
func loadCard() (*card.Card, *provider.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	subs := make([]provider.Subscriber, 0, len(cfg.Subscribers))
	var initialSQN [functions.SQNLen]byte
	for _, seed := range cfg.Subscribers {
		k, err := seed.DecodeK()
		if err != nil {
			return nil, nil, fmt.Errorf("akactl: subscriber %s: %w", seed.Identity, err)
		}
		sqn, err := seed.DecodeSQN()
		if err != nil {
			return nil, nil, fmt.Errorf("akactl: subscriber %s: %w", seed.Identity, err)
		}
		var sub provider.Subscriber
		sub.Identity = seed.Identity
		copy(sub.K[:], k)
		copy(sub.SQN[:], sqn)
		subs = append(subs, sub)

		if seed.Identity == identity {
			copy(initialSQN[:], sqn)
		}
	}

	store := provider.NewStore(subs)

	fn, err := functions.NewDefault()
	if err != nil {
		return nil, nil, fmt.Errorf("akactl: %w", err)
	}

	c := card.New(fn, store, cfg.SeqCheck, initialSQN, logger)
	return c, store, nil
}

func decodeRand() ([]byte, error) {
	rand, err := hex.DecodeString(randHex)
	if err != nil {
		return nil, fmt.Errorf("akactl: invalid --rand: %w", err)
	}
	if len(rand) != functions.RandLen {
		return nil, fmt.Errorf("akactl: --rand must be %d bytes, got %d", functions.RandLen, len(rand))
	}
	return rand, nil
}
