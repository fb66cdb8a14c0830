// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package commander

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
)

// RecoverPlayer builds a fallback Target that connects directly to a
// player's own address instead of proxying the RPC through the media
// server, for use after a proxied RPC fails with a bad_request-category
// error. Clients in ProxyOnlyClients have no direct RPC endpoint and
// cannot be recovered this way.
func RecoverPlayer(t Target, playerAddress string) (Target, error) {
	if ProxyOnlyClients[t.Product] {
		return Target{}, fmt.Errorf("commander: %s has no direct-connection fallback", t.Product)
	}
	if playerAddress == "" {
		return Target{}, fmt.Errorf("commander: no address reported for player %s", t.MachineIdentifier)
	}

	port := ClientPorts[t.Product]
	if port == 0 {
		port = DefaultClientPort
	}

	host := playerAddress
	if u, err := url.Parse(playerAddress); err == nil && u.Host != "" {
		host = u.Hostname()
	}

	recovered := t
	recovered.BaseURL = "http://" + host + ":" + strconv.Itoa(port)
	recovered.ProxyThroughServer = false

	logging.Info().Str("player", t.MachineIdentifier).Str("baseURL", recovered.BaseURL).Msg("falling back to direct player connection")
	return recovered, nil
}
