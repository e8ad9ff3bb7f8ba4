package hived

import "github.com/hivewallet/authority-api/interfaces"

// Ensure Client implements the chain client boundary
var _ interfaces.ChainClient = (*Client)(nil)
