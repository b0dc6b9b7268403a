// Package consul registers the blog service with a HashiCorp Consul agent.
package consul

import (
	"blog/internal/config"

	consulapi "github.com/hashicorp/consul/api"
)

// Client wraps the Consul API client
type Client struct {
	api *consulapi.Client
}

// NewClient creates a Consul client from cfg, using the ACL token when set
func NewClient(cfg config.Consul) (*Client, error) {
	apiCfg := consulapi.DefaultConfig()
	apiCfg.Address = cfg.Addr
	if cfg.Token != "" {
		apiCfg.Token = cfg.Token
	}

	client, err := consulapi.NewClient(apiCfg)
	if err != nil {
		return nil, err
	}

	return &Client{api: client}, nil
}
