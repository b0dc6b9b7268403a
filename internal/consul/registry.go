package consul

import (
	"fmt"

	consulapi "github.com/hashicorp/consul/api"
)

// ServiceConfig describes a service instance to register
type ServiceConfig struct {
	ID      string
	Name    string
	Address string
	Port    int
	Tags    []string
	Check   *HealthCheck
}

// HealthCheck is an HTTP check polled by the agent
type HealthCheck struct {
	HTTP     string
	Interval string
	Timeout  string
}

// BlogService returns the registration for the blog API listening on host:port
func BlogService(host string, port int) *ServiceConfig {
	return &ServiceConfig{
		ID:      fmt.Sprintf("blog-service-%s", host),
		Name:    "blog-service",
		Address: host,
		Port:    port,
		Tags:    []string{"blog", "posts", "comments", "api"},
		Check: &HealthCheck{
			HTTP:     fmt.Sprintf("http://%s:%d/health", host, port),
			Interval: "10s",
			Timeout:  "3s",
		},
	}
}

func (cfg *ServiceConfig) registration() *consulapi.AgentServiceRegistration {
	reg := &consulapi.AgentServiceRegistration{
		ID:      cfg.ID,
		Name:    cfg.Name,
		Address: cfg.Address,
		Port:    cfg.Port,
		Tags:    cfg.Tags,
	}
	if cfg.Check != nil {
		reg.Check = &consulapi.AgentServiceCheck{
			HTTP:     cfg.Check.HTTP,
			Interval: cfg.Check.Interval,
			Timeout:  cfg.Check.Timeout,
		}
	}
	return reg
}

// Register registers a service with Consul
func (c *Client) Register(cfg *ServiceConfig) error {
	if err := c.api.Agent().ServiceRegister(cfg.registration()); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}
	return nil
}

// Deregister removes a service from Consul
func (c *Client) Deregister(serviceID string) error {
	if err := c.api.Agent().ServiceDeregister(serviceID); err != nil {
		return fmt.Errorf("failed to deregister service: %w", err)
	}
	return nil
}
