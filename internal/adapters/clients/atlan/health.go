package atlan

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// ServiceName identifies the catalog in health results, traces and metrics.
const ServiceName = "atlan"

type currentUserDTO struct {
	Username string `json:"username"`
}

// Name returns the identifier used when this component is registered with a
// [ports.HealthRegistry].
func (c *Client) Name() string {
	return ServiceName
}

// HealthCheck fails fast on an open circuit breaker, then fetches the
// current user to confirm the base URL is reachable and the API key is
// accepted.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.req.BreakerCheck(ctx); err != nil {
		return err
	}

	var user currentUserDTO
	if err := c.req.Do(ctx, http.MethodGet, currentUserPath, nil, &user); err != nil {
		return fmt.Errorf("%s: %w", ServiceName, err)
	}

	c.logger.DebugContext(ctx, "catalog credentials accepted",
		slog.String("username", user.Username),
		slog.String("breaker_state", c.req.BreakerState()),
	)
	return nil
}
