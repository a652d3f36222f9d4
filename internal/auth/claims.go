package auth

// OperatorClaims identifies who triggered a request: a full API key or a
// signed dashboard link scoped to a single progress session.
type OperatorClaims interface {
	Key() string
	Source() string
	CanTriggerSync() bool
	SessionScope() string
}

type APIKeyClaims struct {
	KeyID string
}

func (c *APIKeyClaims) Key() string          { return c.KeyID }
func (c *APIKeyClaims) Source() string       { return "API_KEY" }
func (c *APIKeyClaims) CanTriggerSync() bool { return true }
func (c *APIKeyClaims) SessionScope() string { return "" }

// DashboardLinkClaims may only poll the session the link was signed for
type DashboardLinkClaims struct {
	TokenID   string
	SessionID string
}

func (c *DashboardLinkClaims) Key() string          { return c.TokenID }
func (c *DashboardLinkClaims) Source() string       { return "DASHBOARD_LINK" }
func (c *DashboardLinkClaims) CanTriggerSync() bool { return false }
func (c *DashboardLinkClaims) SessionScope() string { return c.SessionID }
