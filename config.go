package authfront

// Defaults applied when a Config getter returns the zero value.
const (
	DefaultStorageKey       = "auth-storage"
	DefaultAuthScheme       = "Bearer"
	DefaultLoginPath        = "/login"
	DefaultSignupPath       = "/signup"
	DefaultLanding          = "/dashboard"
	DefaultRejectedRouteKey = "rejected_route"
)

// SimpleConfig is a plain value implementation of Config. Zero fields resolve
// to the package defaults so an empty SimpleConfig is usable as-is.
type SimpleConfig struct {
	BaseURL          string
	AuthScheme       string
	StorageKey       string
	LoginPath        string
	SignupPath       string
	DefaultLanding   string
	RejectedRouteKey string
}

var _ Config = SimpleConfig{}

func (c SimpleConfig) GetBaseURL() string { return c.BaseURL }

func (c SimpleConfig) GetAuthScheme() string {
	return orDefault(c.AuthScheme, DefaultAuthScheme)
}

func (c SimpleConfig) GetStorageKey() string {
	return orDefault(c.StorageKey, DefaultStorageKey)
}

func (c SimpleConfig) GetLoginPath() string {
	return orDefault(c.LoginPath, DefaultLoginPath)
}

func (c SimpleConfig) GetSignupPath() string {
	return orDefault(c.SignupPath, DefaultSignupPath)
}

func (c SimpleConfig) GetDefaultLanding() string {
	return orDefault(c.DefaultLanding, DefaultLanding)
}

func (c SimpleConfig) GetRejectedRouteKey() string {
	return orDefault(c.RejectedRouteKey, DefaultRejectedRouteKey)
}

func orDefault(val, def string) string {
	if val == "" {
		return def
	}
	return val
}
