package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config lever node config
type Config struct {
	App    App       `json:"app"`
	DB     db.Config `json:"db"`
	API    API       `json:"api"`
	Admins []string  `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	if len(c.Admins) <= 0 {
		return false
	}

	for _, a := range c.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

// App app config
type App struct {
	// Genesis unix seconds of block 0
	Genesis int64 `json:"genesis"`
	// SecondsPerBlock length of one accrual period
	SecondsPerBlock int64 `json:"seconds_per_block"`
	Location        string `json:"location"`
}

// API api server config
type API struct {
	Port int `json:"port"`
}
