package formtonic

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"time"
)

// Config containing all the configuration values for a service.
type Config struct {
	// Title shown above the form and in the page title.
	Title string
	// Port the web server listens on.
	Port uint16
	// CookieName is the name of the session cookie.
	CookieName string
	// DBPath is the sqlite file holding sessions and submissions.
	DBPath string
	// QueueLength is the number of submissions that can wait for the
	// submission action.
	QueueLength int
	// SessionMaxAgeHours expires sessions (and their CSRF tokens).  Zero
	// never expires.
	SessionMaxAgeHours int
}

func (c *Config) setDefaults() {
	if c.Title == "" {
		c.Title = "formtonic"
	}
	if c.CookieName == "" {
		c.CookieName = "formtonic-session"
	}
	if c.DBPath == "" {
		c.DBPath = "./formtonic.db"
	}
	if c.QueueLength <= 0 {
		c.QueueLength = 100
	}
}

func (c *Config) sessionMaxAge() time.Duration {
	return time.Duration(c.SessionMaxAgeHours) * time.Hour
}

// ReadConfig reads a JSON configuration file.  Missing values get their
// defaults.
func ReadConfig(filename string) (*Config, error) {
	confData, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	config := new(Config)
	if err := json.Unmarshal(confData, config); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", filename, err)
	}
	config.setDefaults()
	return config, nil
}
