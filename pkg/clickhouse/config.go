package clickhouse

import "time"

// ClientOption configures Client.
type ClientOption func(*ClientConfig)

// ClientConfig holds ClickHouse client configuration.
type ClientConfig struct {
	Host            string
	Port            int
	Database        string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxExecTime     time.Duration
	AsyncInsert     bool
	WaitForAsync    bool
}

// WithHost sets the ClickHouse host.
func WithHost(host string) ClientOption {
	return func(c *ClientConfig) {
		c.Host = host
	}
}

// WithPort sets the ClickHouse port.
func WithPort(port int) ClientOption {
	return func(c *ClientConfig) {
		c.Port = port
	}
}

// WithDatabase sets the target database.
func WithDatabase(db string) ClientOption {
	return func(c *ClientConfig) {
		c.Database = db
	}
}

// WithCredentials sets user and password.
func WithCredentials(user, password string) ClientOption {
	return func(c *ClientConfig) {
		c.User = user
		c.Password = password
	}
}

// WithMaxConnections sets pool sizes.
func WithMaxConnections(open, idle int) ClientOption {
	return func(c *ClientConfig) {
		c.MaxOpenConns = open
		c.MaxIdleConns = idle
	}
}

// WithTimeouts sets dial/read/write timeouts.
func WithTimeouts(dial, read, write time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.DialTimeout = dial
		c.ReadTimeout = read
		c.WriteTimeout = write
	}
}

// WithMaxExecutionTime caps server-side query execution time.
func WithMaxExecutionTime(d time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.MaxExecTime = d
	}
}

// WithAsyncInsert toggles async inserts.
func WithAsyncInsert(async, wait bool) ClientOption {
	return func(c *ClientConfig) {
		c.AsyncInsert = async
		c.WaitForAsync = wait
	}
}
