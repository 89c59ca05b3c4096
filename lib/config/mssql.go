package config

import (
	"fmt"
	"net/url"

	"github.com/artie-labs/geosql/lib/config/constants"
	"github.com/artie-labs/geosql/lib/stringutil"
)

type MSSQL struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// Table holds the stored geographies, it will be created if it does not exist.
	Table string `yaml:"table"`
}

func (m *MSSQL) setDefaults() {
	m.Table = stringutil.Override(constants.DefaultMSSQLTable, m.Table)
}

func (m *MSSQL) DSN() string {
	query := url.Values{}
	query.Add("database", m.Database)

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(m.Username, m.Password),
		Host:     fmt.Sprintf("%s:%d", m.Host, m.Port),
		RawQuery: query.Encode(),
	}

	return u.String()
}

func (m *MSSQL) String() string {
	// Don't log credentials.
	return fmt.Sprintf("host=%s, port=%d, database=%s, table=%s, user_set=%v, pass_set=%v",
		m.Host, m.Port, m.Database, m.Table, m.Username != "", m.Password != "")
}

func (m *MSSQL) Validate() error {
	if m == nil {
		return fmt.Errorf("mssql config is nil")
	}

	if empty := stringutil.Empty(m.Host, m.Username, m.Password, m.Database, m.Table); empty {
		return fmt.Errorf("one of mssql settings is empty (host, username, password, database, table)")
	}

	if m.Port <= 0 {
		return fmt.Errorf("invalid mssql port: %d", m.Port)
	}

	return nil
}
