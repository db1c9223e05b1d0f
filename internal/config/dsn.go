package config

import (
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
)

const (
	defaultDBHost    = "127.0.0.1"
	defaultDBPort    = 3306
	defaultDBUser    = "root"
	defaultDBName    = "lumen_core"
	defaultDBCharset = "utf8mb4"
	defaultDBLoc     = "Local"
)

// DSNValue resolves the MySQL DSN, preferring an explicit dsn string and
// otherwise assembling one from the structured fields.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := strings.TrimSpace(c.User)
	if user == "" {
		user = defaultDBUser
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = defaultDBName
	}
	charset := strings.TrimSpace(c.Charset)
	if charset == "" {
		charset = defaultDBCharset
	}
	loc := strings.TrimSpace(c.Loc)
	if loc == "" {
		loc = defaultDBLoc
	}

	dc := mysql.NewConfig()
	dc.User = user
	dc.Passwd = c.Password
	dc.Net = "tcp"
	dc.Addr = host + ":" + strconv.Itoa(port)
	dc.DBName = name
	dc.ParseTime = true
	dc.Params = map[string]string{
		"charset": charset,
		"loc":     loc,
	}
	return dc.FormatDSN()
}
