package live

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

type ConnectionParams struct {
	Host     string
	Port     uint
	Name     string
	User     string
	Password string
}

func (p ConnectionParams) dsn() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s", p.Host, p.Port, p.User, p.Name)
	if p.Password != "" {
		dsn += fmt.Sprintf(" password=%s", p.Password)
	}
	return dsn
}

// Connection is a pool of connections to a single database. Statements run
// through Exec are autocommitted.
type Connection struct {
	conn *pgxpool.Pool
}

func NewConnection(ctx context.Context, params ConnectionParams) (*Connection, error) {
	conn, err := pgxpool.Connect(ctx, params.dsn())
	if err != nil {
		return nil, errors.Wrapf(err, "could not connect to postgres database %s on %s", params.Name, params.Host)
	}
	return &Connection{conn}, nil
}

func (c *Connection) Version(ctx context.Context) (VersionNum, error) {
	var v string // server_version_num is reported as text
	err := c.QueryVal(ctx, &v, "SHOW server_version_num;")
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(v)
	return VersionNum(i), err
}

func (c *Connection) Disconnect() {
	c.conn.Close()
}

func (c *Connection) Exec(ctx context.Context, sql string, params ...interface{}) (pgconn.CommandTag, error) {
	return c.conn.Exec(ctx, sql, params...)
}

func (c *Connection) QueryRaw(ctx context.Context, query string, params ...interface{}) (pgx.Rows, error) {
	return c.conn.Query(ctx, query, params...)
}

func (c *Connection) QueryVal(ctx context.Context, val interface{}, sql string, params ...interface{}) error {
	return c.conn.QueryRow(ctx, sql, params...).Scan(val)
}
