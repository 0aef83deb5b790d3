package pgsql8

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v4"

	"github.com/dbsteward/partitioner/lib/format/pgsql8/live"
)

// Initdb creates a scratch database from the DB_* environment and connects
// to it as DB_USER. It returns nil when DB_NAME is not set.
func Initdb(t *testing.T, dbSuffix string) *live.Connection {
	if os.Getenv("DB_NAME") == "" {
		return nil
	}
	ctx := context.TODO()
	conn, err := pgx.Connect(ctx, adminDSNFromEnv())
	if err != nil {
		t.Fatal(err)
		return nil
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", os.Getenv("DB_NAME")+dbSuffix))
	if err != nil {
		t.Fatal(err)
		return nil
	}
	_, err = conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", os.Getenv("DB_NAME")+dbSuffix))
	if err != nil {
		t.Fatal(err)
		return nil
	}
	lconn, err := live.NewConnection(ctx, userParamsFromEnv(dbSuffix))
	if err != nil {
		t.Fatal(err)
		return nil
	}
	return lconn
}

func Teardowndb(t *testing.T, c *live.Connection, dbSuffix string) {
	c.Disconnect()
	ctx := context.TODO()
	conn, err := pgx.Connect(ctx, adminDSNFromEnv())
	if err != nil {
		t.Fatal(err)
		return
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", os.Getenv("DB_NAME")+dbSuffix))
	if err != nil {
		t.Log(err)
	}
}

func adminDSNFromEnv() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_SUPERUSER"),
		os.Getenv("DB_PASSWORD"),
		"postgres",
		os.Getenv("DB_PORT"),
	)
}

func userParamsFromEnv(suffix string) live.ConnectionParams {
	port, _ := strconv.Atoi(os.Getenv("DB_PORT"))
	if port == 0 {
		port = 5432
	}
	return live.ConnectionParams{
		Host:     os.Getenv("DB_HOST"),
		Port:     uint(port),
		Name:     os.Getenv("DB_NAME") + suffix,
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
	}
}
