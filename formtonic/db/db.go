package db

import (
	_ "github.com/mattn/go-sqlite3"
	"xorm.io/xorm"
	"xorm.io/xorm/log"
	"xorm.io/xorm/names"
)

const driver = "sqlite3"

// Connection to the submission and session store.
type Connection struct {
	engine *xorm.Engine
	path   string
}

// New opens (or creates) the sqlite store at path and makes sure the
// submission and session tables exist.  Use ":memory:" for a throwaway store.
func New(path string) (*Connection, error) {
	engine, err := xorm.NewEngine(driver, path)
	if err != nil {
		return nil, err
	}
	engine.Logger().SetLevel(log.LOG_WARNING)
	engine.SetMapper(names.GonicMapper{})
	// the worker and the request handlers write concurrently; sqlite
	// serialises writers anyway
	engine.SetMaxOpenConns(1)

	if err := engine.Sync2(new(Submission), new(Session)); err != nil {
		engine.Close()
		return nil, err
	}
	return &Connection{engine: engine, path: path}, nil
}

// Path of the database file.
func (conn *Connection) Path() string {
	return conn.path
}

// SetLogLevel changes the verbosity of the SQL logger.
func (conn *Connection) SetLogLevel(level log.LogLevel) {
	conn.engine.Logger().SetLevel(level)
}

// Close the database.
func (conn *Connection) Close() error {
	return conn.engine.Close()
}
