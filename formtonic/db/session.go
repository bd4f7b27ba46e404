package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is an anonymous browser session.  It carries the CSRF token that
// every form posted in the session must echo back.
type Session struct {
	// Session ID (stored in the cookie)
	ID string `xorm:"pk"`
	// Token expected in the _csrf field of posted forms
	CSRFToken string
	// Time when the session was created (for expiration)
	Created time.Time
}

// NewSession creates a new session with a new unique ID and CSRF token.
func NewSession() *Session {
	sess := new(Session)
	sess.ID = uuid.New().String()
	sess.CSRFToken = uuid.New().String()
	sess.Created = time.Now()
	return sess
}

// Expired reports whether the session is older than maxAge.  A zero maxAge
// never expires.
func (sess *Session) Expired(maxAge time.Duration) bool {
	return maxAge > 0 && time.Since(sess.Created) > maxAge
}

// InsertSession inserts a new Session into the database.
func (conn *Connection) InsertSession(sess *Session) error {
	_, err := conn.engine.Insert(sess)
	return err
}

// GetSession retrieves a session from the database given its ID.
func (conn *Connection) GetSession(id string) (*Session, error) {
	sess := new(Session)
	if has, err := conn.engine.ID(id).Get(sess); err != nil {
		return nil, err
	} else if !has {
		return nil, fmt.Errorf("session not found")
	}
	return sess, nil
}

// DeleteSession removes a session from the database.
func (conn *Connection) DeleteSession(id string) error {
	_, err := conn.engine.ID(id).Delete(new(Session))
	return err
}

// PurgeSessions removes sessions created more than maxAge ago and returns how
// many were removed.  A zero maxAge keeps all sessions.
func (conn *Connection) PurgeSessions(maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	sessions := make([]Session, 0)
	if err := conn.engine.Find(&sessions); err != nil {
		return 0, err
	}
	var purged int64
	for idx := range sessions {
		if !sessions[idx].Expired(maxAge) {
			continue
		}
		if err := conn.DeleteSession(sessions[idx].ID); err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}
