package db

import (
	"fmt"
	"time"
)

// Submission is a valid form submission waiting for, or processed by, the
// submission action.
type Submission struct {
	// Submission ID (auto)
	ID int64 `xorm:"pk autoincr"`
	// ID of the session that submitted the form
	SessionID string `xorm:"index"`
	// Short name for listings
	Label string
	// Field values as CSV cells, keyed by field key
	ValueMap map[string]string
	// Output of the submission action
	Messages []string
	// Error returned by the submission action
	Error string
	// Time when the submission was queued
	SubmitTime time.Time
	// Time when processing finished (0 if ongoing)
	EndTime time.Time
}

// InsertSubmission inserts a new Submission into the database.  Upon
// successful return, the Submission has a new unique ID.
func (conn *Connection) InsertSubmission(sub *Submission) error {
	_, err := conn.engine.Insert(sub) // ID is assigned on insertion
	return err
}

// UpdateSubmission updates an existing Submission entry in the database.
func (conn *Connection) UpdateSubmission(sub *Submission) error {
	_, err := conn.engine.ID(sub.ID).AllCols().Update(sub)
	return err
}

// GetSessionSubmissions retrieves all the Submissions made in a session.
func (conn *Connection) GetSessionSubmissions(sessionID string) ([]Submission, error) {
	subs := make([]Submission, 0)
	condition := Submission{SessionID: sessionID}
	if err := conn.engine.Asc("id").Find(&subs, condition); err != nil {
		return nil, err
	}
	return subs, nil
}

// IsFinished returns true if the Submission has been processed (has an
// EndTime).
func (sub *Submission) IsFinished() bool {
	return !sub.EndTime.IsZero()
}

// AllSubmissions returns all Submission entries in the database.
func (conn *Connection) AllSubmissions() ([]Submission, error) {
	subs := make([]Submission, 0)
	if err := conn.engine.Asc("id").Find(&subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// GetSubmission retrieves a Submission from the database given its ID.
func (conn *Connection) GetSubmission(id int64) (*Submission, error) {
	sub := new(Submission)
	if has, err := conn.engine.ID(id).Get(sub); err != nil {
		return nil, err
	} else if !has {
		return nil, fmt.Errorf("submission %d not found", id)
	}
	return sub, nil
}
