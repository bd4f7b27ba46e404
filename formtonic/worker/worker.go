package worker

import (
	"log"
	"os"
	"sort"
	"time"

	"github.com/G-Node/formtonic/formtonic/db"
)

// SubmissionAction processes the values of a valid form submission.  The
// returned messages are stored with the submission and shown to the user.
type SubmissionAction func(values map[string]string) ([]string, error)

// Worker with queue for running submission actions asynchronously.
type Worker struct {
	queue   chan *db.Submission
	stop    chan bool
	done    chan bool
	Action  SubmissionAction
	db      *db.Connection
	log     *log.Logger
	running bool
}

// New returns a worker storing submissions in dbconn, with room for
// queueLength submissions waiting to be processed.
func New(dbconn *db.Connection, queueLength int) *Worker {
	w := new(Worker)
	if queueLength <= 0 {
		queueLength = 100
	}
	w.queue = make(chan *db.Submission, queueLength)
	w.stop = make(chan bool)
	w.done = make(chan bool)
	w.db = dbconn
	w.log = log.New(os.Stderr, "", log.LstdFlags)
	return w
}

// SetLogger replaces the worker's logger.
func (w *Worker) SetLogger(logger *log.Logger) {
	w.log = logger
}

// Enqueue stores the submission in the database and adds it to the queue.
func (w *Worker) Enqueue(sub *db.Submission) error {
	sub.SubmitTime = time.Now()
	if sub.Label == "" {
		sub.Label = label(sub.ValueMap)
	}
	if err := w.db.InsertSubmission(sub); err != nil {
		w.log.Printf("Error inserting submission %+v into db: %v", sub, err)
		return err
	}
	w.queue <- sub
	return nil
}

// label picks the first non-empty value in key order.
func label(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if values[k] != "" {
			return values[k]
		}
	}
	return "submission"
}

// Stop the worker after the submission currently being processed, if any.
// Submissions still in the queue stay unfinished in the database.
func (w *Worker) Stop() {
	if !w.running {
		return
	}
	w.stop <- true
	<-w.done
	w.running = false
}

func (w *Worker) run(sub *db.Submission) {
	defer func() {
		// update entry in db when done
		if err := w.db.UpdateSubmission(sub); err != nil {
			w.log.Printf("Error updating submission [S%d]: %v", sub.ID, err)
		}
	}()
	w.log.Printf("Processing submission [S%d] %q", sub.ID, sub.Label)
	msgs, err := w.Action(sub.ValueMap)
	sub.Messages = msgs
	sub.EndTime = time.Now()
	if err == nil {
		w.log.Printf("Submission [S%d] %s finished", sub.ID, sub.Label)
	} else {
		w.log.Printf("Submission [S%d] %s failed: %s", sub.ID, sub.Label, err)
		sub.Error = err.Error()
	}
}

// Start processing queued submissions in a goroutine.
func (w *Worker) Start() {
	if w.running {
		return
	}
	w.running = true
	w.done = make(chan bool)
	go func() {
		defer close(w.done)
		for {
			select {
			case sub := <-w.queue:
				w.run(sub)
			case <-w.stop:
				return
			}
		}
	}()
	w.log.Print("Worker started")
}
