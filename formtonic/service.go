package formtonic

import (
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/G-Node/formtonic/formtonic/db"
	"github.com/G-Node/formtonic/formtonic/form"
	"github.com/G-Node/formtonic/formtonic/web"
	"github.com/G-Node/formtonic/formtonic/worker"
)

// FormFactory builds a fresh form for every request.  Forms hold per
// request state (applied values, clicked buttons) and must not be shared.
type FormFactory func() (*form.Form, error)

// Service represents a full service which contains a web server, a database
// for submissions and sessions, and a worker that runs the submission
// action.
type Service struct {
	web     *web.Server
	db      *db.Connection
	worker  *worker.Worker
	log     *log.Logger
	newForm FormFactory
	Config  *Config
}

// NewService creates a new Service with a given form and submission action.
func NewService(newForm FormFactory, action worker.SubmissionAction, config Config) (*Service, error) {
	srv := new(Service)
	config.setDefaults()
	srv.Config = &config
	srv.log = log.New(os.Stderr, "", log.LstdFlags)

	srv.log.Print("Initialising database")
	conn, err := db.New(config.DBPath)
	if err != nil {
		return nil, err
	}
	srv.db = conn

	srv.worker = worker.New(srv.db, config.QueueLength)

	srv.web = web.New(config.Port)
	srv.setupWebRoutes()

	srv.SetForm(newForm)
	srv.SetSubmissionAction(action)
	srv.SetLogger(srv.log)
	return srv, nil
}

// SetLogger replaces the logger of the service, its worker and web server.
func (srv *Service) SetLogger(logger *log.Logger) {
	srv.log = logger
	srv.worker.SetLogger(logger)
	srv.web.SetLogger(logger)
}

// Start the service (worker and web server).
func (srv *Service) Start() error {
	if srv.newForm == nil {
		return fmt.Errorf("nil form factory is invalid")
	}
	if srv.worker.Action == nil {
		return fmt.Errorf("nil submission action is invalid")
	}
	// fail early on broken form definitions
	if _, err := srv.newForm(); err != nil {
		return fmt.Errorf("building form: %w", err)
	}
	if n, err := srv.db.PurgeSessions(srv.Config.sessionMaxAge()); err != nil {
		srv.log.Printf("Failed to purge expired sessions: %v", err)
	} else if n > 0 {
		srv.log.Printf("Purged %d expired sessions", n)
	}
	srv.log.Print("Starting worker")
	srv.worker.Start()
	srv.log.Print("Starting web service")
	srv.web.Start()
	srv.log.Print("Web server started")
	return nil
}

// WaitForInterrupt blocks until the service receives an interrupt signal (SIGINT).
func (srv *Service) WaitForInterrupt() {
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt)
	<-sigchan
}

// Stop the service by gracefully shutting down the web service, stopping the
// worker, and closing the database connection, in that order.
func (srv *Service) Stop() {
	srv.log.Print("Stopping web service")
	srv.web.Stop()
	srv.log.Print("Stopping worker queue")
	srv.worker.Stop()
	srv.log.Print("Closing database connection")
	if err := srv.db.Close(); err != nil {
		srv.log.Printf("Error closing database: %v", err)
	}
	srv.log.Print("Service stopped")
}

// SetForm can be used to set or override the form factory for the service.
func (srv *Service) SetForm(newForm FormFactory) {
	srv.newForm = newForm
}

// SetSubmissionAction can be used to set or override the submission action
// for the service.
func (srv *Service) SetSubmissionAction(f worker.SubmissionAction) {
	srv.worker.Action = f
}
