package web

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/G-Node/formtonic/templates"
	"github.com/gorilla/mux"
)

// Server implements the web server for a formtonic service.
type Server struct {
	*http.Server
	Router *mux.Router
	log    *log.Logger
}

// New returns a web Server with an initialised mux.Router and http.Server
// listening on the given port.
func New(port uint16) *Server {
	srv := new(Server)
	srv.Router = new(mux.Router)
	srv.log = log.New(os.Stderr, "", log.LstdFlags)
	httpsrv := new(http.Server)
	httpsrv.Handler = srv.Router

	httpsrv.Addr = fmt.Sprintf(":%d", port)
	httpsrv.WriteTimeout = time.Second * 15
	httpsrv.ReadTimeout = time.Second * 15
	httpsrv.IdleTimeout = time.Second * 60
	srv.Server = httpsrv
	return srv
}

// SetLogger replaces the server's logger.
func (ws *Server) SetLogger(logger *log.Logger) {
	ws.log = logger
}

// ErrorResponse logs an error and renders an error page with the given message,
// returning the given status code to the user.
func (ws *Server) ErrorResponse(w http.ResponseWriter, status int, message string) {
	ws.log.Printf("[%d] %s", status, message)
	tmpl := template.New("layout")
	tmpl, err := tmpl.Parse(templates.Layout)
	if err == nil {
		tmpl, err = tmpl.Parse(templates.Fail)
	}
	w.WriteHeader(status)
	if err != nil {
		w.Write([]byte(template.HTMLEscapeString(message)))
		return
	}
	errinfo := map[string]interface{}{
		"title":      http.StatusText(status),
		"StatusCode": status,
		"StatusText": http.StatusText(status),
		"Message":    message,
	}
	if err := tmpl.ExecuteTemplate(w, "layout", errinfo); err != nil {
		ws.log.Printf("Error rendering fail page: %v", err)
	}
}

// Start starts the embedded web server's ListenAndServe method in a goroutine
// and returns.  This method does not block.
func (ws *Server) Start() {
	go func() {
		if err := ws.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ws.log.Println(err)
		}
	}()
}

// Stop gracefully stops the web service.
func (ws *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	// Gracefully shut down, waiting for the timeout deadline for connections to close.
	if err := ws.Shutdown(ctx); err != nil {
		ws.log.Printf("Error stopping web server: %v", err)
	}
}
