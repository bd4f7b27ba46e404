// Common routes and pages
package formtonic

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"

	"github.com/G-Node/formtonic/formtonic/db"
	"github.com/G-Node/formtonic/formtonic/form"
	"github.com/G-Node/formtonic/templates"
	"github.com/gorilla/mux"
)

const timefmt = "15:04:05 Mon Jan 2 2006"

// setupWebRoutes sets up the routes shared by all instances of the service.
//
// Form (render and submit) and submission log pages
func (srv *Service) setupWebRoutes() {
	router := srv.web.Router
	router.StrictSlash(true)
	router.HandleFunc("/", srv.renderForm).Methods("GET")
	router.HandleFunc("/", srv.processForm).Methods("POST")
	router.HandleFunc("/log", srv.renderLog).Methods("GET")
	router.HandleFunc("/log/{id:[0-9]+}", srv.showSubmission).Methods("GET")
	router.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", http.FileServer(http.Dir("./assets"))))
}

// currentSession returns the session named by the request cookie, or nil if
// there is none or it expired.
func (srv *Service) currentSession(r *http.Request) *db.Session {
	cookie, err := r.Cookie(srv.Config.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	sess, err := srv.db.GetSession(cookie.Value)
	if err != nil || sess.Expired(srv.Config.sessionMaxAge()) {
		return nil
	}
	return sess
}

// session returns the current session, starting a new one if needed.
func (srv *Service) session(w http.ResponseWriter, r *http.Request) (*db.Session, error) {
	if sess := srv.currentSession(r); sess != nil {
		return sess, nil
	}
	sess := db.NewSession()
	if err := srv.db.InsertSession(sess); err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     srv.Config.CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

func parsePage(content string) (*template.Template, error) {
	tmpl, err := template.New("layout").Parse(templates.Layout)
	if err != nil {
		return nil, err
	}
	return tmpl.Parse(content)
}

// renderPage executes the layout with the given content template and writes
// it with status.  Nothing is written if rendering fails.
func (srv *Service) renderPage(w http.ResponseWriter, status int, content string, data map[string]interface{}) {
	tmpl, err := parsePage(content)
	if err != nil {
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Error loading page template")
		return
	}
	data["title"] = srv.Config.Title
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "layout", data); err != nil {
		srv.log.Printf("Failed to render page: %v", err)
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Error rendering page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (srv *Service) renderFormPage(w http.ResponseWriter, status int, f *form.Form, sess *db.Session, problems string) {
	wrapped, err := form.NewWrapper(f, sess.CSRFToken).AsHTML()
	if err != nil {
		srv.log.Printf("Failed to wrap form: %v", err)
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Error rendering form")
		return
	}
	data := make(map[string]interface{})
	data["form"] = wrapped
	data["problems"] = problems
	srv.renderPage(w, status, templates.FormPage, data)
}

func (srv *Service) renderForm(w http.ResponseWriter, r *http.Request) {
	sess, err := srv.session(w, r)
	if err != nil {
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Error starting session")
		return
	}
	f, err := srv.newForm()
	if err != nil {
		srv.web.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	srv.renderFormPage(w, http.StatusOK, f, sess, "")
}

func (srv *Service) processForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		srv.web.ErrorResponse(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}
	sess := srv.currentSession(r)
	if sess == nil {
		srv.web.ErrorResponse(w, http.StatusForbidden, "Your session expired. Please reload the form.")
		return
	}
	if r.PostForm.Get("_csrf") != sess.CSRFToken {
		srv.web.ErrorResponse(w, http.StatusForbidden, "Invalid form token. Please reload the form.")
		return
	}

	f, err := srv.newForm()
	if err != nil {
		srv.web.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !f.AButtonWasClicked(r.PostForm) {
		// posted by something other than this form's buttons
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := f.SetFormData(r.PostForm); err != nil {
		srv.web.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	valid, err := f.IsValid()
	if err != nil {
		srv.web.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if !valid {
		problems, _ := f.ExplainWhyNotValid()
		srv.renderFormPage(w, http.StatusUnprocessableEntity, f, sess, problems)
		return
	}

	values := make(map[string]string)
	for _, field := range f.Fields() {
		cell, err := field.AsCSV()
		if err != nil {
			srv.web.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		values[field.Key()] = cell
	}
	sub := &db.Submission{SessionID: sess.ID, ValueMap: values}
	if err := srv.worker.Enqueue(sub); err != nil {
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Error storing submission")
		return
	}
	http.Redirect(w, r, "/log", http.StatusSeeOther)
}

func (srv *Service) renderLog(w http.ResponseWriter, r *http.Request) {
	subs := make([]db.Submission, 0)
	if sess := srv.currentSession(r); sess != nil {
		var err error
		subs, err = srv.db.GetSessionSubmissions(sess.ID)
		if err != nil {
			srv.web.ErrorResponse(w, http.StatusInternalServerError, "Error reading submissions from DB")
			return
		}
	}
	data := make(map[string]interface{})
	data["submissions"] = subs
	srv.renderPage(w, http.StatusOK, templates.LogView, data)
}

func (srv *Service) showSubmission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subid, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		srv.web.ErrorResponse(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	sess := srv.currentSession(r)
	sub, err := srv.db.GetSubmission(subid)
	if err != nil || sess == nil || sub.SessionID != sess.ID {
		srv.web.ErrorResponse(w, http.StatusNotFound, "No such submission")
		return
	}

	data := make(map[string]interface{})
	data["submission"] = sub
	data["submit_time"] = sub.SubmitTime.Format(timefmt)
	if sub.IsFinished() {
		data["end_time"] = sub.EndTime.Format(timefmt)
	}
	srv.renderPage(w, http.StatusOK, templates.SubmissionView, data)
}
