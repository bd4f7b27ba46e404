package formtonic

import (
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/G-Node/formtonic/formtonic/db"
	"github.com/G-Node/formtonic/formtonic/form"
	"golang.org/x/net/html"
)

func timesheetForm() (*form.Form, error) {
	hours, err := form.NewPositiveFloatField("hours", form.WithLabel("Hours"))
	if err != nil {
		return nil, err
	}
	day, err := form.NewDateField("day", form.WithRequired(false))
	if err != nil {
		return nil, err
	}
	billable, err := form.NewTrueFalseField("billable")
	if err != nil {
		return nil, err
	}
	return form.New(hours, day, billable, form.NewButton("Save", form.WithButtonType("submit"))), nil
}

func newTestService(t *testing.T, action func(map[string]string) ([]string, error)) *Service {
	tmpfile, err := ioutil.TempFile("", "testdb")
	if err != nil {
		t.Fatalf("Failed to create temporary database file: %s", err.Error())
	}
	tmpfile.Close()
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	srv, err := NewService(timesheetForm, action, Config{CookieName: "test-cookie", DBPath: tmpfile.Name()})
	if err != nil {
		t.Fatalf("failed to initialise service: %s", err.Error())
	}
	srv.SetLogger(log.New(ioutil.Discard, "", 0))
	t.Cleanup(func() { srv.db.Close() })
	return srv
}

// openSession loads the form and returns the session cookie it set.
func openSession(t *testing.T, srv *Service) *db.Session {
	rr := httptest.NewRecorder()
	srv.web.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if status := rr.Code; status != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v expected %v", status, http.StatusOK)
	}
	if _, err := html.Parse(rr.Body); err != nil {
		t.Fatalf("Bad HTML when rendering form: %v", err.Error())
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == "test-cookie" {
			sess, err := srv.db.GetSession(c.Value)
			if err != nil {
				t.Fatalf("Session from cookie not stored: %s", err.Error())
			}
			return sess
		}
	}
	t.Fatal("Form page did not set a session cookie")
	return nil
}

func post(srv *Service, sess *db.Session, values url.Values) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sess != nil {
		req.Header.Add("Cookie", fmt.Sprintf("test-cookie=%s", sess.ID))
	}
	srv.web.Handler.ServeHTTP(rr, req)
	return rr
}

func get(srv *Service, sess *db.Session, route string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", route, nil)
	if sess != nil {
		req.Header.Add("Cookie", fmt.Sprintf("test-cookie=%s", sess.ID))
	}
	srv.web.Handler.ServeHTTP(rr, req)
	return rr
}

func TestFormPageCarriesToken(t *testing.T) {
	srv := newTestService(t, echoAction)
	sess := openSession(t, srv)

	rr := get(srv, sess, "/")
	body := rr.Body.String()
	if !strings.Contains(body, fmt.Sprintf(`name="_csrf" value="%s"`, sess.CSRFToken)) {
		t.Fatalf("Form page does not carry the session token: %s", body)
	}
	if !strings.Contains(body, `<form method="POST">`) || !strings.Contains(body, `name="hours"`) {
		t.Fatalf("Form page does not contain the form: %s", body)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatal("Existing session was replaced")
	}
}

func TestPostRejectsBadSession(t *testing.T) {
	srv := newTestService(t, echoAction)
	values := url.Values{"hours": {"1"}, "save": {"save"}}

	if rr := post(srv, nil, values); rr.Code != http.StatusForbidden {
		t.Errorf("handler returned wrong status code without session: got %v expected %v", rr.Code, http.StatusForbidden)
	}

	sess := openSession(t, srv)
	values.Set("_csrf", "not-the-token")
	if rr := post(srv, sess, values); rr.Code != http.StatusForbidden {
		t.Errorf("handler returned wrong status code with bad token: got %v expected %v", rr.Code, http.StatusForbidden)
	}
}

func TestPostWithoutButton(t *testing.T) {
	srv := newTestService(t, echoAction)
	sess := openSession(t, srv)
	rr := post(srv, sess, url.Values{"_csrf": {sess.CSRFToken}, "hours": {"1"}})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Fatalf("Post without this form's button should redirect to the form: %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestPostInvalidForm(t *testing.T) {
	srv := newTestService(t, echoAction)
	sess := openSession(t, srv)

	rr := post(srv, sess, url.Values{"_csrf": {sess.CSRFToken}, "hours": {""}, "day": {""}, "save": {"save"}})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("handler returned wrong status code: got %v expected %v", rr.Code, http.StatusUnprocessableEntity)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `<span class="problem">Required</span>`) {
		t.Fatalf("Invalid form does not show the problem: %s", body)
	}

	rr = post(srv, sess, url.Values{"_csrf": {sess.CSRFToken}, "hours": {"lots"}, "day": {""}, "save": {"save"}})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Unparsable number should fail the request: got %v expected %v", rr.Code, http.StatusBadRequest)
	}

	if subs, _ := srv.db.AllSubmissions(); len(subs) != 0 {
		t.Fatalf("Invalid submissions were stored: %+v", subs)
	}
}

func TestPostValidForm(t *testing.T) {
	srv := newTestService(t, echoAction)
	srv.worker.Start()
	defer srv.worker.Stop()
	sess := openSession(t, srv)

	rr := post(srv, sess, url.Values{"_csrf": {sess.CSRFToken}, "hours": {"7.5"}, "day": {"2021-05-03"}, "save": {"save"}})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/log" {
		t.Fatalf("Valid post should redirect to the log: %d %q", rr.Code, rr.Header().Get("Location"))
	}

	subs, err := srv.db.GetSessionSubmissions(sess.ID)
	if err != nil || len(subs) != 1 {
		t.Fatalf("Expected one stored submission (%v): %+v", err, subs)
	}
	sub := subs[0]
	expected := map[string]string{"hours": "7.5", "day": "2021-05-03", "billable": "false"}
	for k, v := range expected {
		if sub.ValueMap[k] != v {
			t.Fatalf("Stored value for %s is %q, expected %q", k, sub.ValueMap[k], v)
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		stored, err := srv.db.GetSubmission(sub.ID)
		if err == nil && stored.IsFinished() {
			if len(stored.Messages) != 3 || stored.Messages[0] != "billable:false" {
				t.Fatalf("Unexpected action output: %+v", stored.Messages)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Submission was not processed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if rr := get(srv, sess, "/log"); rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), fmt.Sprintf("/log/%d", sub.ID)) {
		t.Fatalf("Log does not list the submission: %d %s", rr.Code, rr.Body.String())
	}
	rr = get(srv, sess, fmt.Sprintf("/log/%d", sub.ID))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Finished") || !strings.Contains(rr.Body.String(), "7.5") {
		t.Fatalf("Submission page incomplete: %d %s", rr.Code, rr.Body.String())
	}
}

func TestLogRoutes(t *testing.T) {
	srv := newTestService(t, echoAction)
	sess := openSession(t, srv)
	label := "TestSubmission"

	checkLogCount := func(route string, sess *db.Session, nexpected int) {
		rr := get(srv, sess, route)
		if status := rr.Code; status != http.StatusOK {
			t.Errorf("handler returned wrong status code: got %v expected %v", status, http.StatusOK)
		}
		if n := strings.Count(rr.Body.String(), label); n != nexpected {
			t.Errorf("Submission log returned %d, expected %d", n, nexpected)
		}
	}

	checkLogCount("/log", sess, 0)
	srv.db.InsertSubmission(&db.Submission{SessionID: sess.ID, Label: label, SubmitTime: time.Now()})
	checkLogCount("/log", sess, 1)
	srv.db.InsertSubmission(&db.Submission{SessionID: sess.ID, Label: label, SubmitTime: time.Now()})
	checkLogCount("/log", sess, 2)
	other := &db.Submission{SessionID: "someone-else", Label: label, SubmitTime: time.Now()}
	srv.db.InsertSubmission(other)
	checkLogCount("/log", sess, 2)
	checkLogCount("/log", nil, 0)

	if rr := get(srv, sess, fmt.Sprintf("/log/%d", other.ID)); rr.Code != http.StatusNotFound {
		t.Errorf("Other session's submission should not be shown: got %v", rr.Code)
	}
	if rr := get(srv, sess, "/log/1337"); rr.Code != http.StatusNotFound {
		t.Errorf("Missing submission should not be found: got %v", rr.Code)
	}
}
