package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/bkaya/pricelist-api/browse"
	"github.com/bkaya/pricelist-api/listing"
	"github.com/bkaya/pricelist-api/logger"
	"github.com/bkaya/pricelist-api/models"
	"github.com/bkaya/pricelist-api/nav"
)

// Server is a structure responsible for handling all http requests.
type Server struct {
	l        *logger.Logger
	gate     Gate
	sessions *browse.Registry
}

// Gate is the slice of auth.Gate the handlers need.
type Gate interface {
	CheckSession() bool
	Authenticate(submitted string) (string, bool)
	LogOut() error
}

func NewServer(l *logger.Logger, gate Gate, sessions *browse.Registry) *Server {
	return &Server{l: l, gate: gate, sessions: sessions}
}

// Handler builds the route table. Regex captures carry the browse
// session id into the handler.
func (s *Server) Handler() http.Handler {
	handlers := []struct {
		regex   *regexp.Regexp
		methods []string
		handle  func(w http.ResponseWriter, r *http.Request, paths []string)
	}{
		{regexp.MustCompile(`^/api/login$`), []string{"POST"}, s.Login},
		{regexp.MustCompile(`^/api/logout$`), []string{"POST"}, s.Logout},
		{regexp.MustCompile(`^/api/session$`), []string{"GET"}, s.Session},
		{regexp.MustCompile(`^/api/browse$`), []string{"POST"}, s.CreateBrowse},
		{regexp.MustCompile(`^/api/browse/([^/]+)/files$`), []string{"GET"}, s.ListFiles},
		{regexp.MustCompile(`^/api/browse/([^/]+)/open$`), []string{"POST"}, s.OpenFolder},
		{regexp.MustCompile(`^/api/browse/([^/]+)/crumb$`), []string{"POST"}, s.JumpCrumb},
		{regexp.MustCompile(`^/api/browse/([^/]+)/refresh$`), []string{"POST"}, s.Refresh},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, handler := range handlers {
			match := handler.regex.FindStringSubmatch(r.URL.Path)
			if match == nil {
				continue
			}
			for _, allowed := range handler.methods {
				if r.Method == allowed {
					handler.handle(w, r, match[1:])
					return
				}
			}
		}
		s.l.SWarn("router", "Cannot handle request: %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	})
}

// InitServer starts listening on the given port.
func InitServer(port int, s *Server) error {
	s.l.Log("Waiting for connection on port: :%d...", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s.Handler())
}

//
//
//

// Handler function for POST /api/login.
// A wrong password is a rejected attempt, not a failure.
func (s *Server) Login(w http.ResponseWriter, r *http.Request, paths []string) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResponse(w, http.StatusBadRequest, "malformed request")
		return
	}

	token, ok := s.gate.Authenticate(req.Password)
	if !ok {
		s.l.LogV("login attempt rejected")
		errResponse(w, http.StatusUnauthorized, "invalid password")
		return
	}

	s.l.Log("Gate opened")
	writeResponse(w, s.l, LoginResponse{Token: token}, http.StatusOK)
}

// Handler function for POST /api/logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request, paths []string) {
	if err := s.gate.LogOut(); err != nil {
		s.l.SErr("logout", err.Error())
		serverError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Handler function for GET /api/session.
// The UI calls it on startup to decide whether to show the gate.
func (s *Server) Session(w http.ResponseWriter, r *http.Request, paths []string) {
	writeResponse(w, s.l, SessionResponse{Authenticated: s.gate.CheckSession()}, http.StatusOK)
}

// Handler function for POST /api/browse.
// Opens a fresh session at the root folder and lists it.
func (s *Server) CreateBrowse(w http.ResponseWriter, r *http.Request, paths []string) {
	if !s.authorize(w) {
		return
	}

	id, ctl := s.sessions.Create()
	if err := ctl.Root(r.Context()); err != nil {
		s.listingError(w, "browse", err)
		return
	}

	s.l.LogV("browse session %s opened", id)
	writeResponse(w, s.l, BrowseResponse{Session: id}, http.StatusOK)
}

// Handler function for GET /api/browse/{sid}/files.
// Pure projection of the already fetched folder; search and sort
// changes never refetch.
func (s *Server) ListFiles(w http.ResponseWriter, r *http.Request, paths []string) {
	ctl := s.session(w, paths)
	if ctl == nil {
		return
	}

	q := r.URL.Query()
	entries, crumbs := ctl.Project(q.Get("search"), listing.ParseSortKey(q.Get("sort")))

	files := make([]ListedFile, 0, len(entries))
	for _, e := range entries {
		files = append(files, listedFile(e))
	}
	writeResponse(w, s.l, ListFilesResponse{Files: files, Breadcrumbs: crumbs}, http.StatusOK)
}

// Handler function for POST /api/browse/{sid}/open.
// Descends into a child folder and fetches its listing.
func (s *Server) OpenFolder(w http.ResponseWriter, r *http.Request, paths []string) {
	ctl := s.session(w, paths)
	if ctl == nil {
		return
	}

	var req OpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResponse(w, http.StatusBadRequest, "malformed request")
		return
	}

	err := ctl.Open(r.Context(), req.Id, req.Name)
	if errors.Is(err, nav.ErrEmptyFolderId) {
		errResponse(w, http.StatusBadRequest, "empty folder id")
		return
	}
	s.finishNavigation(w, "open", err)
}

// Handler function for POST /api/browse/{sid}/crumb.
// Jumps back in the breadcrumb trail (-1 means root).
func (s *Server) JumpCrumb(w http.ResponseWriter, r *http.Request, paths []string) {
	ctl := s.session(w, paths)
	if ctl == nil {
		return
	}

	var req CrumbRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResponse(w, http.StatusBadRequest, "malformed request")
		return
	}

	err := ctl.JumpTo(r.Context(), req.Index)
	if errors.Is(err, browse.ErrBadCrumb) {
		errResponse(w, http.StatusBadRequest, "breadcrumb index out of range")
		return
	}
	s.finishNavigation(w, "crumb", err)
}

// Handler function for POST /api/browse/{sid}/refresh.
// Backs the UI's "try again" action after a listing failure.
func (s *Server) Refresh(w http.ResponseWriter, r *http.Request, paths []string) {
	ctl := s.session(w, paths)
	if ctl == nil {
		return
	}
	s.finishNavigation(w, "refresh", ctl.Refresh(r.Context()))
}

//
//
//

func (s *Server) authorize(w http.ResponseWriter) bool {
	if !s.gate.CheckSession() {
		errResponse(w, http.StatusUnauthorized, "not authenticated")
		return false
	}
	return true
}

// session authorizes the request and resolves the browse session
// from the first path capture.
func (s *Server) session(w http.ResponseWriter, paths []string) *browse.Controller {
	if !s.authorize(w) {
		return nil
	}
	ctl, ok := s.sessions.Get(paths[0])
	if !ok {
		errResponse(w, http.StatusNotFound, "unknown session")
		return nil
	}
	return ctl
}

// finishNavigation maps a navigation outcome to a response. A
// superseded fetch is not a failure: a newer navigation already
// owns the listing, so its discarded result ends the request
// quietly.
func (s *Server) finishNavigation(w http.ResponseWriter, tag string, err error) {
	if err == nil || errors.Is(err, browse.ErrSuperseded) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.listingError(w, tag, err)
}

func (s *Server) listingError(w http.ResponseWriter, tag string, err error) {
	s.l.SErr(tag, "listing failed: %s", err.Error())
	errResponse(w, http.StatusBadGateway, "listing failed")
}

func listedFile(e models.FileEntry) ListedFile {
	modified := ""
	if !e.Modified.IsZero() {
		modified = e.Modified.Format(time.RFC3339)
	}
	return ListedFile{
		Id:          e.Id,
		Name:        e.Name,
		Kind:        string(e.Kind),
		Size:        e.Size,
		Modified:    modified,
		ViewUrl:     e.ViewURL,
		DownloadUrl: e.DownloadURL,
		IsFolder:    e.IsFolder,
	}
}

func writeResponse(w http.ResponseWriter, l *logger.Logger, response interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		l.SErr("respond", "JSON encoding error: %s", err)
	}
}

func serverError(w http.ResponseWriter) {
	errResponse(w, http.StatusInternalServerError, "Server error")
}

func errResponse(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrResponse{Error: msg})
}
