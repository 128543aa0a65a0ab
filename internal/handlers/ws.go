package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// sessionNotices upgrades to a websocket and streams the session's save
// notices until the client disconnects.
func (r *Router) sessionNotices(w http.ResponseWriter, req *http.Request) {
	sid := mux.Vars(req)["sid"]
	if _, ok := r.sessions.Get(sid); !ok {
		respondError(w, http.StatusNotFound, "Session not found or expired")
		return
	}
	r.hub.Serve(w, req, sid)
}
