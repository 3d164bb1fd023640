package handler

import (
	"net/http"

	"github.com/communitas/admin-gateway/internal/domain"
)

// CommunitiesResponse wraps the resolved community list.
type CommunitiesResponse struct {
	Data []domain.Community `json:"data"`
}

// GetCommunities handles GET /communities?country=IN&state=GJ&city=Surat.
// All three parameters are repeatable. ?all=true enables the unscoped
// last-resort rung of the fallback ladder.
//
// This endpoint never fails on upstream trouble: the resolver degrades to an
// empty list, and the dashboard shows an empty picker rather than an error.
func (s *Server) GetCommunities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := domain.LocationSelection{
		Countries: q["country"],
		States:    q["state"],
		Cities:    q["city"],
	}
	fetchAll := q.Get("all") == "true"

	communities := s.communities.Resolve(r.Context(), sel, fetchAll)
	writeJSON(w, http.StatusOK, CommunitiesResponse{Data: communities})
}
