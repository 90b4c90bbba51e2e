package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kasuboski/marquee/pkg/pagination"
)

// ParsePaginationParams reads page and limit from the query. Values that are
// not positive integers fall back to page 1 and defaultLimit.
func ParsePaginationParams(r *http.Request, defaultLimit int) pagination.Params {
	qp := r.URL.Query()
	params := pagination.Coerce(qp.Get("page"), qp.Get("limit"))

	if n, err := strconv.Atoi(qp.Get("limit")); (err != nil || n < 1) && defaultLimit > 0 {
		params.PageSize = defaultLimit
	}

	return params
}

func parsePage(r *http.Request) int {
	return pagination.Coerce(r.URL.Query().Get("page"), "").Page
}

// pathID reads a non-negative integer path variable.
func pathID(r *http.Request, name string) (int, bool) {
	v, err := strconv.ParseUint(mux.Vars(r)[name], 10, 31)
	if err != nil {
		return 0, false
	}
	return int(v), true
}
