package controller

import (
	"net/http"

	"github.com/taeyeong15/marketing-backend/internal/repository"
)

// CommonCodeController serves the enumeration lookup directly off the
// repository; the table is read-only reference data with no business rules.
type CommonCodeController struct {
	Repo repository.CommonCodeRepositoryInterface
}

func (c *CommonCodeController) Lookup(w http.ResponseWriter, r *http.Request) {
	codes, err := c.Repo.Lookup(
		r.URL.Query().Get("category"),
		r.URL.Query().Get("sub_category"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, codes)
}
