package handler

import (
	"meetbook-api/common"
	"net/http"
)

// ErrorHandlingMiddleware adapts an AppError-returning handler to a
// plain http.HandlerFunc. Handlers signal failures by returning; a nil
// return means the response has already been written.
func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if appErr := next(w, r); appErr != nil {
			appErr.Send(w)
		}
	}
}
