package api

import (
	"errors"
	"net/http"

	"healthcheck/pkg/compute"
	"healthcheck/pkg/survey"
)

// Statistics accepted by the statistic query parameter.
var Statistics = map[string]compute.Statistic{
	"avg":     compute.Average,
	"average": compute.Average,
	"sd":      compute.StandardDeviation,
	"stdev":   compute.StandardDeviation,
}

// Errors that are the caller's fault rather than ours.
var badRequests = []error{
	compute.ErrInvalidInput,
	compute.ErrMissingValue,
	compute.ErrLayoutMismatch,
	compute.ErrTooManySeries,
	survey.ErrTemplate,
}

func statusFor(err error) int {
	for _, e := range badRequests {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
