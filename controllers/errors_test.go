package controllers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel-pms/services"
)

func TestHTTPStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"room not found", services.ErrRoomNotFound, http.StatusNotFound},
		{"date conflict", services.ErrDatesConflict, http.StatusConflict},
		{"wizard already submitted", services.ErrWizardDone, http.StatusConflict},
		{"audit already run", services.ErrAuditAlreadyRun, http.StatusConflict},
		{"ledger company missing", services.ErrCompanyRequired, http.StatusBadRequest},
		{"ledger entry type", services.ErrInvalidEntryType, http.StatusBadRequest},
		{"unknown", errors.New("driver exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, httpStatusFor(tc.err))
		})
	}

	_, parseErr := time.Parse("2006-01-02", "not-a-date")
	assert.Equal(t, http.StatusBadRequest, httpStatusFor(parseErr))
	assert.Equal(t, "internal error", errorMessage(errors.New("driver exploded")))
}
