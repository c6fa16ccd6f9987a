package handler

import (
	"errors"
	"net/http"
	"testing"

	"worknet/internal/repository/mysql"
	"worknet/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestErrStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{mysql.ErrPostNotFound, http.StatusNotFound},
		{mysql.ErrCompanyNotFound, http.StatusNotFound},
		{mysql.ErrLikeNotFound, http.StatusNotFound},
		{mysql.ErrAlreadyLiked, http.StatusConflict},
		{mysql.ErrAlreadySaved, http.StatusConflict},
		{service.ErrInvalidID, http.StatusBadRequest},
		{service.ErrEmptyComment, http.StatusBadRequest},
		{service.ErrNoPermission, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, errStatus(tc.err), "err=%v", tc.err)
	}
}
