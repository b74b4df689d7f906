package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/dumpwatch/dumpwatch-api/schema"
	"github.com/dumpwatch/dumpwatch-api/store"
)

func TestProfileDetail(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	s.mongo.EXPECT().GetProfile(testRequester).Return(&schema.Profile{
		UID:       testRequester,
		FirstName: "Jana",
		LastName:  "Nováková",
		Email:     "jana@example.sk",
		Score:     40,
	}, nil).Times(1)

	router := gin.New()
	router.Use(withRequester(testRequester))
	router.GET("/profile", s.profileDetail)

	w := performJSON(router, "GET", "/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result schema.Profile `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Jana", resp.Result.FirstName)
	assert.Equal(t, int64(40), resp.Result.Score)
}

func TestProfileDetailNotFound(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	s.mongo.EXPECT().GetProfile(testRequester).Return(nil, store.ErrProfileNotFound).Times(1)

	router := gin.New()
	router.Use(withRequester(testRequester))
	router.GET("/profile", s.profileDetail)

	w := performJSON(router, "GET", "/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errorProfileNotFound.Code, decodeError(t, w).Code)
}
