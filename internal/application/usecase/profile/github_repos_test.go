package profile_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"devconnect/adapters/github"
	profileUC "devconnect/internal/application/usecase/profile"
	"devconnect/pkg/apperror"
	"devconnect/pkg/logger"
)

func TestGithubRepos_ProxiesUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/jdoe/repos", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"devconnect","html_url":"https://github.com/jdoe/devconnect"}]`))
	}))
	defer srv.Close()

	client := github.NewClientWithBaseURL(srv.URL)
	uc := profileUC.NewGithubReposUseCase(client, nil, time.Minute, logger.NewZapLogger("development"))

	repos, err := uc.Execute(context.Background(), "jdoe")

	assert.NoError(t, err)
	assert.Len(t, repos, 1)
	assert.Equal(t, "devconnect", repos[0].Name)
}

func TestGithubRepos_UnknownUserIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := github.NewClientWithBaseURL(srv.URL)
	uc := profileUC.NewGithubReposUseCase(client, nil, time.Minute, logger.NewZapLogger("development"))

	_, err := uc.Execute(context.Background(), "nobody")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
