package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"devconnect/internal/domain/post"
	"devconnect/internal/domain/profile"
	"devconnect/internal/domain/user"
	"devconnect/pkg/logger"
)

type RepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	profileRepo profile.Repository
	userRepo    user.Repository
	postRepo    post.Repository
}

func (s *RepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.profileRepo = NewPostgresProfileRepo(s.dbPool, logger.NewZapLogger("development"))
	s.userRepo = NewPostgresUserRepo(s.dbPool)
	s.postRepo = NewPostgresPostRepo(s.dbPool)
}

func (s *RepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(RepoIntegrationTestSuite))
}

func (s *RepoIntegrationTestSuite) seedUser(email string) *user.User {
	u := &user.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
		Avatar:       "https://gravatar.example/avatar",
		CreatedAt:    time.Now().UTC(),
	}
	s.Require().NoError(s.userRepo.Insert(context.Background(), u))
	return u
}

func (s *RepoIntegrationTestSuite) Test_CreateAndFind_RoundTripsDocuments() {
	ctx := context.Background()
	owner := s.seedUser("roundtrip@example.com")

	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	p := &profile.Profile{
		UserID: owner.ID,
		Handle: "roundtrip",
		Status: "Developer",
		Skills: []string{"go", "postgres"},
		Social: profile.SocialLinks{Twitter: "https://twitter.com/x"},
		Experience: []profile.Experience{{
			ID: uuid.New(), Title: "Engineer", Company: "Acme",
			From: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), To: &to,
		}},
		Education: []profile.Education{},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.NoError(s.profileRepo.Create(ctx, p))

	byUser, err := s.profileRepo.FindByUserID(ctx, owner.ID)
	s.NoError(err)
	s.Equal([]string{"go", "postgres"}, byUser.Skills)
	s.Len(byUser.Experience, 1)
	s.Equal("Acme", byUser.Experience[0].Company)
	s.NotNil(byUser.Experience[0].To)
	s.Empty(byUser.Education)

	byHandle, err := s.profileRepo.FindByHandle(ctx, "roundtrip")
	s.NoError(err)
	s.Equal(owner.ID, byHandle.UserID)
	s.Equal("https://twitter.com/x", byHandle.Social.Twitter)
}

func (s *RepoIntegrationTestSuite) Test_Create_DuplicateHandle() {
	ctx := context.Background()
	first := s.seedUser("first-handle@example.com")
	second := s.seedUser("second-handle@example.com")

	s.NoError(s.profileRepo.Create(ctx, &profile.Profile{
		UserID: first.ID, Handle: "taken", Status: "Dev",
		Skills: []string{"go"},
	}))

	err := s.profileRepo.Create(ctx, &profile.Profile{
		UserID: second.ID, Handle: "taken", Status: "Dev",
		Skills: []string{"go"},
	})
	s.ErrorIs(err, profile.ErrHandleTaken)
}

func (s *RepoIntegrationTestSuite) Test_Update_PersistsEmbeddedEntries() {
	ctx := context.Background()
	owner := s.seedUser("update@example.com")

	p := &profile.Profile{
		UserID: owner.ID, Handle: "update-me", Status: "Dev",
		Skills: []string{"go"},
	}
	s.Require().NoError(s.profileRepo.Create(ctx, p))

	p.AddEducation(profile.Education{
		ID: uuid.New(), School: "MIT", Degree: "BSc", FieldOfStudy: "CS",
		From: time.Date(2018, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	p.Status = "Senior Dev"
	s.NoError(s.profileRepo.Update(ctx, p))

	found, err := s.profileRepo.FindByUserID(ctx, owner.ID)
	s.NoError(err)
	s.Equal("Senior Dev", found.Status)
	s.Len(found.Education, 1)
	s.Equal("MIT", found.Education[0].School)
}

func (s *RepoIntegrationTestSuite) Test_Update_MissingProfile() {
	err := s.profileRepo.Update(context.Background(), &profile.Profile{
		UserID: uuid.New(), Handle: "ghost", Status: "Dev",
	})
	s.ErrorIs(err, profile.ErrProfileNotFound)
}

func (s *RepoIntegrationTestSuite) Test_DeleteWithUser_RemovesBothButKeepsPosts() {
	ctx := context.Background()
	owner := s.seedUser("cascade@example.com")

	s.Require().NoError(s.profileRepo.Create(ctx, &profile.Profile{
		UserID: owner.ID, Handle: "cascade", Status: "Dev",
		Skills: []string{"go"},
	}))

	orphan := &post.Post{
		ID: uuid.New(), UserID: owner.ID, Name: owner.Name,
		Text: "still here after the account is gone", CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.postRepo.Save(ctx, orphan))

	s.NoError(s.profileRepo.DeleteWithUser(ctx, owner.ID))

	_, err := s.profileRepo.FindByUserID(ctx, owner.ID)
	s.ErrorIs(err, profile.ErrProfileNotFound)

	_, err = s.userRepo.FindByID(ctx, owner.ID)
	s.ErrorIs(err, user.ErrUserNotFound)

	kept, err := s.postRepo.FindByID(ctx, orphan.ID)
	s.NoError(err)
	s.Equal(orphan.Text, kept.Text)
}

func (s *RepoIntegrationTestSuite) Test_DeleteWithUser_MissingProfile() {
	err := s.profileRepo.DeleteWithUser(context.Background(), uuid.New())
	s.ErrorIs(err, profile.ErrProfileNotFound)
}

func (s *RepoIntegrationTestSuite) Test_PostSave_RoundTripsLikesAndComments() {
	ctx := context.Background()
	owner := s.seedUser("poster@example.com")

	p := &post.Post{
		ID: uuid.New(), UserID: owner.ID, Name: owner.Name, Avatar: owner.Avatar,
		Text: "hello world", CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.postRepo.Save(ctx, p))

	s.Require().NoError(p.AddLike(uuid.New()))
	p.AddComment(post.Comment{
		ID: uuid.New(), User: owner.ID, Text: "first", Name: owner.Name, Date: time.Now().UTC(),
	})
	s.NoError(s.postRepo.Update(ctx, p))

	found, err := s.postRepo.FindByID(ctx, p.ID)
	s.NoError(err)
	s.Len(found.Likes, 1)
	s.Len(found.Comments, 1)
	s.Equal("first", found.Comments[0].Text)
}

func (s *RepoIntegrationTestSuite) Test_List_MostRecentFirst() {
	ctx := context.Background()
	owner := s.seedUser("lister@example.com")

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.postRepo.Save(ctx, &post.Post{
			ID: uuid.New(), UserID: owner.ID, Name: owner.Name,
			Text:      fmt.Sprintf("post %d", i),
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}))
	}

	posts, err := s.postRepo.List(ctx)
	s.NoError(err)
	s.Require().GreaterOrEqual(len(posts), 3)
	for i := 1; i < len(posts); i++ {
		s.False(posts[i].CreatedAt.After(posts[i-1].CreatedAt))
	}
}
