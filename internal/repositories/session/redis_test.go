package session

import (
	"context"
	"testing"
	"time"

	"github.com/AJV009/oracle11/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		TTL:         time.Hour,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetSession() {
	session := &models.Session{
		Token:         "test-session-token",
		CelebrationID: "christmas2025",
		Codename:      "rudolph",
		CreatedAt:     s.testNow,
	}

	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: session,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		Token: "test-session-token",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("test-session-token", retrieved.Token)
	s.Equal("christmas2025", retrieved.CelebrationID)
	s.Equal("rudolph", retrieved.Codename)
	s.False(retrieved.Admin)
	s.True(retrieved.CreatedAt.Equal(s.testNow))
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		Token: "never-issued",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestSessionExpiry() {
	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: &models.Session{
			Token:         "test-session-token",
			CelebrationID: "christmas2025",
			CreatedAt:     s.testNow,
		},
	})
	s.Require().NoError(err)

	// Advance miniredis past the TTL
	s.mr.FastForward(2 * time.Hour)

	_, err = s.repo.GetSession(context.Background(), &GetSessionInput{
		Token: "test-session-token",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestDeleteSession() {
	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: &models.Session{
			Token:         "test-session-token",
			CelebrationID: "christmas2025",
			Admin:         true,
			CreatedAt:     s.testNow,
		},
	})
	s.Require().NoError(err)

	err = s.repo.DeleteSession(context.Background(), &DeleteSessionInput{
		Token: "test-session-token",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetSession(context.Background(), &GetSessionInput{
		Token: "test-session-token",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}
