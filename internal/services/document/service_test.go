package document

import (
	"context"
	"errors"
	"testing"
	"time"

	clockMocks "github.com/AJV009/oracle11/internal/common/clock/mocks"
	"github.com/AJV009/oracle11/internal/models"
	binRepo "github.com/AJV009/oracle11/internal/repositories/bin"
	binMocks "github.com/AJV009/oracle11/internal/repositories/bin/mocks"
	cacheRepo "github.com/AJV009/oracle11/internal/repositories/cache"
	cacheMocks "github.com/AJV009/oracle11/internal/repositories/cache/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DocumentServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockBin   *binMocks.MockRepository
	mockCache *cacheMocks.MockRepository
	mockClock *clockMocks.MockClock
	service   Service
	ctx       context.Context

	// Test data
	testNow   time.Time
	testScope Scope
	testDoc   *models.GameDocument
}

func (s *DocumentServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockBin = binMocks.NewMockRepository(s.mockCtrl)
	s.mockCache = cacheMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)

	s.ctx = context.Background()

	s.testNow = time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC)
	s.testScope = Scope{
		CelebrationID: "christmas2025",
		ResourceID:    "bin-christmas-2025",
	}
	s.testDoc = models.NewGameDocument(s.testNow.Add(-time.Hour))
	s.testDoc.Predictions["rudolph"] = &models.Prediction{
		Timestamp: s.testNow.Add(-time.Hour),
		Guesses:   map[string]string{"comet": "vixen"},
	}

	s.mockClock.EXPECT().Now().Return(s.testNow).AnyTimes()

	service, err := New(&Config{
		BinRepo:   s.mockBin,
		CacheRepo: s.mockCache,
		Clock:     s.mockClock,
	})
	s.Require().NoError(err)
	s.service = service
}

func (s *DocumentServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}

func (s *DocumentServiceTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{CacheRepo: s.mockCache, Clock: s.mockClock})
	s.ErrorIs(err, ErrNilBinRepo)

	_, err = New(&Config{BinRepo: s.mockBin, Clock: s.mockClock})
	s.ErrorIs(err, ErrNilCacheRepo)

	_, err = New(&Config{BinRepo: s.mockBin, CacheRepo: s.mockCache})
	s.ErrorIs(err, ErrNilClock)
}

func (s *DocumentServiceTestSuite) TestFetchServesFreshCacheWithoutRemoteCall() {
	// Cached 10s ago, inside the 30s window; no bin expectations, so
	// any remote call fails the test
	s.mockCache.EXPECT().
		GetDocument(s.ctx, &cacheRepo.GetDocumentInput{CelebrationID: "christmas2025"}).
		Return(&cacheRepo.GetDocumentOutput{
			Document: s.testDoc,
			StoredAt: s.testNow.Add(-10 * time.Second),
		}, nil)

	out, err := s.service.Fetch(s.ctx, &FetchInput{Scope: s.testScope})
	s.Require().NoError(err)

	s.True(out.FromCache)
	s.False(out.Degraded)
	s.Equal(s.testDoc, out.Document)
}

func (s *DocumentServiceTestSuite) TestFetchStaleCacheReadsRemote() {
	fresh := models.NewGameDocument(s.testNow)

	s.mockCache.EXPECT().
		GetDocument(s.ctx, gomock.Any()).
		Return(&cacheRepo.GetDocumentOutput{
			Document: s.testDoc,
			StoredAt: s.testNow.Add(-45 * time.Second),
		}, nil)

	s.mockBin.EXPECT().
		GetLatest(s.ctx, &binRepo.GetLatestInput{ResourceID: "bin-christmas-2025"}).
		Return(fresh, nil)

	s.mockCache.EXPECT().
		SetDocument(s.ctx, &cacheRepo.SetDocumentInput{
			CelebrationID: "christmas2025",
			Document:      fresh,
			StoredAt:      s.testNow,
		}).
		Return(nil)

	out, err := s.service.Fetch(s.ctx, &FetchInput{Scope: s.testScope})
	s.Require().NoError(err)

	s.False(out.FromCache)
	s.Equal(fresh, out.Document)
}

func (s *DocumentServiceTestSuite) TestFetchSkipCacheReadsRemote() {
	fresh := models.NewGameDocument(s.testNow)

	// The cache entry is fresh, but SkipCache bypasses it
	s.mockCache.EXPECT().
		GetDocument(s.ctx, gomock.Any()).
		Return(&cacheRepo.GetDocumentOutput{
			Document: s.testDoc,
			StoredAt: s.testNow.Add(-time.Second),
		}, nil)

	s.mockBin.EXPECT().
		GetLatest(s.ctx, gomock.Any()).
		Return(fresh, nil)

	s.mockCache.EXPECT().
		SetDocument(s.ctx, gomock.Any()).
		Return(nil)

	out, err := s.service.Fetch(s.ctx, &FetchInput{Scope: s.testScope, SkipCache: true})
	s.Require().NoError(err)

	s.False(out.FromCache)
	s.Equal(fresh, out.Document)
}

func (s *DocumentServiceTestSuite) TestFetchNormalizesRemoteDocument() {
	s.mockCache.EXPECT().
		GetDocument(s.ctx, gomock.Any()).
		Return(nil, cacheRepo.ErrCacheMiss)

	// The remote host can hand back a document with null maps
	s.mockBin.EXPECT().
		GetLatest(s.ctx, gomock.Any()).
		Return(&models.GameDocument{LastUpdated: s.testNow}, nil)

	s.mockCache.EXPECT().
		SetDocument(s.ctx, gomock.Any()).
		Return(nil)

	out, err := s.service.Fetch(s.ctx, &FetchInput{Scope: s.testScope})
	s.Require().NoError(err)

	s.NotNil(out.Document.Predictions)
	s.NotNil(out.Document.ActualPairings)
}

func (s *DocumentServiceTestSuite) TestFetchFallsBackToStaleCacheOnRemoteFailure() {
	s.mockCache.EXPECT().
		GetDocument(s.ctx, gomock.Any()).
		Return(&cacheRepo.GetDocumentOutput{
			Document: s.testDoc,
			StoredAt: s.testNow.Add(-2 * time.Hour),
		}, nil)

	s.mockBin.EXPECT().
		GetLatest(s.ctx, gomock.Any()).
		Return(nil, binRepo.ErrRemoteUnavailable)

	out, err := s.service.Fetch(s.ctx, &FetchInput{Scope: s.testScope})
	s.Require().NoError(err)

	s.True(out.FromCache)
	s.True(out.Degraded)
	s.Equal(s.testDoc, out.Document)
}

func (s *DocumentServiceTestSuite) TestFetchFailsWithoutCache() {
	s.mockCache.EXPECT().
		GetDocument(s.ctx, gomock.Any()).
		Return(nil, cacheRepo.ErrCacheMiss)

	s.mockBin.EXPECT().
		GetLatest(s.ctx, gomock.Any()).
		Return(nil, binRepo.ErrRemoteUnavailable)

	_, err := s.service.Fetch(s.ctx, &FetchInput{Scope: s.testScope})
	s.Require().Error(err)
	s.ErrorIs(err, ErrNoCacheAvailable)
}

func (s *DocumentServiceTestSuite) TestPutUpdatesCacheOnSuccess() {
	s.mockBin.EXPECT().
		Update(s.ctx, &binRepo.UpdateInput{
			ResourceID: "bin-christmas-2025",
			Document:   s.testDoc,
		}).
		Return(nil)

	s.mockCache.EXPECT().
		SetDocument(s.ctx, &cacheRepo.SetDocumentInput{
			CelebrationID: "christmas2025",
			Document:      s.testDoc,
			StoredAt:      s.testNow,
		}).
		Return(nil)

	err := s.service.Put(s.ctx, &PutInput{Scope: s.testScope, Document: s.testDoc})
	s.Require().NoError(err)
}

func (s *DocumentServiceTestSuite) TestPutLeavesCacheUntouchedOnFailure() {
	// No SetDocument expectation: a failed write must not touch the cache
	s.mockBin.EXPECT().
		Update(s.ctx, gomock.Any()).
		Return(binRepo.ErrRemoteUnavailable)

	err := s.service.Put(s.ctx, &PutInput{Scope: s.testScope, Document: s.testDoc})
	s.Require().Error(err)
	s.ErrorIs(err, ErrFetchFailed)
}

func (s *DocumentServiceTestSuite) TestResetWritesDefaultAndClearsCache() {
	var written *models.GameDocument

	s.mockBin.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *binRepo.UpdateInput) error {
			written = input.Document
			return nil
		})

	s.mockCache.EXPECT().
		DeleteDocument(s.ctx, &cacheRepo.DeleteDocumentInput{CelebrationID: "christmas2025"}).
		Return(nil)

	out, err := s.service.Reset(s.ctx, &ResetInput{Scope: s.testScope})
	s.Require().NoError(err)

	s.Require().NotNil(written)
	s.Empty(written.Predictions)
	s.Empty(written.ActualPairings)
	s.False(written.WinnersRevealed)
	s.Nil(written.LeaderboardVisible)
	s.True(written.LastUpdated.Equal(s.testNow))
	s.Equal(written, out.Document)
}

func (s *DocumentServiceTestSuite) TestResetPropagatesWriteFailure() {
	s.mockBin.EXPECT().
		Update(s.ctx, gomock.Any()).
		Return(errors.New("boom"))

	_, err := s.service.Reset(s.ctx, &ResetInput{Scope: s.testScope})
	s.Require().Error(err)
	s.ErrorIs(err, ErrFetchFailed)
}
