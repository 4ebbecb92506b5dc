package session

import (
	"context"
	"testing"
	"time"

	"gamebalance/internal/kv"
	redisprovider "gamebalance/internal/providers/redis"
	"gamebalance/internal/utils"
	"gamebalance/internal/utils/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mr        *miniredis.Miniredis
	provider  *redisprovider.RedisProvider
	store     kv.Store
	repo      Repository
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	eventBus  *utils.EventBus
	service   Service
	ctx       context.Context

	now    time.Time
	userID string
	game   StartSessionRequest
	events []EndedEvent
}

func (s *SessionServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.provider = redisprovider.NewRedisProvider(s.mr.Addr(), zap.NewNop(), time.Minute)
	s.store = redisprovider.NewKVStore(s.provider)
	s.repo = NewRepository(s.store)

	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)

	s.now = time.Date(2025, 4, 16, 18, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time {
		current := s.now
		s.now = s.now.Add(time.Second)
		return current
	}).AnyTimes()

	s.events = nil
	s.eventBus = utils.NewEventBus(zap.NewNop())
	s.eventBus.Subscribe(EventSessionEnded, func(e utils.Event) {
		s.events = append(s.events, e.Data.(EndedEvent))
	})

	s.service = NewService(s.repo, s.mockClock, s.eventBus, zap.NewNop())
	s.ctx = context.Background()
	s.userID = "user-1"
	s.game = StartSessionRequest{GameName: "Mobile Legends", GameIcon: "🎮", GameColor: "from-purple-500 to-pink-500"}
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.provider.Close()
	s.mr.Close()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func (s *SessionServiceTestSuite) TestStartCreatesActiveSessionAndPointer() {
	startedAt := s.now

	session, err := s.service.Start(s.ctx, s.userID, s.game)
	s.Require().NoError(err)

	s.Equal(Key(s.userID, startedAt), session.ID)
	s.Equal("session:user-1:1744826400000", session.ID)
	s.True(session.IsActive)
	s.Nil(session.EndTime)
	s.Zero(session.DurationSeconds)
	s.Equal("Mobile Legends", session.GameName)

	current, err := s.repo.GetCurrent(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(session.ID, current)

	stored, err := s.repo.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.True(stored.IsActive)
	s.True(stored.StartTime.Equal(startedAt))
}

func (s *SessionServiceTestSuite) TestStartRequiresUser() {
	_, err := s.service.Start(s.ctx, "", s.game)
	s.ErrorIs(err, ErrUnauthenticated)

	entries, err := s.store.ScanPrefix(s.ctx, "session:")
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *SessionServiceTestSuite) TestEndRecordsReportedDuration() {
	for _, duration := range []int64{0, 1, 4500, 86400} {
		started, err := s.service.Start(s.ctx, s.userID, s.game)
		s.Require().NoError(err)

		ended, err := s.service.End(s.ctx, s.userID, duration)
		s.Require().NoError(err)
		s.Require().NotNil(ended)

		stored, err := s.repo.Get(s.ctx, started.ID)
		s.Require().NoError(err)
		s.False(stored.IsActive)
		s.Require().NotNil(stored.EndTime)
		s.Equal(duration, stored.DurationSeconds)
		s.True(stored.EndTime.After(stored.StartTime))

		_, err = s.repo.GetCurrent(s.ctx, s.userID)
		s.ErrorIs(err, ErrNoActiveSession)
	}
}

func (s *SessionServiceTestSuite) TestEndPublishesEvent() {
	started, err := s.service.Start(s.ctx, s.userID, s.game)
	s.Require().NoError(err)

	_, err = s.service.End(s.ctx, s.userID, 60)
	s.Require().NoError(err)

	s.Require().Len(s.events, 1)
	s.Equal(s.userID, s.events[0].UserID)
	s.Equal(started.ID, s.events[0].SessionID)
}

func (s *SessionServiceTestSuite) TestEndWithoutStartFails() {
	_, err := s.service.End(s.ctx, s.userID, 60)
	s.ErrorIs(err, ErrNoActiveSession)
	s.Empty(s.events)
}

func (s *SessionServiceTestSuite) TestEndTwiceFailsSecondTime() {
	_, err := s.service.Start(s.ctx, s.userID, s.game)
	s.Require().NoError(err)

	_, err = s.service.End(s.ctx, s.userID, 60)
	s.Require().NoError(err)

	_, err = s.service.End(s.ctx, s.userID, 60)
	s.ErrorIs(err, ErrNoActiveSession)
}

func (s *SessionServiceTestSuite) TestEndRejectsNegativeDuration() {
	_, err := s.service.Start(s.ctx, s.userID, s.game)
	s.Require().NoError(err)

	_, err = s.service.End(s.ctx, s.userID, -5)
	s.ErrorIs(err, ErrInvalidDuration)

	// still active
	_, err = s.repo.GetCurrent(s.ctx, s.userID)
	s.NoError(err)
}

func (s *SessionServiceTestSuite) TestEndWithDanglingPointerClearsIt() {
	s.Require().NoError(s.repo.SetCurrent(s.ctx, s.userID, "session:user-1:1"))

	ended, err := s.service.End(s.ctx, s.userID, 60)
	s.Require().NoError(err)
	s.Nil(ended)

	_, err = s.repo.GetCurrent(s.ctx, s.userID)
	s.ErrorIs(err, ErrNoActiveSession)
}

func (s *SessionServiceTestSuite) TestSecondStartOverwritesPointer() {
	first, err := s.service.Start(s.ctx, s.userID, s.game)
	s.Require().NoError(err)
	second, err := s.service.Start(s.ctx, s.userID, s.game)
	s.Require().NoError(err)

	current, err := s.repo.GetCurrent(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(second.ID, current)

	_, err = s.service.End(s.ctx, s.userID, 30)
	s.Require().NoError(err)

	// the first session is orphaned in the active state
	orphan, err := s.repo.Get(s.ctx, first.ID)
	s.Require().NoError(err)
	s.True(orphan.IsActive)
	s.Zero(orphan.DurationSeconds)
}

func (s *SessionServiceTestSuite) TestListOrdersMostRecentFirst() {
	var ids []string
	for i := 0; i < 3; i++ {
		started, err := s.service.Start(s.ctx, s.userID, s.game)
		s.Require().NoError(err)
		_, err = s.service.End(s.ctx, s.userID, int64(60*(i+1)))
		s.Require().NoError(err)
		ids = append(ids, started.ID)
		s.now = s.now.Add(time.Hour)
	}
	_, err := s.service.Start(s.ctx, "user-2", s.game)
	s.Require().NoError(err)

	sessions, err := s.service.List(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(sessions, 3)
	s.Equal(ids[2], sessions[0].ID)
	s.Equal(ids[1], sessions[1].ID)
	s.Equal(ids[0], sessions[2].ID)
	for _, session := range sessions {
		s.Equal(s.userID, session.UserID)
	}
}

func (s *SessionServiceTestSuite) TestListEmpty() {
	sessions, err := s.service.List(s.ctx, s.userID)
	s.Require().NoError(err)
	s.NotNil(sessions)
	s.Empty(sessions)
}
