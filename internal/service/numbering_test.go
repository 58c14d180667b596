package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tallerhq/facturas/internal/domain/sequence"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/testutil"
)

type NumberingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service NumberingService
}

func TestNumberingService(t *testing.T) {
	suite.Run(t, new(NumberingServiceSuite))
}

func (s *NumberingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewNumberingService(s.serviceParams())
}

func (s *NumberingServiceSuite) serviceParams() ServiceParams {
	return ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		SequenceRepo: s.GetStores().SequenceRepo,
	}
}

func (s *NumberingServiceSuite) sequenceStore() *testutil.InMemorySequenceStore {
	return s.GetStores().SequenceRepo.(*testutil.InMemorySequenceStore)
}

func (s *NumberingServiceSuite) TestFirstAllocationSeedsCounter() {
	number, err := s.service.NextNumber(s.GetContext(), "")
	s.NoError(err)
	s.Equal("F-10000", number)
}

func (s *NumberingServiceSuite) TestSequentialAllocations() {
	first, err := s.service.NextNumber(s.GetContext(), "")
	s.NoError(err)
	s.Equal("F-10000", first)

	second, err := s.service.NextNumber(s.GetContext(), "")
	s.NoError(err)
	s.Equal("F-10001", second)

	third, err := s.service.NextNumber(s.GetContext(), "")
	s.NoError(err)
	s.Equal("F-10002", third)
}

func (s *NumberingServiceSuite) TestExplicitPrefix() {
	number, err := s.service.NextNumber(s.GetContext(), "Q")
	s.NoError(err)
	s.Equal("Q-10000", number)

	// Prefixes advance independently.
	number, err = s.service.NextNumber(s.GetContext(), "")
	s.NoError(err)
	s.Equal("F-10000", number)
}

func (s *NumberingServiceSuite) TestLegacyCounterBelowFloorIsRaised() {
	s.sequenceStore().Seed("F", 5000)

	number, err := s.service.NextNumber(s.GetContext(), "")
	s.NoError(err)
	s.Equal("F-10000", number)
}

func (s *NumberingServiceSuite) TestCounterAboveFloorKeepsCounting() {
	s.sequenceStore().Seed("F", 12345)

	number, err := s.service.NextNumber(s.GetContext(), "")
	s.NoError(err)
	s.Equal("F-12346", number)
}

func (s *NumberingServiceSuite) TestLostCreationRaceIsRetried() {
	s.sequenceStore().FailCreates = 1

	number, err := s.service.NextNumber(s.GetContext(), "")
	s.NoError(err)
	s.Equal("F-10000", number)
}

func (s *NumberingServiceSuite) TestFreshAllocationLeavesCounterUnlocked() {
	number, err := s.service.NextNumber(s.GetContext(), "")
	s.NoError(err)
	s.Equal("F-10000", number)

	// The seeding path must release the counter row like any other
	// allocation, both for later allocations and for direct store access.
	s.sequenceStore().Seed("Q", 20000)

	number, err = s.service.NextNumber(s.GetContext(), "Q")
	s.NoError(err)
	s.Equal("Q-20001", number)

	number, err = s.service.NextNumber(s.GetContext(), "")
	s.NoError(err)
	s.Equal("F-10001", number)
}

func (s *NumberingServiceSuite) TestPersistentCreationRaceGivesUp() {
	store := testutil.NewInMemorySequenceStore()
	params := s.serviceParams()
	params.SequenceRepo = alwaysRacingSequenceStore{store}
	service := NewNumberingService(params)

	_, err := service.NextNumber(s.GetContext(), "")
	s.Error(err)
	s.True(ierr.IsDatabase(err))
}

func (s *NumberingServiceSuite) TestConcurrentAllocationsAreDistinct() {
	const n = 20
	results := make(chan string, n)

	for i := 0; i < n; i++ {
		go func() {
			number, err := s.service.NextNumber(s.GetContext(), "")
			s.NoError(err)
			results <- number
		}()
	}

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		number := <-results
		s.False(seen[number], "number %s issued twice", number)
		seen[number] = true
	}
}

func (s *NumberingServiceSuite) TestFormatDocumentNumber() {
	s.Equal("F-10000", FormatDocumentNumber("F", 10000))
	s.Equal("Q-00042", FormatDocumentNumber("Q", 42))
}

// alwaysRacingSequenceStore never observes the winner's row, so every
// allocation attempt loses the creation race.
type alwaysRacingSequenceStore struct {
	*testutil.InMemorySequenceStore
}

func (alwaysRacingSequenceStore) GetForUpdate(_ context.Context, prefix string) (*sequence.Counter, error) {
	return nil, ierr.NewError("counter not found").
		WithHintf("No counter for prefix %s", prefix).
		Mark(ierr.ErrNotFound)
}

func (alwaysRacingSequenceStore) Create(_ context.Context, counter *sequence.Counter) error {
	return ierr.NewError("counter already exists").
		WithHintf("Counter for prefix %s already exists", counter.Prefix).
		Mark(ierr.ErrAlreadyExists)
}
