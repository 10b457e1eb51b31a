package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jsamuelsen/motivational-quotes/internal/domain"
	"github.com/jsamuelsen/motivational-quotes/internal/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestNavigator(
	t *testing.T,
	source *mocks.MockQuoteSource,
	recorder *mocks.MockNavigationRecorder,
	policy domain.PermalinkPolicy,
	transition time.Duration,
) *Navigator {
	t.Helper()

	resolver, err := domain.NewResolver(policy)
	require.NoError(t, err)

	cfg := NavigatorConfig{
		Service:    NewQuoteService(QuoteServiceConfig{Source: source, Logger: discardLogger()}),
		Resolver:   resolver,
		Transition: transition,
		Logger:     discardLogger(),
	}
	if recorder != nil {
		cfg.Recorder = recorder
	}

	nav := NewNavigator(cfg)
	t.Cleanup(nav.Close)

	return nav
}

func TestNewNavigator_PanicsWithoutDependencies(t *testing.T) {
	resolver, err := domain.NewResolver(domain.PolicyID)
	require.NoError(t, err)

	svc := NewQuoteService(QuoteServiceConfig{Source: mocks.NewMockQuoteSource(t)})

	assert.Panics(t, func() { NewNavigator(NavigatorConfig{Resolver: resolver}) })
	assert.Panics(t, func() { NewNavigator(NavigatorConfig{Service: svc}) })
	assert.NotPanics(t, func() { NewNavigator(NavigatorConfig{Service: svc, Resolver: resolver}) })
}

func TestNavigator_Random(t *testing.T) {
	tests := []struct {
		name            string
		policy          domain.PermalinkPolicy
		setupMock       func(*mocks.MockQuoteSource)
		expectedOutcome string
		expectedNav     *Navigation
		expectErr       bool
	}{
		{
			name:   "navigates to id path",
			policy: domain.PolicyID,
			setupMock: func(m *mocks.MockQuoteSource) {
				m.EXPECT().Random(mock.Anything).Return(testQuote("12"), nil)
			},
			expectedOutcome: "ok",
			expectedNav:     &Navigation{Path: "/quote/12", Replace: false},
		},
		{
			name:   "navigates to slug path",
			policy: domain.PolicySlug,
			setupMock: func(m *mocks.MockQuoteSource) {
				m.EXPECT().Random(mock.Anything).Return(testQuote("12"), nil)
			},
			expectedOutcome: "ok",
			expectedNav:     &Navigation{Path: "/steve-jobs/stay-hungry-stay-foolish", Replace: false},
		},
		{
			name:   "no quote means no navigation",
			policy: domain.PolicyID,
			setupMock: func(m *mocks.MockQuoteSource) {
				m.EXPECT().Random(mock.Anything).Return(nil, domain.NewNotFoundError("quotes", ""))
			},
			expectedOutcome: "not_found",
			expectedNav:     nil,
		},
		{
			name:   "failure surfaces",
			policy: domain.PolicyID,
			setupMock: func(m *mocks.MockQuoteSource) {
				m.EXPECT().Random(mock.Anything).Return(nil, domain.NewUnavailableError("quote-api", "down"))
			},
			expectedOutcome: "error",
			expectErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := mocks.NewMockQuoteSource(t)
			tt.setupMock(source)

			recorder := mocks.NewMockNavigationRecorder(t)
			recorder.EXPECT().RecordNavigation("random", tt.expectedOutcome).Return().Once()

			nav := newTestNavigator(t, source, recorder, tt.policy, 0)

			got, err := nav.Random(context.Background())

			if tt.expectErr {
				require.Error(t, err)
				assert.True(t, domain.IsUnavailable(err))
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.expectedNav, got)
			assert.False(t, nav.Animating(), "zero transition clears the flag on settle")
		})
	}
}

func TestNavigator_NextAndPrevious(t *testing.T) {
	source := mocks.NewMockQuoteSource(t)
	source.EXPECT().Next(mock.Anything, "4").Return(testQuote("5"), nil)
	source.EXPECT().Previous(mock.Anything, "4").Return(testQuote("3"), nil)

	nav := newTestNavigator(t, source, nil, domain.PolicyID, 0)

	next, err := nav.Next(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, "/quote/5", next.Path)

	prev, err := nav.Previous(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, "/quote/3", prev.Path)
}

func TestNavigator_NavigateDispatch(t *testing.T) {
	source := mocks.NewMockQuoteSource(t)
	source.EXPECT().Next(mock.Anything, "1").Return(testQuote("2"), nil)

	nav := newTestNavigator(t, source, nil, domain.PolicyID, 0)

	got, err := nav.Navigate(context.Background(), ActionNext, "1")
	require.NoError(t, err)
	assert.Equal(t, "/quote/2", got.Path)

	_, err = nav.Navigate(context.Background(), Action("sideways"), "1")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestNavigator_AnimatingClearsAfterTransition(t *testing.T) {
	source := mocks.NewMockQuoteSource(t)
	source.EXPECT().Random(mock.Anything).Return(testQuote("1"), nil)

	nav := newTestNavigator(t, source, nil, domain.PolicyID, 30*time.Millisecond)

	assert.False(t, nav.Animating())

	_, err := nav.Random(context.Background())
	require.NoError(t, err)

	assert.True(t, nav.Animating(), "flag holds for the transition")
	assert.Eventually(t, func() bool { return !nav.Animating() }, time.Second, 5*time.Millisecond)
}

func TestNavigator_AnimatingClearsAfterFailure(t *testing.T) {
	source := mocks.NewMockQuoteSource(t)
	source.EXPECT().Random(mock.Anything).Return(nil, domain.NewUnavailableError("quote-api", "down"))

	nav := newTestNavigator(t, source, nil, domain.PolicyID, 20*time.Millisecond)

	_, err := nav.Random(context.Background())
	require.Error(t, err)

	assert.Eventually(t, func() bool { return !nav.Animating() }, time.Second, 5*time.Millisecond)
}

func TestNavigator_NewerNavigationSupersedes(t *testing.T) {
	started := make(chan struct{})

	source := mocks.NewMockQuoteSource(t)
	source.EXPECT().Next(mock.Anything, "1").
		RunAndReturn(func(ctx context.Context, _ string) (*domain.Quote, error) {
			close(started)
			<-ctx.Done()

			return nil, domain.NewUnavailableError("quote-api", ctx.Err().Error())
		})
	source.EXPECT().Random(mock.Anything).Return(testQuote("8"), nil)

	recorder := mocks.NewMockNavigationRecorder(t)
	recorder.EXPECT().RecordNavigation("next", "superseded").Return().Once()
	recorder.EXPECT().RecordNavigation("random", "ok").Return().Once()

	nav := newTestNavigator(t, source, recorder, domain.PolicyID, 0)

	var (
		wg       sync.WaitGroup
		firstNav *Navigation
		firstErr error
	)

	wg.Add(1)

	go func() {
		defer wg.Done()
		firstNav, firstErr = nav.Next(context.Background(), "1")
	}()

	<-started

	second, err := nav.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/quote/8", second.Path)

	wg.Wait()

	assert.Nil(t, firstNav)
	require.ErrorIs(t, firstErr, ErrSuperseded)
}

func TestNavigator_LaterNavigationKeepsFlag(t *testing.T) {
	const transition = 20 * time.Millisecond

	release := make(chan struct{})
	started := make(chan struct{})

	source := mocks.NewMockQuoteSource(t)
	source.EXPECT().Random(mock.Anything).Return(testQuote("1"), nil).Once()
	source.EXPECT().Next(mock.Anything, "1").
		RunAndReturn(func(context.Context, string) (*domain.Quote, error) {
			close(started)
			<-release

			return testQuote("2"), nil
		}).Once()

	nav := newTestNavigator(t, source, nil, domain.PolicyID, transition)

	_, err := nav.Random(context.Background())
	require.NoError(t, err)

	done := make(chan struct{})

	go func() {
		defer close(done)

		_, _ = nav.Next(context.Background(), "1")
	}()

	<-started
	time.Sleep(3 * transition)

	assert.True(t, nav.Animating(), "first transition must not clear the flag of a later navigation")

	close(release)
	<-done

	assert.Eventually(t, func() bool { return !nav.Animating() }, time.Second, 5*time.Millisecond)
}

func TestNavigator_Lookup(t *testing.T) {
	tests := []struct {
		name            string
		id              string
		setupMock       func(*mocks.MockQuoteSource)
		expectedOutcome string
		expectQuote     bool
		expectNotFound  bool
		expectErr       bool
	}{
		{
			name: "found",
			id:   "3",
			setupMock: func(m *mocks.MockQuoteSource) {
				m.EXPECT().ByID(mock.Anything, "3").Return(testQuote("3"), nil)
			},
			expectedOutcome: "ok",
			expectQuote:     true,
		},
		{
			name: "null result replaces with not found",
			id:   "99",
			setupMock: func(m *mocks.MockQuoteSource) {
				m.EXPECT().ByID(mock.Anything, "99").Return(nil, domain.NewNotFoundError("quote", "99"))
			},
			expectedOutcome: "not_found",
			expectNotFound:  true,
		},
		{
			name:            "non numeric id is not queried",
			id:              "abc",
			setupMock:       func(*mocks.MockQuoteSource) {},
			expectedOutcome: "not_found",
			expectNotFound:  true,
		},
		{
			name: "rejected record replaces with not found",
			id:   "4",
			setupMock: func(m *mocks.MockQuoteSource) {
				m.EXPECT().ByID(mock.Anything, "4").Return(nil, domain.NewValidationError("quote", "text is required"))
			},
			expectedOutcome: "not_found",
			expectNotFound:  true,
		},
		{
			name: "failure surfaces",
			id:   "5",
			setupMock: func(m *mocks.MockQuoteSource) {
				m.EXPECT().ByID(mock.Anything, "5").Return(nil, domain.NewUnavailableError("quote-api", "down"))
			},
			expectedOutcome: "error",
			expectErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := mocks.NewMockQuoteSource(t)
			tt.setupMock(source)

			recorder := mocks.NewMockNavigationRecorder(t)
			recorder.EXPECT().RecordLookup("id", tt.expectedOutcome).Return().Once()

			nav := newTestNavigator(t, source, recorder, domain.PolicyID, 0)

			quote, redirect, err := nav.Lookup(context.Background(), tt.id)

			if tt.expectErr {
				require.Error(t, err)
				assert.Nil(t, quote)
				assert.Nil(t, redirect)

				return
			}

			require.NoError(t, err)

			if tt.expectQuote {
				require.NotNil(t, quote)
				assert.Equal(t, tt.id, quote.ID)
				assert.Nil(t, redirect)
			}

			if tt.expectNotFound {
				assert.Nil(t, quote)
				assert.Equal(t, &Navigation{Path: "/not-found", Replace: true}, redirect)
			}
		})
	}
}

func TestNavigator_LookupPermalink(t *testing.T) {
	source := mocks.NewMockQuoteSource(t)
	source.EXPECT().ByPermalink(mock.Anything, "steve-jobs", "stay-hungry-stay-foolish").Return(testQuote("1"), nil)
	source.EXPECT().ByPermalink(mock.Anything, "nobody", "nothing").Return(nil, domain.NewNotFoundError("quote", ""))

	recorder := mocks.NewMockNavigationRecorder(t)
	recorder.EXPECT().RecordLookup("permalink", "ok").Return().Once()
	recorder.EXPECT().RecordLookup("permalink", "not_found").Return().Twice()

	nav := newTestNavigator(t, source, recorder, domain.PolicySlug, 0)

	quote, redirect, err := nav.LookupPermalink(context.Background(), "steve-jobs", "stay-hungry-stay-foolish")
	require.NoError(t, err)
	assert.Nil(t, redirect)
	assert.Equal(t, "/steve-jobs/stay-hungry-stay-foolish", nav.Path(quote))

	quote, redirect, err = nav.LookupPermalink(context.Background(), "nobody", "nothing")
	require.NoError(t, err)
	assert.Nil(t, quote)
	assert.True(t, redirect.Replace)

	_, redirect, err = nav.LookupPermalink(context.Background(), "steve-jobs", " ")
	require.NoError(t, err)
	assert.Equal(t, "/not-found", redirect.Path)
}

func TestNavigator_CloseCancelsInFlight(t *testing.T) {
	started := make(chan struct{})

	source := mocks.NewMockQuoteSource(t)
	source.EXPECT().Random(mock.Anything).
		RunAndReturn(func(ctx context.Context) (*domain.Quote, error) {
			close(started)
			<-ctx.Done()

			return nil, ctx.Err()
		})

	nav := newTestNavigator(t, source, nil, domain.PolicyID, time.Hour)

	errCh := make(chan error, 1)

	go func() {
		_, err := nav.Random(context.Background())
		errCh <- err
	}()

	<-started
	nav.Close()

	require.ErrorIs(t, <-errCh, ErrSuperseded)
	assert.False(t, nav.Animating())
}
