package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/infrastructure/persistence"
)

type expiryFixture struct {
	monitor *ExpiryMonitor
	tokens  *persistence.TokenStore
	state   *persistence.ExpiryEmailStateRepository
	mailer  *MockMailer
	now     time.Time
}

func newExpiryFixture() *expiryFixture {
	kv := persistence.NewMemoryKeyValue()
	f := &expiryFixture{
		tokens: persistence.NewTokenStore(kv),
		state:  persistence.NewExpiryEmailStateRepository(kv),
		mailer: new(MockMailer),
		now:    fixedNow,
	}
	f.monitor = NewExpiryMonitor(ExpiryConfig{SiteName: "Blog", BaseURL: "https://blog.test", AdminEmail: "ops@blog.test"},
		f.tokens, f.state, f.mailer, func() time.Time { return f.now })
	return f
}

func (f *expiryFixture) setDaysLeft(t *testing.T, days int) {
	t.Helper()
	exp := f.now.Add(time.Duration(days)*24*time.Hour + time.Hour)
	require.NoError(t, f.tokens.Save(context.Background(), model.TokenRecord{AccessToken: "tok", ExpiresAt: exp}))
}

func TestExpiryMonitor_DailySequence(t *testing.T) {
	f := newExpiryFixture()
	ctx := context.Background()
	var sentOn []int
	f.mailer.On("Send", mock.Anything, "ops@blog.test", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sentOn = append(sentOn, f.now.Day())
		}).Return(nil)

	start := fixedNow
	for tick, days := range []int{5, 2, 2, 5, 1} {
		f.now = start.Add(time.Duration(tick) * 24 * time.Hour)
		f.setDaysLeft(t, days)
		require.NoError(t, f.monitor.Check(ctx))

		last, err := f.state.LastSentDate(ctx)
		require.NoError(t, err)
		switch tick {
		case 0, 3:
			assert.Empty(t, last, "tick %d", tick+1)
		default:
			assert.Equal(t, f.now.Format("2006-01-02"), last, "tick %d", tick+1)
		}
	}
	// one email per calendar day while below the threshold
	assert.Equal(t, []int{2, 3, 5}, sentOn)
}

func TestExpiryMonitor_AtMostOncePerDay(t *testing.T) {
	f := newExpiryFixture()
	ctx := context.Background()
	f.mailer.On("Send", mock.Anything, "ops@blog.test",
		"[Blog] LinkedIn Autoposter token expires in 1 days",
		mock.MatchedBy(func(body string) bool { return strings.Contains(body, "https://blog.test/auth/linkedin") })).
		Return(nil).Once()

	f.setDaysLeft(t, 1)
	require.NoError(t, f.monitor.Check(ctx))
	require.NoError(t, f.monitor.Check(ctx))
	f.mailer.AssertExpectations(t)
}

func TestExpiryMonitor_SendFailureStillRecordsDate(t *testing.T) {
	f := newExpiryFixture()
	ctx := context.Background()
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	f.setDaysLeft(t, 0)
	require.NoError(t, f.monitor.Check(ctx))
	last, err := f.state.LastSentDate(ctx)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Format("2006-01-02"), last)
}

func TestExpiryMonitor_NotConnectedIsNoop(t *testing.T) {
	f := newExpiryFixture()
	ctx := context.Background()
	require.NoError(t, f.state.SetLastSentDate(ctx, "2026-02-27"))

	require.NoError(t, f.monitor.Check(ctx))
	last, err := f.state.LastSentDate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-27", last)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
