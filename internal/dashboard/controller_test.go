package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/models/dto"
	"github.com/hongminglow/labubu-portal/internal/remote"
	"github.com/hongminglow/labubu-portal/internal/session"
)

type fakeSessions struct {
	sess models.Session
	err  error
}

func (f fakeSessions) Load(context.Context, string) (models.Session, error) {
	return f.sess, f.err
}

type fakeLoans struct {
	statsCalls atomic.Int32
	listCalls  atomic.Int32
	stats      dto.LoanStatsResult
	loans      dto.LoanListResult
	statsErr   error
}

func (f *fakeLoans) Stats(context.Context, models.Session) (dto.LoanStatsResult, error) {
	f.statsCalls.Add(1)
	return f.stats, f.statsErr
}

func (f *fakeLoans) List(context.Context, models.Session, models.LoanStatus) (dto.LoanListResult, error) {
	f.listCalls.Add(1)
	return f.loans, nil
}

type fakeReferrals struct {
	res dto.ReferralStatsResult
	err error
}

func (f fakeReferrals) Stats(context.Context, models.Session) (dto.ReferralStatsResult, error) {
	return f.res, f.err
}

type fakeCard struct {
	res   dto.CardResult
	panic bool
}

func (f fakeCard) Card(context.Context, models.Session) (dto.CardResult, error) {
	if f.panic {
		panic("boom")
	}
	return f.res, nil
}

var authed = fakeSessions{sess: models.Session{Token: "tok", User: &models.User{ID: 7, Name: "Ivan"}}}

func newLoans() *fakeLoans {
	return &fakeLoans{
		stats: dto.LoanStatsResult{Stats: &models.LoanStats{ActiveLoans: 1, ActiveAmount: 10000, TotalLoans: 3, CompletedLoans: 2}},
		loans: dto.LoanListResult{Loans: []models.Loan{{ID: 1, Status: models.LoanActive}}},
	}
}

func TestMountRedirectsWithoutSession(t *testing.T) {
	c := New(Deps{Sessions: fakeSessions{err: session.ErrNotAuthenticated}})
	route, err := c.Mount(context.Background(), "sid")
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if route != LoginRoute {
		t.Fatalf("route = %q, want %q", route, LoginRoute)
	}
}

func TestMountPropagatesStorageErrors(t *testing.T) {
	c := New(Deps{Sessions: fakeSessions{err: errors.New("db down")}})
	if _, err := c.Mount(context.Background(), "sid"); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadPopulatesEveryAggregate(t *testing.T) {
	loans := newLoans()
	c := New(Deps{
		Sessions:      authed,
		Loans:         loans,
		Referrals:     fakeReferrals{res: dto.ReferralStatsResult{ReferralCode: "ABC 1", Stats: &models.ReferralStats{TotalReferrals: 2}}},
		Card:          fakeCard{res: dto.CardResult{Card: &models.VirtualCard{Balance: 5000}}},
		PublicBaseURL: "https://portal.example/",
	})
	if route, err := c.Mount(context.Background(), "sid"); err != nil || route != "" {
		t.Fatalf("Mount = %q, %v", route, err)
	}
	st := c.State()
	if st.Loading {
		t.Fatal("loading should be cleared")
	}
	if st.User == nil || st.User.ID != 7 {
		t.Fatalf("user = %+v", st.User)
	}
	if st.LoanStats == nil || st.LoanStats.TotalLoans != 3 {
		t.Fatalf("loan stats = %+v", st.LoanStats)
	}
	if st.Card == nil || st.Card.Balance != 5000 {
		t.Fatalf("card = %+v", st.Card)
	}
	if len(st.Loans) != 1 {
		t.Fatalf("loans = %+v", st.Loans)
	}
	if st.ReferralLink != "https://portal.example/login?ref=ABC+1" {
		t.Fatalf("referral link = %q", st.ReferralLink)
	}
}

func TestReferralFailureLeavesOtherAggregates(t *testing.T) {
	c := New(Deps{
		Sessions:  authed,
		Loans:     newLoans(),
		Referrals: fakeReferrals{err: remote.ErrTransport},
		Card:      fakeCard{res: dto.CardResult{Card: &models.VirtualCard{Balance: 1}}},
	})
	if _, err := c.Mount(context.Background(), "sid"); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	st := c.State()
	if st.ReferralStats != nil || st.ReferralCode != "" {
		t.Fatalf("referral aggregate should stay empty: %+v", st)
	}
	if st.LoanStats == nil || st.Card == nil || len(st.Loans) != 1 {
		t.Fatalf("other aggregates missing: %+v", st)
	}
}

func TestPanickingFetchIsContained(t *testing.T) {
	c := New(Deps{
		Sessions:  authed,
		Loans:     newLoans(),
		Referrals: fakeReferrals{},
		Card:      fakeCard{panic: true},
	})
	if _, err := c.Mount(context.Background(), "sid"); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if st := c.State(); st.Card != nil || st.LoanStats == nil {
		t.Fatalf("state = %+v", st)
	}
}

func TestLoanCreatedRefreshesLoansAndClosesModal(t *testing.T) {
	loans := newLoans()
	c := New(Deps{Sessions: authed, Loans: loans, Referrals: fakeReferrals{}, Card: fakeCard{}})
	if _, err := c.Mount(context.Background(), "sid"); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	c.OpenLoanForm()

	loans.loans = dto.LoanListResult{Loans: []models.Loan{{ID: 1}, {ID: 2}}}
	loans.statsErr = errors.New("stats unavailable")
	c.LoanCreated(context.Background())

	st := c.State()
	if st.LoanFormOpen {
		t.Fatal("modal should be closed")
	}
	if len(st.Loans) != 2 {
		t.Fatalf("loans = %d, want 2", len(st.Loans))
	}
	if st.LoanStats == nil || st.LoanStats.TotalLoans != 3 {
		t.Fatalf("failed refresh should keep previous stats, got %+v", st.LoanStats)
	}
	if got := loans.statsCalls.Load(); got != 2 {
		t.Fatalf("stats calls = %d, want 2", got)
	}
	if got := loans.listCalls.Load(); got != 2 {
		t.Fatalf("list calls = %d, want 2", got)
	}
}

func TestParseTab(t *testing.T) {
	cases := map[string]Tab{
		"":          TabOverview,
		"loans":     TabLoans,
		" CARD ":    TabCard,
		"referrals": TabReferrals,
		"nonsense":  TabOverview,
	}
	for in, want := range cases {
		if got := ParseTab(in); got != want {
			t.Errorf("ParseTab(%q) = %q, want %q", in, got, want)
		}
	}
}
