package caselookup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nyayalens-backend/lib/scrapers/courts"
	"nyayalens-backend/lib/scrapers/delhihc"
	"nyayalens-backend/lib/scrapers/district"
	"nyayalens-backend/lib/testutil"
	"nyayalens-backend/services/caselookup/db"
)

var testReq = courts.CaseRequest{
	CaseType:   "W.P.(C)",
	CaseNumber: "123",
	FilingYear: "2023",
}

const searchFormPage = `<html><body><form method="post">
	<input type="hidden" name="token" value="t-1"/>
	<select name="ctype"><option value="W.P.(C)">W.P.(C)</option></select>
	<input type="text" name="case_no"/>
	<select name="year"><option value="2023">2023</option></select>
	<input type="submit" name="go" value="Submit"/>
</form></body></html>`

const resultsPage = `<html><body><table>
	<tr><td>Petitioner</td><td>ACME Corp</td></tr>
	<tr><td>Respondent</td><td>Union of India</td></tr>
	<tr><td>Status</td><td>Pending</td></tr>
</table>
<a href="/orders/order_1.pdf">Order dated 12-03-2022</a>
</body></html>`

const challengePage = `<html><body>
	<img src="/captcha/image.php"/>
	<form method="post"><input type="text" name="case_no"/></form>
</body></html>`

func setupTestService(t *testing.T, primary http.Handler, districtHandler http.Handler) Service {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/caselookup",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)

	primaryServer := httptest.NewServer(primary)
	t.Cleanup(primaryServer.Close)

	cfg := Config{
		HighCourt: delhihc.Options{
			BaseUrl:           primaryServer.URL,
			SearchUrl:         primaryServer.URL + "/pcase/guiCaseWise.php",
			TimeoutSeconds:    2,
			SkipBypassAttempt: true,
		},
	}
	if districtHandler != nil {
		districtServer := httptest.NewServer(districtHandler)
		t.Cleanup(districtServer.Close)
		cfg.District = district.Options{
			Endpoints:      []string{districtServer.URL},
			TimeoutSeconds: 2,
			Synthetic:      true,
		}
	}

	return NewService(setup.DB, cfg)
}

func TestSearchSuccessAndHistory(t *testing.T) {
	service := setupTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, resultsPage)
			return
		}
		fmt.Fprint(w, searchFormPage)
	}), nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	outcome := service.Search(ctx, testReq)
	require.True(t, outcome.Success)
	require.Equal(t, delhihc.SourceName, outcome.Source)
	require.Equal(t, "ACME Corp", outcome.Record.Plaintiff)
	require.Empty(t, outcome.Warnings)
	require.Len(t, outcome.Trace, 1)
	require.Greater(t, outcome.QueryID, int64(0))

	{
		entries, err := service.History(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, outcome.QueryID, entries[0].ID)
		require.Equal(t, testReq, entries[0].Request)
		require.True(t, entries[0].Success)
		require.Equal(t, "ACME Corp", entries[0].Record.Plaintiff)
		require.Len(t, entries[0].Record.Orders, 1)
		require.Equal(t, "Order", entries[0].Record.Orders[0].Category)
	}
	{
		entry, err := service.Export(ctx, outcome.QueryID)
		require.NoError(t, err)
		require.Equal(t, outcome.QueryID, entry.ID)
		require.Equal(t, "Union of India", entry.Record.Defendant)
	}
	{
		_, err := service.Export(ctx, outcome.QueryID+1000)
		require.Error(t, err)
	}
}

func TestSearchChallengeCascades(t *testing.T) {
	service := setupTestService(t,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, challengePage)
		}),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, resultsPage)
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	outcome := service.Search(ctx, testReq)
	require.True(t, outcome.Success)
	require.Contains(t, outcome.Source, district.SourceName)
	require.Equal(t, "ACME Corp", outcome.Record.Plaintiff)

	require.Len(t, outcome.Trace, 2)
	require.Equal(t, courts.ClassChallengeBlocked, outcome.Trace[0].Classification)
	require.True(t, outcome.Trace[1].Success)
}

func TestSearchNotFoundDoesNotCascade(t *testing.T) {
	service := setupTestService(t,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				fmt.Fprint(w, "<html><body><p>No Record Found.</p></body></html>")
				return
			}
			fmt.Fprint(w, searchFormPage)
		}),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("a definitive not-found answer must not cascade")
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	outcome := service.Search(ctx, testReq)
	require.False(t, outcome.Success)
	require.Equal(t, courts.ClassNotFound, outcome.Classification)
	require.Len(t, outcome.Trace, 1)

	// failures are recorded too
	entries, err := service.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.False(t, entries[0].Success)
	require.Equal(t, courts.ClassNotFound, entries[0].Classification)
}

func TestSearchChallengeExhaustedFallbacks(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/caselookup",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, challengePage)
	}))
	t.Cleanup(primary.Close)

	service := NewService(setup.DB, Config{
		HighCourt: delhihc.Options{
			BaseUrl:           primary.URL,
			SearchUrl:         primary.URL + "/pcase/guiCaseWise.php",
			TimeoutSeconds:    2,
			SkipBypassAttempt: true,
		},
		District: district.Options{
			Endpoints:      []string{dead.URL},
			TimeoutSeconds: 2,
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	outcome := service.Search(ctx, testReq)
	require.False(t, outcome.Success)
	// the exhausted cascade is terminal; the challenge outcome's
	// manual-search advice rides along
	require.Equal(t, courts.ClassAllEndpointsUnavailable, outcome.Classification)
	require.NotEmpty(t, outcome.DirectURL)
	require.Contains(t, outcome.Alternatives, district.ExhaustedAlternatives()[0])
	require.Greater(t, len(outcome.Alternatives), len(district.ExhaustedAlternatives()))
	require.Len(t, outcome.Trace, 2)
}

func TestSearchSurfacesWarnings(t *testing.T) {
	service := setupTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, resultsPage)
			return
		}
		fmt.Fprint(w, searchFormPage)
	}), nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	outcome := service.Search(ctx, courts.CaseRequest{
		CaseType:   "W.P(C)",
		CaseNumber: "0",
		FilingYear: "2023",
	})
	require.True(t, outcome.Success)
	require.Len(t, outcome.Warnings, 2)
}
