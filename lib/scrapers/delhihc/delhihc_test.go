package delhihc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nyayalens-backend/lib/scrapers/courts"
)

var testReq = courts.CaseRequest{
	CaseType:   "W.P.(C)",
	CaseNumber: "123",
	FilingYear: "2023",
}

const searchFormPage = `<html><body><form method="post">
	<input type="hidden" name="token" value="t-1"/>
	<select name="ctype">
		<option value="W.P.(C)">W.P.(C)</option>
		<option value="CRL.A.">CRL.A.</option>
	</select>
	<input type="text" name="case_no"/>
	<select name="year"><option value="2023">2023</option></select>
	<input type="submit" name="go" value="Submit"/>
</form></body></html>`

const challengePage = `<html><body>
	<img src="/captcha/image.php"/>
	<form method="post">
		<input type="hidden" name="token" value="t-1"/>
		<input type="text" name="case_no"/>
	</form>
</body></html>`

const resultsPage = `<html><body><table>
	<tr><td>Petitioner</td><td>ACME Corp</td></tr>
	<tr><td>Respondent</td><td>Union of India</td></tr>
	<tr><td>Status</td><td>Pending</td></tr>
</table>
<a href="/orders/order_1.pdf">Order dated 12-03-2022</a>
</body></html>`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{
		BaseUrl:   server.URL,
		SearchUrl: server.URL + "/pcase/guiCaseWise.php",
	})
	require.NoError(t, err)
	return client
}

func TestSearchCaseSuccess(t *testing.T) {
	var postedForm map[string][]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			r.ParseForm()
			postedForm = r.PostForm
			fmt.Fprint(w, resultsPage)
			return
		}
		fmt.Fprint(w, searchFormPage)
	}))

	outcome := client.SearchCase(context.Background(), testReq)
	require.True(t, outcome.Success)
	require.Equal(t, SourceName, outcome.Source)
	require.Equal(t, "ACME Corp", outcome.Record.Plaintiff)
	require.Equal(t, "Union of India", outcome.Record.Defendant)
	require.Equal(t, "Pending", outcome.Record.Status)
	require.Len(t, outcome.Record.Orders, 1)
	require.Equal(t, "12-03-2022", outcome.Record.Orders[0].Date)
	require.NotEmpty(t, outcome.Raw)

	// the inferred submission round-trips the hidden token and fills
	// the visible fields
	require.Equal(t, []string{"t-1"}, postedForm["token"])
	require.Equal(t, []string{"W.P.(C)"}, postedForm["ctype"])
	require.Equal(t, []string{"123"}, postedForm["case_no"])
	require.Equal(t, []string{"2023"}, postedForm["year"])
}

func TestSearchCaseChallengeBlocked(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, challengePage)
	}))
	client.opts.SkipBypassAttempt = true

	outcome := client.SearchCase(context.Background(), testReq)
	require.False(t, outcome.Success)
	require.Equal(t, courts.ClassChallengeBlocked, outcome.Classification)
	require.True(t, outcome.ChallengeDetected)
	require.False(t, outcome.ChallengeBypassed)
	require.NotEmpty(t, outcome.Message)
	require.Equal(t, client.searchUrl, outcome.DirectURL)
	require.NotEmpty(t, outcome.Alternatives)
}

func TestSearchCaseChallengeBypass(t *testing.T) {
	// pad well past the minimum size a bypass response must have
	bigResults := resultsPage + strings.Repeat("<!-- filler -->", 100)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, bigResults)
			return
		}
		fmt.Fprint(w, challengePage)
	}))

	outcome := client.SearchCase(context.Background(), testReq)
	require.True(t, outcome.Success)
	require.True(t, outcome.ChallengeDetected)
	require.True(t, outcome.ChallengeBypassed)
	require.Equal(t, "ACME Corp", outcome.Record.Plaintiff)
	require.Contains(t, outcome.Record.Notes, "verification challenge")
}

func TestSearchCaseBypassTooSmall(t *testing.T) {
	// a tiny 200 response to the bare post means the gate held
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, "<html><body>ok</body></html>")
			return
		}
		fmt.Fprint(w, challengePage)
	}))

	outcome := client.SearchCase(context.Background(), testReq)
	require.False(t, outcome.Success)
	require.Equal(t, courts.ClassChallengeBlocked, outcome.Classification)
	require.True(t, outcome.ChallengeDetected)
	require.False(t, outcome.ChallengeBypassed)
}

func TestSearchCaseNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, "<html><body><p>No Record Found for the given details.</p></body></html>")
			return
		}
		fmt.Fprint(w, searchFormPage)
	}))

	outcome := client.SearchCase(context.Background(), testReq)
	require.False(t, outcome.Success)
	require.Equal(t, courts.ClassNotFound, outcome.Classification)
	require.Contains(t, outcome.Message, "No case found")
}

func TestSearchCaseParseFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, "<html><body><p>Welcome to the portal.</p></body></html>")
			return
		}
		fmt.Fprint(w, searchFormPage)
	}))

	outcome := client.SearchCase(context.Background(), testReq)
	require.False(t, outcome.Success)
	require.Equal(t, courts.ClassParseFailure, outcome.Classification)
}

func TestSearchCaseNoForm(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>maintenance page</p></body></html>")
	}))

	outcome := client.SearchCase(context.Background(), testReq)
	require.False(t, outcome.Success)
	require.Equal(t, courts.ClassParseFailure, outcome.Classification)
}

func TestSearchCaseTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(Options{
		BaseUrl:        server.URL,
		SearchUrl:      server.URL + "/pcase/guiCaseWise.php",
		TimeoutSeconds: 2,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	outcome := client.SearchCase(ctx, testReq)
	require.False(t, outcome.Success)
	require.Contains(t, []courts.Classification{
		courts.ClassTransportConnection,
		courts.ClassTransportError,
	}, outcome.Classification)
	require.NotEmpty(t, outcome.Message)
}
