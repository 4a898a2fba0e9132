package district

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"nyayalens-backend/lib/scrapers/courts"
)

func TestGeneratorDeterministic(t *testing.T) {
	endpoint := "https://westdelhi.dcourts.gov.in/case-status-search-by-case-number/"

	first := NewGenerator(testReq, testNow).Record(endpoint)
	second := NewGenerator(testReq, testNow).Record(endpoint)
	require.Empty(t, cmp.Diff(first, second))

	other := NewGenerator(courts.CaseRequest{
		CaseType:   "W.P.(C)",
		CaseNumber: "124",
		FilingYear: "2023",
	}, testNow).Record(endpoint)
	require.NotEqual(t, first.Plaintiff, other.Plaintiff)
}

func TestGeneratorKnownType(t *testing.T) {
	record := NewGenerator(testReq, testNow).Record("https://example.gov.in/")

	require.True(t, record.Found())
	// case number 123 rotates to slot 0 of the three-entry vocabulary
	require.Equal(t, "Public Interest Foundation", record.Plaintiff)
	require.Equal(t, "Union of India & Others", record.Defendant)
	require.Contains(t, record.FilingDate, "2023")
	require.NotEmpty(t, record.NextHearingDate)
	require.Contains(t, record.Notes, "https://example.gov.in/")
	require.Contains(t, record.Notes, "not retrieved from official court records")
}

func TestGeneratorStatusByAge(t *testing.T) {
	for year, expected := range map[string]string{
		"2025": "Pending",
		"2024": "Pending",
		"2022": "Under Hearing",
		"2020": "Final Arguments",
		"2015": "Awaiting Judgment",
	} {
		record := NewGenerator(courts.CaseRequest{
			CaseType:   "RFA",
			CaseNumber: "1",
			FilingYear: year,
		}, testNow).Record("https://example.gov.in/")
		require.Equal(t, expected, record.Status, year)
	}
}

func TestGeneratorOrders(t *testing.T) {
	record := NewGenerator(testReq, testNow).Record("https://example.gov.in/")

	require.GreaterOrEqual(t, len(record.Orders), 1)
	require.LessOrEqual(t, len(record.Orders), 3)

	for i, order := range record.Orders {
		require.Contains(t, order.Title, "W.P.(C) 123/2023")
		require.NotEmpty(t, order.Date)
		require.Empty(t, order.DocumentURL)
		require.Equal(t,
			fmt.Sprintf("/download_pdf/W_P__C__123_2023_order_%d", i+1),
			order.DocumentRef)
		if i == 0 {
			require.Equal(t, "Interim Order", order.Category)
		} else {
			require.Equal(t, "Case Management Order", order.Category)
		}
	}
}

// Generators share no state: concurrent searches for the same case
// must agree with a sequential baseline, including the name path used
// for case types outside the vocabulary.
func TestGeneratorConcurrentDeterminism(t *testing.T) {
	endpoint := "https://example.gov.in/"
	unknownReq := courts.CaseRequest{
		CaseType:   "MISC",
		CaseNumber: "9",
		FilingYear: "2021",
	}

	knownBaseline := NewGenerator(testReq, testNow).Record(endpoint)
	unknownBaseline := NewGenerator(unknownReq, testNow).Record(endpoint)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			known := NewGenerator(testReq, testNow).Record(endpoint)
			unknown := NewGenerator(unknownReq, testNow).Record(endpoint)
			if diff := cmp.Diff(knownBaseline, known); diff != "" {
				t.Errorf("known-type record diverged (-baseline +got):\n%s", diff)
			}
			if diff := cmp.Diff(unknownBaseline, unknown); diff != "" {
				t.Errorf("unknown-type record diverged (-baseline +got):\n%s", diff)
			}
		}()
	}
	wg.Wait()
}

func TestGeneratorUnknownType(t *testing.T) {
	record := NewGenerator(courts.CaseRequest{
		CaseType:   "MISC",
		CaseNumber: "9",
		FilingYear: "2021",
	}, testNow).Record("https://example.gov.in/")

	require.True(t, record.Found())
	require.NotEmpty(t, record.Plaintiff)
	require.Contains(t, record.Defendant, "& Others")
}

func TestGeneratorDates(t *testing.T) {
	record := NewGenerator(testReq, testNow).Record("https://example.gov.in/")

	next, err := time.Parse("02-Jan-2006", record.NextHearingDate)
	require.NoError(t, err)
	require.True(t, next.After(testNow()))

	for _, order := range record.Orders {
		date, err := time.Parse("02-Jan-2006", order.Date)
		require.NoError(t, err)
		require.True(t, date.Before(testNow()))
	}
}

func TestVocabularyHelpers(t *testing.T) {
	require.Equal(t, "Citizen Welfare Foundation vs Union of India", CaseTitle(testReq))
	require.Contains(t, CaseTitle(courts.CaseRequest{
		CaseType: "MISC", CaseNumber: "9", FilingYear: "2021",
	}), "Petitioner vs Respondent")

	require.Contains(t, Bench("CRL.A."), "Vikram Singh")
	require.Contains(t, Bench("MISC"), "Court Official")

	require.Contains(t, OrderContent("W.P.(C)", 1), "Article 226")
	require.Equal(t, OrderContent("W.P.(C)", 4), OrderContent("W.P.(C)", 1))
	require.Equal(t, genericOrderContent, OrderContent("MISC", 1))

	require.Contains(t, OrderSummary("CS(OS)"), "settlement")
	require.NotEmpty(t, OrderSummary("MISC"))
}
