package courts

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/bxcodec/faker/v4"
	"github.com/stretchr/testify/require"
)

func mustParseUrl(t *testing.T, raw string) *url.URL {
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNormalizeLabelScan(t *testing.T) {
	doc := parseDoc(t, `<html><body><table>
		<tr><td>Petitioner Name</td><td>ACME Corp</td></tr>
		<tr><td>Respondent</td><td>Union of India</td></tr>
		<tr><td>Date of Filing</td><td>12-03-2022</td></tr>
		<tr><td>Next Hearing Date</td><td>01-10-2024</td></tr>
		<tr><td>Case Status</td><td>Pending</td></tr>
	</table></body></html>`)

	record := Normalize(doc, nil)
	require.True(t, record.Found())
	require.Equal(t, "ACME Corp", record.Plaintiff)
	require.Equal(t, "Union of India", record.Defendant)
	require.Equal(t, "12-03-2022", record.FilingDate)
	require.Equal(t, "01-10-2024", record.NextHearingDate)
	require.Equal(t, "Pending", record.Status)
}

// The label scan must carry party names through verbatim whatever
// they are, so this one runs on generated names instead of fixtures.
func TestNormalizeArbitraryPartyNames(t *testing.T) {
	for i := 0; i < 10; i++ {
		plaintiff := strings.TrimSpace(faker.Name())
		defendant := strings.TrimSpace(faker.Name())

		doc := parseDoc(t, fmt.Sprintf(`<html><body><table>
			<tr><td>Petitioner</td><td>%s</td></tr>
			<tr><td>Respondent</td><td>%s</td></tr>
		</table></body></html>`, plaintiff, defendant))

		record := Normalize(doc, nil)
		require.Equal(t, plaintiff, record.Plaintiff)
		require.Equal(t, defendant, record.Defendant)
	}
}

func TestNormalizeLastWriteWins(t *testing.T) {
	doc := parseDoc(t, `<html><body><table>
		<tr><td>Status</td><td>Listed</td></tr>
		<tr><td>Current Status</td><td>Disposed</td></tr>
	</table></body></html>`)

	record := Normalize(doc, nil)
	require.Equal(t, "Disposed", record.Status)
}

func TestNormalizeOrders(t *testing.T) {
	base := mustParseUrl(t, "https://dhccaseinfo.nic.in/pcase/guiCaseWise.php")
	doc := parseDoc(t, `<html><body>
		<a href="/orders/order_1.pdf">Order dated 12-03-2022</a>
		<a href="https://elsewhere.example/o2.PDF"> </a>
		<a href="/about.html">about</a>
	</body></html>`)

	record := Normalize(doc, base)
	require.True(t, record.Found())
	require.Len(t, record.Orders, 2)

	require.Equal(t, "Order dated 12-03-2022", record.Orders[0].Title)
	require.Equal(t, "12-03-2022", record.Orders[0].Date)
	require.Equal(t, "https://dhccaseinfo.nic.in/orders/order_1.pdf", record.Orders[0].DocumentURL)
	require.Equal(t, "Order", record.Orders[0].Category)

	require.Equal(t, "Court Order", record.Orders[1].Title)
	require.Equal(t, "https://elsewhere.example/o2.PDF", record.Orders[1].DocumentURL)
	require.Empty(t, record.Orders[1].Date)
}

func TestNormalizePartiesFallback(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<p>In the matter of Ramesh Kumar vs. State of Delhi, filed on 05-01-2021,
		listed next on 20-11-2024.</p>
	</body></html>`)

	record := Normalize(doc, nil)
	require.True(t, record.Found())
	require.Contains(t, record.Plaintiff, "Ramesh Kumar")
	require.Equal(t, "State of Delhi", record.Defendant)
	require.Equal(t, "05-01-2021", record.FilingDate)
	require.Equal(t, "20-11-2024", record.NextHearingDate)
}

func TestNormalizeFallbackSingleDate(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>Order passed on 05-01-2021.</p></body></html>`)

	record := Normalize(doc, nil)
	require.Equal(t, "05-01-2021", record.FilingDate)
	require.Empty(t, record.NextHearingDate)
}

func TestNormalizeNothingFound(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>Welcome to the portal.</p></body></html>`)
	record := Normalize(doc, nil)
	require.False(t, record.Found())
}

func TestFoundIgnoresNotes(t *testing.T) {
	record := CaseRecord{Notes: "provenance only"}
	require.False(t, record.Found())
	record.Status = "Pending"
	require.True(t, record.Found())
}

func TestExtractDate(t *testing.T) {
	require.Equal(t, "12-03-2022", ExtractDate("Order dated 12-03-2022 by court"))
	require.Equal(t, "3/4/22", ExtractDate("hearing on 3/4/22"))
	// the two-digit-year form matches inside an ISO stamp before the
	// year-first pattern gets a chance
	require.Equal(t, "22-03-12", ExtractDate("ISO stamp 2022-03-12"))
	require.Empty(t, ExtractDate("no date here"))
}
