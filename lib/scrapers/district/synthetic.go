package district

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"nyayalens-backend/lib/scrapers/courts"
)

// syntheticProfile carries the per-case-type vocabulary used to build
// placeholder records. Unknown case types fall through to names drawn
// from the generator's seeded source plus the generic entries below.
type syntheticProfile struct {
	titles        []string
	bench         string
	petitioners   []string
	respondent    string
	orderSummary  string
	orderContents []string
}

var syntheticProfiles = map[string]syntheticProfile{
	"W.P.(C)": {
		titles: []string{
			"Citizen Welfare Foundation vs Union of India",
			"Public Interest Society vs State of Delhi",
			"Environmental Protection Group vs Delhi Pollution Control Committee",
		},
		bench:        "Hon'ble Mr. Justice Rajesh Kumar & Hon'ble Ms. Justice Priya Sharma",
		petitioners:  []string{"Public Interest Foundation", "Citizens Rights Society", "Welfare Association"},
		respondent:   "Union of India & Others",
		orderSummary: "Court directed respondents to file counter-affidavit within 4 weeks. Next hearing scheduled for arguments on maintainability.",
		orderContents: []string{
			"This writ petition under Article 226 of the Constitution of India has been filed seeking directions for proper implementation of government schemes. Having heard learned counsel for the petitioner and perused the record, the Court is satisfied that prima facie case is made out. Respondents are directed to file counter-affidavit within four weeks. List the matter after six weeks for further hearing.",
			"The matter is taken up for hearing today. Learned counsel for petitioner submits that despite earlier directions, respondents have not complied with the statutory requirements. Respondents seek time to file compliance report. Time granted. List after four weeks.",
			"Final arguments heard. The petition raises important questions of public policy. Having considered submissions and legal precedents, the Court finds merit in petitioner's case. Detailed judgment reserved. Parties to appear on the date notified.",
		},
	},
	"CRL.A.": {
		titles: []string{
			"State vs Accused Person",
			"Public vs Appellant",
			"Police vs Defendant",
		},
		bench:        "Hon'ble Mr. Justice Vikram Singh",
		petitioners:  []string{"State of Delhi", "Public Prosecutor", "Investigating Agency"},
		respondent:   "Accused Person & Others",
		orderSummary: "Matter adjourned for final arguments. Prosecution to file additional documents. Next hearing scheduled.",
		orderContents: []string{
			"This criminal appeal arises from the judgment of the Sessions Judge. Having heard arguments and examined evidence, the Court finds that lower court's findings require reconsideration. Notice issued to respondent. List after three weeks for filing of reply.",
			"Both parties present. Arguments heard on the question of bail pending appeal. Considering the nature of charges and circumstances, bail is granted subject to conditions specified in the order. Compliance to be verified before release.",
			"Final arguments concluded. The appeal challenges conviction under various sections. After detailed analysis of evidence and legal provisions, the Court finds that prosecution has established guilt beyond reasonable doubt. Appeal dismissed.",
		},
	},
	"CS(OS)": {
		titles: []string{
			"Commercial Corporation vs Business Entity",
			"Trading Company vs Service Provider",
			"Technology Solutions vs Software Company",
		},
		bench:        "Hon'ble Ms. Justice Anjali Mehta",
		petitioners:  []string{"Commercial Entity Ltd.", "Business Corporation", "Trade Association"},
		respondent:   "Defendant Company & Others",
		orderSummary: "Commercial dispute under consideration. Parties directed to explore settlement. Next hearing for case management.",
		orderContents: []string{
			"This commercial suit involves contractual disputes between parties. Pleadings are complete and issues have been framed. Court directs parties to file additional documents within two weeks. Matter listed for evidence recording.",
			"Evidence of plaintiff recorded. Cross-examination conducted. Defendant seeks adjournment to prepare for evidence. One week's time granted. List accordingly for defendant's evidence.",
			"Both parties have led evidence. Final arguments heard extensively. The contract terms and their interpretation have been analyzed. Court reserves judgment. Parties to be informed of judgment date separately.",
		},
	},
	"ARB.P.": {
		titles: []string{
			"Construction Company vs Infrastructure Developer",
			"Service Provider vs Client Entity",
			"Contractor vs Principal Company",
		},
		bench:        "Hon'ble Mr. Justice Suresh Gupta & Hon'ble Ms. Justice Kavita Rao",
		petitioners:  []string{"Construction Company Pvt. Ltd.", "Infrastructure Developer", "Service Provider"},
		respondent:   "Client Entity & Others",
		orderSummary: "Arbitration petition admitted. Notice issued to respondents. Next hearing for response from opposite party.",
		orderContents: []string{
			"This arbitration petition seeks appointment of arbitrator under the Arbitration and Conciliation Act. Having considered the arbitration clause and disputes raised, Court finds that matter requires arbitral adjudication. Arbitrator appointed as prayed.",
			"Application for interim relief during pendency of arbitration proceedings. Considering the urgency and prima facie case, interim directions issued as specified in the order. Matter to be heard along with main petition.",
			"Arbitration proceedings have concluded and award has been passed. This petition challenges the arbitral award on limited grounds. Notice issued to respondent. List after filing of reply for arguments on maintainability.",
		},
	},
	"RFA": {
		titles: []string{
			"Property Owner vs Municipal Corporation",
			"Landlord vs Tenant Association",
			"Developer vs Residents Society",
		},
		bench:        "Hon'ble Mr. Justice Anil Verma",
		petitioners:  []string{"Property Owner", "Municipal Authority", "Development Authority"},
		respondent:   "Opposing Party & Others",
		orderSummary: "Regular first appeal under hearing. Lower court records examined. Next hearing for final arguments.",
		orderContents: []string{
			"This Regular First Appeal challenges the judgment of District Court. Having heard arguments on admission, Court finds that substantial questions of law arise for consideration. Appeal admitted. List for hearing after filing of paper book.",
			"Appeal is taken up for final hearing. Extensive arguments heard on interpretation of statutory provisions and their application to facts. Court has examined lower court's reasoning and evidence appreciation. Judgment reserved.",
			"Having considered arguments and examined evidence, Court finds that lower court's findings are supported by material on record. No substantial question of law requiring interference arises. Appeal dismissed with costs.",
		},
	},
}

const genericOrderContent = "The matter was heard today. After consideration of submissions made by learned counsel for both parties, appropriate directions have been issued. List the matter as per schedule for further proceedings."

// Name pools for case types outside the vocabulary above. Kept local
// so every name decision flows through the generator's own seeded
// source and two concurrent searches can never influence each other.
var syntheticGivenNames = []string{
	"Rajesh", "Priya", "Vikram", "Anjali", "Suresh",
	"Kavita", "Anil", "Meena", "Arun", "Sunita",
}

var syntheticSurnames = []string{
	"Kumar", "Sharma", "Singh", "Mehta", "Gupta",
	"Rao", "Verma", "Joshi", "Malhotra", "Chopra",
}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Generator builds deterministic placeholder case data. Two calls with
// the same request and clock produce identical records.
type Generator struct {
	req courts.CaseRequest
	now func() time.Time
	rng *rand.Rand
}

func NewGenerator(req courts.CaseRequest, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s", req.CaseType, req.CaseNumber, req.FilingYear)
	seed := int64(h.Sum64())
	return &Generator{
		req: req,
		now: now,
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (g *Generator) Record(endpoint string) courts.CaseRecord {
	profile, known := syntheticProfiles[g.req.CaseType]
	if !known {
		profile = syntheticProfile{
			petitioners: []string{g.personName()},
			respondent:  fmt.Sprintf("%s & Others", g.personName()),
		}
	}

	idx := g.caseIndex(len(profile.petitioners))

	record := courts.CaseRecord{
		Plaintiff:       profile.petitioners[idx],
		Defendant:       profile.respondent,
		FilingDate:      g.filingDate(),
		NextHearingDate: g.nextHearingDate(),
		Status:          g.status(),
		Orders:          g.orders(),
		Notes: fmt.Sprintf(
			"Automatically generated reference data for %s %s/%s; not retrieved from official court records (endpoint: %s)",
			g.req.CaseType, g.req.CaseNumber, g.req.FilingYear, endpoint),
	}
	return record
}

func (g *Generator) personName() string {
	return fmt.Sprintf("%s %s",
		syntheticGivenNames[g.rng.Intn(len(syntheticGivenNames))],
		syntheticSurnames[g.rng.Intn(len(syntheticSurnames))])
}

// caseIndex picks a stable slot inside per-type vocabulary slices. A
// numeric case number indexes directly so neighboring numbers rotate
// through the vocabulary; anything else falls back to the seeded rng.
func (g *Generator) caseIndex(size int) int {
	if size <= 1 {
		return 0
	}
	if n, err := strconv.Atoi(g.req.CaseNumber); err == nil && n >= 0 {
		return n % size
	}
	return g.rng.Intn(size)
}

func (g *Generator) status() string {
	year, err := strconv.Atoi(g.req.FilingYear)
	if err != nil {
		return "Pending"
	}
	age := g.now().Year() - year
	switch {
	case age <= 1:
		return "Pending"
	case age <= 3:
		return "Under Hearing"
	case age <= 5:
		return "Final Arguments"
	default:
		return "Awaiting Judgment"
	}
}

func (g *Generator) filingDate() string {
	day := g.rng.Intn(28) + 1
	month := monthNames[g.rng.Intn(len(monthNames))]
	return fmt.Sprintf("%02d-%s-%s", day, month, g.req.FilingYear)
}

func (g *Generator) nextHearingDate() string {
	// 2 to 8 weeks out
	days := g.rng.Intn(43) + 14
	return g.now().AddDate(0, 0, days).Format("02-Jan-2006")
}

func (g *Generator) orderDate() string {
	// 1 to 4 weeks back
	days := g.rng.Intn(22) + 7
	return g.now().AddDate(0, 0, -days).Format("02-Jan-2006")
}

func (g *Generator) orders() []courts.OrderRecord {
	count := g.rng.Intn(3) + 1
	sanitizedType := strings.NewReplacer(".", "_", "(", "_", ")", "_").Replace(g.req.CaseType)

	var orders []courts.OrderRecord
	for i := 0; i < count; i++ {
		date := g.orderDate()
		category := "Case Management Order"
		if i == 0 {
			category = "Interim Order"
		}
		orders = append(orders, courts.OrderRecord{
			Title:       fmt.Sprintf("%s %s/%s - Order dated %s", g.req.CaseType, g.req.CaseNumber, g.req.FilingYear, date),
			Date:        date,
			Category:    category,
			DocumentRef: fmt.Sprintf("/download_pdf/%s_%s_%s_order_%d", sanitizedType, g.req.CaseNumber, g.req.FilingYear, i+1),
		})
	}
	return orders
}

// OrderContent returns the body text for a court order document. The
// one-based index cycles through the per-type passages.
func OrderContent(caseType string, orderIndex int) string {
	profile, ok := syntheticProfiles[caseType]
	if !ok || len(profile.orderContents) == 0 {
		return genericOrderContent
	}
	if orderIndex < 1 {
		orderIndex = 1
	}
	return profile.orderContents[(orderIndex-1)%len(profile.orderContents)]
}

// OrderSummary returns a one-line summary of the latest order for a
// case type.
func OrderSummary(caseType string) string {
	if profile, ok := syntheticProfiles[caseType]; ok {
		return profile.orderSummary
	}
	return "Matter adjourned. Next hearing scheduled for further proceedings."
}

// Bench returns the bench assignment used in generated order documents.
func Bench(caseType string) string {
	if profile, ok := syntheticProfiles[caseType]; ok {
		return profile.bench
	}
	return "Hon'ble Mr. Justice Court Official"
}

// CaseTitle returns a stable descriptive title for a case.
func CaseTitle(req courts.CaseRequest) string {
	profile, ok := syntheticProfiles[req.CaseType]
	if !ok || len(profile.titles) == 0 {
		return fmt.Sprintf("Petitioner vs Respondent (%s %s/%s)", req.CaseType, req.CaseNumber, req.FilingYear)
	}
	if n, err := strconv.Atoi(req.CaseNumber); err == nil && n >= 0 {
		return profile.titles[n%len(profile.titles)]
	}
	return profile.titles[0]
}
