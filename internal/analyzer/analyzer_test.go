package analyzer

import (
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/Sla0ui/linkrisk/internal/detector"
	"github.com/Sla0ui/linkrisk/internal/models"
	"github.com/Sla0ui/linkrisk/internal/normalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeScenarios(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		validate func(*testing.T, models.AnalysisResult)
	}{
		{
			name: "phishing keywords and digit substitution",
			url:  "http://www.paypa1-login-secure-verify.com",
			validate: func(t *testing.T, r models.AnalysisResult) {
				assert.Equal(t, 100, r.Score)
				assert.Equal(t, 0, r.SafePercent)
				assert.Equal(t, models.VerdictUnsafe, r.Verdict)
				assert.Equal(t, []string{
					"keyword-cluster:login+verify",
					"keyword:login",
					"keyword:secure",
					"keyword:verify",
					"digit-substitution:1",
				}, ruleIDs(r))
				assert.Equal(t, 170, weightSum(r))
			},
		},
		{
			name: "official domain",
			url:  "https://www.google.com",
			validate: func(t *testing.T, r models.AnalysisResult) {
				assert.Equal(t, 0, r.Score)
				assert.Equal(t, 100, r.SafePercent)
				assert.Equal(t, models.VerdictSafe, r.Verdict)
				assert.Empty(t, r.Findings)
			},
		},
		{
			name: "typosquatted brand",
			url:  "http://go0gle.com",
			validate: func(t *testing.T, r models.AnalysisResult) {
				assert.Equal(t, 95, r.Score)
				assert.Equal(t, 5, r.SafePercent)
				assert.Equal(t, models.VerdictUnsafe, r.Verdict)
				assert.Equal(t, []string{"digit-substitution:0", "brand-similarity:google"}, ruleIDs(r))
			},
		},
		{
			name: "long benign url sits on the safe boundary",
			url:  "https://example.org/" + strings.Repeat("a", 65),
			validate: func(t *testing.T, r models.AnalysisResult) {
				assert.Equal(t, 20, r.Score)
				assert.Equal(t, 80, r.SafePercent)
				assert.Equal(t, models.VerdictSafe, r.Verdict)
				assert.Equal(t, []string{"long-url"}, ruleIDs(r))
			},
		},
		{
			name: "suspicious band",
			url:  "https://example.org/parcel",
			validate: func(t *testing.T, r models.AnalysisResult) {
				assert.Equal(t, 40, r.Score)
				assert.Equal(t, models.VerdictSuspicious, r.Verdict)
				require.Len(t, r.Findings, 1)
				assert.Equal(t, `References delivery-scam term "parcel"`, r.Findings[0].Message)
			},
		},
		{
			name: "empty input",
			url:  "",
			validate: func(t *testing.T, r models.AnalysisResult) {
				assert.Equal(t, 0, r.Score)
				assert.Equal(t, models.VerdictSafe, r.Verdict)
				assert.NotNil(t, r.Findings)
				assert.Empty(t, r.Findings)
			},
		},
		{
			name: "weights accumulate without deduplication",
			url:  "http://paypal-login.tk",
			validate: func(t *testing.T, r models.AnalysisResult) {
				assert.Equal(t, []string{
					"unsafe-tld:.tk",
					"brand:paypal",
					"keyword:login",
				}, ruleIDs(r))
				assert.Equal(t, 100, r.Score)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Analyze(tt.url))
		})
	}
}

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		safePercent int
		want        models.Verdict
	}{
		{100, models.VerdictSafe},
		{80, models.VerdictSafe},
		{79, models.VerdictSuspicious},
		{50, models.VerdictSuspicious},
		{49, models.VerdictUnsafe},
		{0, models.VerdictUnsafe},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VerdictFor(tt.safePercent), "safePercent=%d", tt.safePercent)
	}
}

func TestVerdictMonotonic(t *testing.T) {
	for p := 1; p <= 100; p++ {
		assert.True(t, VerdictFor(p-1).AtLeast(VerdictFor(p)), "safePercent %d vs %d", p-1, p)
	}
}

func TestAnalyzeInvariants(t *testing.T) {
	a := Default()
	catalogue := detector.Default()
	rules := catalogue.Rules()

	for _, url := range corpus(t) {
		r := a.Analyze(url)

		assert.GreaterOrEqual(t, r.Score, 0, url)
		assert.LessOrEqual(t, r.Score, 100, url)
		assert.Equal(t, 100, r.Score+r.SafePercent, url)
		assert.Equal(t, VerdictFor(r.SafePercent), r.Verdict, url)
		assert.LessOrEqual(t, len(r.Findings), catalogue.Len(), url)
		assert.Equal(t, min(100, weightSum(r)), r.Score, url)

		// findings are exactly the firing rules, in catalogue order
		subject := catalogue.Subject(normalizer.Normalize(url))
		var want []string
		for _, rule := range rules {
			if rule.Matches(subject) {
				want = append(want, rule.ID)
			}
		}
		assert.Equal(t, want, ruleIDs(r), url)

		assert.Equal(t, r, a.Analyze(url), "repeat analysis of %q", url)
	}
}

func TestAnalyzeConcurrent(t *testing.T) {
	urls := corpus(t)
	want := make([]models.AnalysisResult, len(urls))
	for i, url := range urls {
		want[i] = Analyze(url)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, url := range urls {
				assert.Equal(t, want[i], Analyze(url))
			}
		}()
	}
	wg.Wait()
}

func corpus(t *testing.T) []string {
	t.Helper()

	urls := []string{
		"",
		"   ",
		"not a url at all",
		"https://www.google.com",
		"http://go0gle.com",
		"http://www.paypa1-login-secure-verify.com",
		"https://secure-update.account-verify.banking-login.xyz/?session=aGVsbG8gd29ybGQgZm9vYmFy",
		"https://аррle.com/id",
		"http://a.b.c.d.e.f.example.tk/parcel/delivery?tracking=1234567890abcdef1234",
		"HTTPS://WWW.NETFLIX.COM/browse",
		"www.micr0s0ft-0ffice365-l0gin.com",
		"=====",
		"?#/",
	}

	rng := rand.New(rand.NewSource(42))
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789-./?#=:+_ АЯαω"
	letters := []rune(alphabet)
	for i := 0; i < 200; i++ {
		n := rng.Intn(120)
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteRune(letters[rng.Intn(len(letters))])
		}
		urls = append(urls, b.String())
	}
	return urls
}

func ruleIDs(r models.AnalysisResult) []string {
	var ids []string
	for _, f := range r.Findings {
		ids = append(ids, f.RuleID)
	}
	return ids
}

func weightSum(r models.AnalysisResult) int {
	total := 0
	for _, f := range r.Findings {
		total += f.Weight
	}
	return total
}
